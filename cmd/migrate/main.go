// Package main applies or rolls back the embedded schema migrations.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"estatehub/internal/platform/config"
	"estatehub/internal/platform/database"
	"estatehub/internal/platform/logger"
)

func main() {
	upCmd := flag.NewFlagSet("up", flag.ExitOnError)
	upSteps := upCmd.Int("steps", 0, "Apply at most N migrations (0 applies all)")

	downCmd := flag.NewFlagSet("down", flag.ExitOnError)
	downSteps := downCmd.Int("steps", 1, "Roll back N migrations")
	downAll := downCmd.Bool("all", false, "Roll back every migration")

	forceCmd := flag.NewFlagSet("force", flag.ExitOnError)
	forceVersion := forceCmd.Int("version", -1, "Mark the schema as VERSION without running migrations")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	m, err := database.NewMigrator(cfg.Database.URL)
	if err != nil {
		log.Error("failed to open migrator", "error", err)
		os.Exit(1)
	}
	defer m.Close() //nolint:errcheck // process exits right after

	switch os.Args[1] {
	case "up":
		upCmd.Parse(os.Args[2:]) //nolint:errcheck // ExitOnError
		if *upSteps > 0 {
			err = m.Steps(*upSteps)
		} else {
			err = m.Up()
		}
	case "down":
		downCmd.Parse(os.Args[2:]) //nolint:errcheck // ExitOnError
		if *downAll {
			err = m.Down()
		} else {
			err = m.Steps(-*downSteps)
		}
	case "force":
		forceCmd.Parse(os.Args[2:]) //nolint:errcheck // ExitOnError
		if *forceVersion < 0 {
			fmt.Fprintln(os.Stderr, "force requires -version")
			os.Exit(1)
		}
		err = m.Force(*forceVersion)
	case "version":
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error("migration failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info("schema is empty")
	case err != nil:
		log.Error("failed to read schema version", "error", err)
		os.Exit(1)
	default:
		log.Info("schema version", "version", version, "dirty", dirty)
	}
}

func printUsage() {
	fmt.Println(`migrate - Manage the estatehub database schema

Reads DATABASE_URL (or ESTATEHUB_CONFIG) like the server does.

Usage:
  migrate <command> [flags]

Commands:
  up        Apply pending migrations
  down      Roll back migrations
  force     Set the schema version after fixing a dirty migration by hand
  version   Print the current schema version

Examples:
  migrate up
  migrate down -steps 2
  migrate down -all
  migrate force -version 3`)
}
