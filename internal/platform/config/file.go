package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML layout accepted by Load. Durations use Go syntax ("30s").
type fileConfig struct {
	Server struct {
		Addr           string   `yaml:"addr"`
		Environment    string   `yaml:"environment"`
		LogLevel       string   `yaml:"log_level"`
		RequestTimeout string   `yaml:"request_timeout"`
		TrustedProxies []string `yaml:"trusted_proxies"`
	} `yaml:"server"`
	Auth struct {
		TokenTTL string `yaml:"token_ttl"`
	} `yaml:"auth"`
	Database struct {
		URL          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
		LogQueries   bool   `yaml:"log_queries"`
	} `yaml:"database"`
	Redis struct {
		URL      string `yaml:"url"`
		PoolSize int    `yaml:"pool_size"`
	} `yaml:"redis"`
	Kafka struct {
		Brokers    string `yaml:"brokers"`
		AuditTopic string `yaml:"audit_topic"`
	} `yaml:"kafka"`
	Storage struct {
		UploadURL string `yaml:"upload_url"`
		Folder    string `yaml:"folder"`
		Timeout   string `yaml:"timeout"`
	} `yaml:"storage"`
	Dashboard struct {
		Lookback     string `yaml:"lookback"`
		QueryTimeout string `yaml:"query_timeout"`
	} `yaml:"dashboard"`
}

// applyFile overlays non-zero file values on cfg. Secrets are read from the
// environment only.
func applyFile(cfg *Server, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var f fileConfig
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setString(&cfg.Addr, f.Server.Addr)
	setString(&cfg.Environment, f.Server.Environment)
	setString(&cfg.LogLevel, f.Server.LogLevel)
	if len(f.Server.TrustedProxies) > 0 {
		cfg.TrustedProxies = f.Server.TrustedProxies
	}
	setString(&cfg.Database.URL, f.Database.URL)
	setInt(&cfg.Database.MaxOpenConns, f.Database.MaxOpenConns)
	setInt(&cfg.Database.MaxIdleConns, f.Database.MaxIdleConns)
	cfg.Database.LogQueries = cfg.Database.LogQueries || f.Database.LogQueries
	setString(&cfg.Redis.URL, f.Redis.URL)
	setInt(&cfg.Redis.PoolSize, f.Redis.PoolSize)
	setString(&cfg.Kafka.Brokers, f.Kafka.Brokers)
	setString(&cfg.Kafka.AuditTopic, f.Kafka.AuditTopic)
	setString(&cfg.Storage.UploadURL, f.Storage.UploadURL)
	setString(&cfg.Storage.Folder, f.Storage.Folder)

	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"server.request_timeout", f.Server.RequestTimeout, &cfg.RequestTimeout},
		{"auth.token_ttl", f.Auth.TokenTTL, &cfg.TokenTTL},
		{"storage.timeout", f.Storage.Timeout, &cfg.Storage.Timeout},
		{"dashboard.lookback", f.Dashboard.Lookback, &cfg.Dashboard.Lookback},
		{"dashboard.query_timeout", f.Dashboard.QueryTimeout, &cfg.Dashboard.QueryTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.name, err)
		}
		*d.dst = parsed
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
