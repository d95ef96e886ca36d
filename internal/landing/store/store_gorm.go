package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"estatehub/internal/landing/models"
	id "estatehub/pkg/domain"
)

// GormStore answers the landing page's aggregate queries.
type GormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CountProperties(ctx context.Context, scope models.PropertyCount) (int64, error) {
	q := s.db.WithContext(ctx).Table("properties")
	if scope.Status != "" {
		q = q.Where("status = ?", string(scope.Status))
	}
	if scope.FeaturedOnly {
		q = q.Where("is_featured")
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return n, nil
}

// CountUsers counts users with role, or every user when role is empty.
func (s *GormStore) CountUsers(ctx context.Context, role id.Role) (int64, error) {
	q := s.db.WithContext(ctx).Table("users")
	if role != "" {
		q = q.Where("role = ?", string(role))
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (s *GormStore) CountViews(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Table("property_views").Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count views: %w", err)
	}
	return n, nil
}

// AverageAvailablePrice is zero when nothing is available.
func (s *GormStore) AverageAvailablePrice(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.WithContext(ctx).Table("properties").
		Select("AVG(price)::float8").
		Where("status = ?", string(id.PropertyAvailable)).
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("average price: %w", err)
	}
	return avg.Float64, nil
}

func (s *GormStore) TopCities(ctx context.Context, limit int) ([]models.CityCount, error) {
	var cities []models.CityCount
	err := s.db.WithContext(ctx).Table("properties").
		Select("city, COUNT(*) AS count").
		Group("city").
		Order("count DESC, city ASC").
		Limit(limit).
		Scan(&cities).Error
	if err != nil {
		return nil, fmt.Errorf("top cities: %w", err)
	}
	return cities, nil
}

func (s *GormStore) RecentProperties(ctx context.Context, limit int) ([]models.RecentProperty, error) {
	var rows []struct {
		ID        uuid.UUID
		Title     string
		City      string
		Price     float64
		CreatedAt time.Time
		FirstName string
		LastName  string
	}
	err := s.db.WithContext(ctx).Raw(`
		SELECT p.id, p.title, p.city, p.price::float8 AS price, p.created_at, u.first_name, u.last_name
		FROM properties p
		JOIN users u ON u.id = p.posted_by_id
		ORDER BY p.created_at DESC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("recent properties: %w", err)
	}
	out := make([]models.RecentProperty, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.RecentProperty{
			ID:        id.PropertyID(r.ID),
			Title:     r.Title,
			City:      r.City,
			Price:     r.Price,
			CreatedAt: r.CreatedAt,
			FirstName: r.FirstName,
			LastName:  r.LastName,
		})
	}
	return out, nil
}

// LocationSuggestions returns distinct "city, state" pairs of available
// listings whose city or state contains term.
func (s *GormStore) LocationSuggestions(ctx context.Context, term string, limit int) ([]models.Suggestion, error) {
	var rows []struct {
		City  string
		State string
	}
	pattern := likePattern(term)
	err := s.db.WithContext(ctx).Table("properties").
		Distinct("city", "state").
		Where("status = ?", string(id.PropertyAvailable)).
		Where("city ILIKE ? OR state ILIKE ?", pattern, pattern).
		Order("city, state").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("location suggestions: %w", err)
	}
	out := make([]models.Suggestion, 0, len(rows))
	for _, r := range rows {
		label := r.City + ", " + r.State
		out = append(out, models.Suggestion{Type: models.SuggestLocation, Value: label, Label: label})
	}
	return out, nil
}

// TitleSuggestions returns available listings whose title contains term.
func (s *GormStore) TitleSuggestions(ctx context.Context, term string, limit int) ([]models.Suggestion, error) {
	var rows []struct {
		ID    uuid.UUID
		Title string
		City  string
	}
	err := s.db.WithContext(ctx).Table("properties").
		Select("id, title, city").
		Where("status = ?", string(id.PropertyAvailable)).
		Where("title ILIKE ?", likePattern(term)).
		Order("created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("title suggestions: %w", err)
	}
	out := make([]models.Suggestion, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Suggestion{
			Type:     models.SuggestProperty,
			Value:    r.ID.String(),
			Label:    r.Title,
			Subtitle: r.City,
		})
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
