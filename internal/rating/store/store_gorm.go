package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"estatehub/internal/rating/models"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
)

type ratingRow struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid"`
	PropertyID uuid.UUID `gorm:"type:uuid"`
	Rating     int
	Comment    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ratingRow) TableName() string { return "ratings" }

type reviewRow struct {
	ratingRow
	FirstName string
	LastName  string
	Avatar    string
}

type ratedRow struct {
	ratingRow
	Title     string
	Type      string
	Price     float64
	City      string
	State     string
	ImageURLs pq.StringArray `gorm:"column:image_urls;type:text[]"`
}

type upsertResult struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Inserted  bool
}

// GormStore persists ratings in PostgreSQL through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// PropertyOwner returns the poster of a property.
func (s *GormStore) PropertyOwner(ctx context.Context, propertyID id.PropertyID) (id.UserID, error) {
	var owners []uuid.UUID
	err := s.db.WithContext(ctx).Table("properties").
		Where("id = ?", uuid.UUID(propertyID)).
		Pluck("posted_by_id", &owners).Error
	if err != nil {
		return id.UserID{}, fmt.Errorf("find property owner: %w", err)
	}
	if len(owners) == 0 {
		return id.UserID{}, fmt.Errorf("property not found: %w", sentinel.ErrNotFound)
	}
	return id.UserID(owners[0]), nil
}

// Upsert inserts r or replaces the score and comment of the user's existing
// rating of the same property. It reports whether a new row was inserted and
// fills r's ID and CreatedAt from the stored row.
func (s *GormStore) Upsert(ctx context.Context, r *models.Rating) (bool, error) {
	var res upsertResult
	err := s.db.WithContext(ctx).Raw(`
		INSERT INTO ratings (id, user_id, property_id, rating, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, property_id) DO UPDATE
		SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, (xmax = 0) AS inserted`,
		uuid.UUID(r.ID), uuid.UUID(r.UserID), uuid.UUID(r.PropertyID),
		r.Rating, nullable(r.Comment), r.CreatedAt, r.UpdatedAt,
	).Scan(&res).Error
	if err != nil {
		return false, fmt.Errorf("upsert rating: %w", err)
	}
	r.ID = id.RatingID(res.ID)
	r.CreatedAt = res.CreatedAt
	return res.Inserted, nil
}

// FindReview loads a rating with its author.
func (s *GormStore) FindReview(ctx context.Context, ratingID id.RatingID) (*models.Review, error) {
	var rows []reviewRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT r.*, u.first_name, u.last_name, COALESCE(u.avatar, '') AS avatar
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = ?`, uuid.UUID(ratingID)).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find rating: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("rating not found: %w", sentinel.ErrNotFound)
	}
	return rows[0].toReview(), nil
}

func (s *GormStore) Delete(ctx context.Context, ratingID id.RatingID) error {
	res := s.db.WithContext(ctx).Where("id = ?", uuid.UUID(ratingID)).Delete(&ratingRow{})
	if res.Error != nil {
		return fmt.Errorf("delete rating: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("rating not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

// ListByProperty returns one page of a property's reviews, newest first.
func (s *GormStore) ListByProperty(ctx context.Context, propertyID id.PropertyID, q models.ListQuery) ([]*models.Review, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&ratingRow{}).
		Where("property_id = ?", uuid.UUID(propertyID)).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("count ratings: %w", err)
	}

	var rows []reviewRow
	err = s.db.WithContext(ctx).Raw(`
		SELECT r.*, u.first_name, u.last_name, COALESCE(u.avatar, '') AS avatar
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		WHERE r.property_id = ?
		ORDER BY r.created_at DESC
		OFFSET ? LIMIT ?`, uuid.UUID(propertyID), q.Offset, q.Limit).Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list ratings: %w", err)
	}
	reviews := make([]*models.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, rows[i].toReview())
	}
	return reviews, total, nil
}

// Summary aggregates all ratings of a property in one grouped query.
func (s *GormStore) Summary(ctx context.Context, propertyID id.PropertyID) (*models.Summary, error) {
	var groups []struct {
		Rating int
		Count  int64
	}
	err := s.db.WithContext(ctx).Model(&ratingRow{}).
		Select("rating, COUNT(*) AS count").
		Where("property_id = ?", uuid.UUID(propertyID)).
		Group("rating").
		Scan(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("summarize ratings: %w", err)
	}

	summary := &models.Summary{}
	var sum int64
	for _, g := range groups {
		if g.Rating < 1 || g.Rating > len(summary.Distribution) {
			continue
		}
		summary.Distribution[g.Rating-1] = g.Count
		summary.Total += g.Count
		sum += int64(g.Rating) * g.Count
	}
	if summary.Total > 0 {
		summary.Average = float64(sum) / float64(summary.Total)
	}
	return summary, nil
}

// ListByUser returns one page of the user's ratings with the rated property.
func (s *GormStore) ListByUser(ctx context.Context, userID id.UserID, q models.ListQuery) ([]*models.Rated, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&ratingRow{}).
		Where("user_id = ?", uuid.UUID(userID)).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("count user ratings: %w", err)
	}

	var rows []ratedRow
	err = s.db.WithContext(ctx).Raw(`
		SELECT r.*, p.title, p.type, p.price::float8 AS price, p.city, p.state, p.image_urls
		FROM ratings r
		JOIN properties p ON p.id = r.property_id
		WHERE r.user_id = ?
		ORDER BY r.created_at DESC
		OFFSET ? LIMIT ?`, uuid.UUID(userID), q.Offset, q.Limit).Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list user ratings: %w", err)
	}
	rated := make([]*models.Rated, 0, len(rows))
	for _, r := range rows {
		rated = append(rated, &models.Rated{
			Rating: r.toModel(),
			Property: models.PropertyCard{
				ID:        id.PropertyID(r.PropertyID),
				Title:     r.Title,
				Type:      id.PropertyType(r.Type),
				Price:     r.Price,
				City:      r.City,
				State:     r.State,
				ImageURLs: []string(r.ImageURLs),
			},
		})
	}
	return rated, total, nil
}

func (r ratingRow) toModel() models.Rating {
	m := models.Rating{
		ID:         id.RatingID(r.ID),
		UserID:     id.UserID(r.UserID),
		PropertyID: id.PropertyID(r.PropertyID),
		Rating:     r.Rating,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.Comment != nil {
		m.Comment = *r.Comment
	}
	return m
}

func (r *reviewRow) toReview() *models.Review {
	return &models.Review{
		Rating: r.toModel(),
		Client: models.Author{FirstName: r.FirstName, LastName: r.LastName, AvatarURL: r.Avatar},
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
