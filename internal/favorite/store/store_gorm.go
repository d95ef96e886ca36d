package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"estatehub/internal/favorite/models"
	"estatehub/internal/platform/database"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
)

type favoriteRow struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid"`
	PropertyID uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
}

func (favoriteRow) TableName() string { return "favorites" }

// summaryRow is scanned from summarySelect; the favorite columns are empty
// when the query is not driven from the favorites table.
type summaryRow struct {
	FavoriteID    uuid.UUID
	FavoritedAt   time.Time
	ID            uuid.UUID
	Title         string
	Type          string
	ListingType   string
	Status        string
	Price         float64
	Currency      string
	City          string
	State         string
	ImageURLs     pq.StringArray `gorm:"column:image_urls;type:text[]"`
	FirstName     string
	LastName      string
	Avatar        string
	Views         int64
	FavoritedBy   int64
	TotalRatings  int64
	AverageRating float64
}

const summarySelect = `
	p.id, p.title, p.type, p.listing_type, p.status, p.price::float8 AS price, p.currency,
	p.city, p.state, p.image_urls,
	u.first_name, u.last_name, COALESCE(u.avatar, '') AS avatar,
	(SELECT COUNT(*) FROM property_views v WHERE v.property_id = p.id) AS views,
	(SELECT COUNT(*) FROM favorites f WHERE f.property_id = p.id) AS favorited_by,
	(SELECT COUNT(*) FROM ratings r WHERE r.property_id = p.id) AS total_ratings,
	(SELECT COALESCE(AVG(r.rating), 0)::float8 FROM ratings r WHERE r.property_id = p.id) AS average_rating`

// GormStore persists favorites in PostgreSQL through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Summary loads the card of a property. It doubles as the existence check
// before a favorite is added.
func (s *GormStore) Summary(ctx context.Context, propertyID id.PropertyID) (*models.PropertySummary, error) {
	var rows []summaryRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT `+summarySelect+`
		FROM properties p
		JOIN users u ON u.id = p.posted_by_id
		WHERE p.id = ?`, uuid.UUID(propertyID)).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load property summary: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("property not found: %w", sentinel.ErrNotFound)
	}
	summary := rows[0].toSummary()
	return &summary, nil
}

func (s *GormStore) Create(ctx context.Context, f *models.Favorite) error {
	row := favoriteRow{
		ID:         uuid.UUID(f.ID),
		UserID:     uuid.UUID(f.UserID),
		PropertyID: uuid.UUID(f.PropertyID),
		CreatedAt:  f.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("favorite: %w", sentinel.ErrAlreadyExists)
		}
		return fmt.Errorf("create favorite: %w", err)
	}
	f.CreatedAt = row.CreatedAt
	return nil
}

func (s *GormStore) Find(ctx context.Context, userID id.UserID, propertyID id.PropertyID) (*models.Favorite, error) {
	var row favoriteRow
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", uuid.UUID(userID), uuid.UUID(propertyID)).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("favorite not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find favorite: %w", err)
	}
	return &models.Favorite{
		ID:         id.FavoriteID(row.ID),
		UserID:     id.UserID(row.UserID),
		PropertyID: id.PropertyID(row.PropertyID),
		CreatedAt:  row.CreatedAt,
	}, nil
}

func (s *GormStore) Delete(ctx context.Context, userID id.UserID, propertyID id.PropertyID) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", uuid.UUID(userID), uuid.UUID(propertyID)).
		Delete(&favoriteRow{})
	if res.Error != nil {
		return fmt.Errorf("delete favorite: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("favorite not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

// ListByUser returns one page of the user's favorites, newest first.
func (s *GormStore) ListByUser(ctx context.Context, userID id.UserID, q models.ListQuery) ([]*models.Saved, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&favoriteRow{}).
		Where("user_id = ?", uuid.UUID(userID)).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("count favorites: %w", err)
	}
	if total == 0 {
		return []*models.Saved{}, 0, nil
	}

	var rows []summaryRow
	err = s.db.WithContext(ctx).Raw(`
		SELECT fav.id AS favorite_id, fav.created_at AS favorited_at, `+summarySelect+`
		FROM favorites fav
		JOIN properties p ON p.id = fav.property_id
		JOIN users u ON u.id = p.posted_by_id
		WHERE fav.user_id = ?
		ORDER BY fav.created_at DESC
		OFFSET ? LIMIT ?`, uuid.UUID(userID), q.Offset, q.Limit).Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list favorites: %w", err)
	}

	saved := make([]*models.Saved, 0, len(rows))
	for _, r := range rows {
		saved = append(saved, &models.Saved{
			Favorite: models.Favorite{
				ID:         id.FavoriteID(r.FavoriteID),
				UserID:     userID,
				PropertyID: id.PropertyID(r.ID),
				CreatedAt:  r.FavoritedAt,
			},
			Property: r.toSummary(),
		})
	}
	return saved, total, nil
}

func (r summaryRow) toSummary() models.PropertySummary {
	return models.PropertySummary{
		ID:            id.PropertyID(r.ID),
		Title:         r.Title,
		Type:          id.PropertyType(r.Type),
		ListingType:   id.ListingType(r.ListingType),
		Status:        id.PropertyStatus(r.Status),
		Price:         r.Price,
		Currency:      r.Currency,
		City:          r.City,
		State:         r.State,
		ImageURLs:     []string(r.ImageURLs),
		PosterFirst:   r.FirstName,
		PosterLast:    r.LastName,
		PosterAvatar:  r.Avatar,
		Views:         r.Views,
		FavoritedBy:   r.FavoritedBy,
		TotalRatings:  r.TotalRatings,
		AverageRating: r.AverageRating,
	}
}
