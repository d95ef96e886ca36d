package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"estatehub/internal/property/models"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
)

// similarPriceBand is the relative price distance a similar listing may have.
const similarPriceBand = 0.3

const reviewsOnDetail = 20

type propertyRow struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title            string
	Description      string
	Type             string
	ListingType      string
	Status           string
	Price            float64
	Currency         string
	Address          string
	City             string
	State            string
	ZipCode          *string
	Latitude         *float64
	Longitude        *float64
	Bedrooms         *int
	Bathrooms        *int
	Area             *float64
	YearBuilt        *int
	ImageURLs        pq.StringArray `gorm:"column:image_urls;type:text[]"`
	VideoURLs        pq.StringArray `gorm:"column:video_urls;type:text[]"`
	Amenities        pq.StringArray `gorm:"column:amenities;type:text[]"`
	IsFeatured       bool
	AvailableFrom    *time.Time
	PostedByID       uuid.UUID  `gorm:"type:uuid"`
	ManagedByAgentID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (propertyRow) TableName() string { return "properties" }

type viewRow struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PropertyID uuid.UUID  `gorm:"type:uuid"`
	UserID     *uuid.UUID `gorm:"type:uuid"`
	IPAddress  string
	UserAgent  string
	Device     string
	Browser    string
	ViewedAt   time.Time
}

func (viewRow) TableName() string { return "property_views" }

type contactRow struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Avatar    string
	Role      string
	Phone     string
	Email     string
}

type statsRow struct {
	ID            uuid.UUID
	Views         int64
	Favorites     int64
	Ratings       int64
	Complaints    int64
	AverageRating float64
}

type reviewRow struct {
	ID        uuid.UUID
	Rating    int
	Comment   string
	CreatedAt time.Time
	FirstName string
	LastName  string
	Avatar    string
}

// GormStore persists listings and their view log in PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, p *models.Property) error {
	if p == nil {
		return fmt.Errorf("property is required")
	}
	row := toRow(p)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	p.CreatedAt, p.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return nil
}

func (s *GormStore) FindByID(ctx context.Context, propertyID id.PropertyID) (*models.Property, error) {
	var row propertyRow
	err := s.db.WithContext(ctx).Where("id = ?", uuid.UUID(propertyID)).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("property not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find property by id: %w", err)
	}
	return row.toModel(), nil
}

// FindDetail loads a listing with its contacts, counts and latest reviews.
func (s *GormStore) FindDetail(ctx context.Context, propertyID id.PropertyID) (*models.Detail, error) {
	p, err := s.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	listings, err := s.enrich(ctx, []*models.Property{p})
	if err != nil {
		return nil, err
	}

	var reviews []reviewRow
	err = s.db.WithContext(ctx).Raw(`
		SELECT r.id, r.rating, COALESCE(r.comment, '') AS comment, r.created_at,
		       u.first_name, u.last_name, COALESCE(u.avatar, '') AS avatar
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		WHERE r.property_id = ?
		ORDER BY r.created_at DESC
		LIMIT ?`, uuid.UUID(propertyID), reviewsOnDetail).Scan(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}

	detail := &models.Detail{Listing: *listings[0], Reviews: make([]models.Review, 0, len(reviews))}
	for _, r := range reviews {
		detail.Reviews = append(detail.Reviews, models.Review{
			ID:         id.RatingID(r.ID),
			Rating:     r.Rating,
			Comment:    r.Comment,
			ClientName: r.FirstName + " " + r.LastName,
			AvatarURL:  r.Avatar,
			CreatedAt:  r.CreatedAt,
		})
	}
	return detail, nil
}

// List returns one page of listings matching f and the total match count.
func (s *GormStore) List(ctx context.Context, f models.Filter, q models.ListQuery) ([]*models.Listing, int64, error) {
	var total int64
	if err := s.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}
	if total == 0 {
		return []*models.Listing{}, 0, nil
	}

	tx := s.filtered(ctx, f)
	if q.OrderBy != "" {
		tx = tx.Order(q.OrderBy)
	}
	var rows []propertyRow
	if err := tx.Offset(q.Offset).Limit(q.Limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}

	listings, err := s.enrich(ctx, toModels(rows))
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (s *GormStore) filtered(ctx context.Context, f models.Filter) *gorm.DB {
	tx := s.db.WithContext(ctx).Model(&propertyRow{})
	switch {
	case f.Status != "":
		tx = tx.Where("status = ?", string(f.Status))
	case f.PostedBy == nil && !f.AnyStatus:
		tx = tx.Where("status = ?", string(id.PropertyAvailable))
	}
	if f.PostedBy != nil {
		tx = tx.Where("posted_by_id = ?", uuid.UUID(*f.PostedBy))
	}
	if f.ListingType != "" {
		tx = tx.Where("listing_type = ?", string(f.ListingType))
	}
	if f.Type != "" {
		tx = tx.Where("type = ?", string(f.Type))
	}
	if f.City != "" {
		tx = tx.Where("city ILIKE ?", contains(f.City))
	}
	if f.State != "" {
		tx = tx.Where("state ILIKE ?", contains(f.State))
	}
	if f.MinPrice != nil {
		tx = tx.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		tx = tx.Where("price <= ?", *f.MaxPrice)
	}
	if f.Bedrooms != nil {
		tx = tx.Where("bedrooms >= ?", *f.Bedrooms)
	}
	if f.Bathrooms != nil {
		tx = tx.Where("bathrooms >= ?", *f.Bathrooms)
	}
	if len(f.Amenities) > 0 {
		tx = tx.Where("amenities && ?::text[]", pq.StringArray(f.Amenities))
	}
	if f.IsFeatured != nil {
		tx = tx.Where("is_featured = ?", *f.IsFeatured)
	}
	if f.Search != "" {
		term := contains(f.Search)
		tx = tx.Where("(title ILIKE ? OR description ILIKE ? OR address ILIKE ?)", term, term, term)
	}
	return tx
}

// Similar returns available listings of the same type, listing type and city
// whose price is within 30% of p's, newest first.
func (s *GormStore) Similar(ctx context.Context, p *models.Property, limit int) ([]*models.Listing, error) {
	band := p.Price * similarPriceBand
	var rows []propertyRow
	err := s.db.WithContext(ctx).
		Where("id <> ?", uuid.UUID(p.ID)).
		Where("status = ?", string(id.PropertyAvailable)).
		Where("type = ? AND listing_type = ? AND city = ?", string(p.Type), string(p.ListingType), p.City).
		Where("price BETWEEN ? AND ?", p.Price-band, p.Price+band).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find similar properties: %w", err)
	}
	return s.enrich(ctx, toModels(rows))
}

// Update applies the non-nil fields of update and returns the stored listing.
func (s *GormStore) Update(ctx context.Context, propertyID id.PropertyID, update models.Update, at time.Time) (*models.Property, error) {
	fields := updateFields(update)
	if len(fields) > 0 {
		fields["updated_at"] = at
		res := s.db.WithContext(ctx).Model(&propertyRow{}).
			Where("id = ?", uuid.UUID(propertyID)).
			Updates(fields)
		if res.Error != nil {
			return nil, fmt.Errorf("update property: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("property not found: %w", sentinel.ErrNotFound)
		}
	}
	return s.FindByID(ctx, propertyID)
}

func updateFields(u models.Update) map[string]any {
	fields := map[string]any{}
	set := func(column string, ok bool, value func() any) {
		if ok {
			fields[column] = value()
		}
	}
	set("title", u.Title != nil, func() any { return *u.Title })
	set("description", u.Description != nil, func() any { return *u.Description })
	set("type", u.Type != nil, func() any { return string(*u.Type) })
	set("listing_type", u.ListingType != nil, func() any { return string(*u.ListingType) })
	set("status", u.Status != nil, func() any { return string(*u.Status) })
	set("price", u.Price != nil, func() any { return *u.Price })
	set("address", u.Address != nil, func() any { return *u.Address })
	set("city", u.City != nil, func() any { return *u.City })
	set("state", u.State != nil, func() any { return *u.State })
	set("zip_code", u.ZipCode != nil, func() any { return *u.ZipCode })
	set("latitude", u.Latitude != nil, func() any { return *u.Latitude })
	set("longitude", u.Longitude != nil, func() any { return *u.Longitude })
	set("bedrooms", u.Bedrooms != nil, func() any { return *u.Bedrooms })
	set("bathrooms", u.Bathrooms != nil, func() any { return *u.Bathrooms })
	set("area", u.Area != nil, func() any { return *u.Area })
	set("year_built", u.YearBuilt != nil, func() any { return *u.YearBuilt })
	set("image_urls", u.ImageURLs != nil, func() any { return pq.StringArray(u.ImageURLs) })
	set("video_urls", u.VideoURLs != nil, func() any { return pq.StringArray(u.VideoURLs) })
	set("amenities", u.Amenities != nil, func() any { return pq.StringArray(u.Amenities) })
	set("is_featured", u.IsFeatured != nil, func() any { return *u.IsFeatured })
	set("available_from", u.AvailableFrom != nil, func() any { return *u.AvailableFrom })
	set("managed_by_agent_id", u.ManagedByAgentID != nil, func() any { return uuid.UUID(*u.ManagedByAgentID) })
	return fields
}

func (s *GormStore) Delete(ctx context.Context, propertyID id.PropertyID) error {
	res := s.db.WithContext(ctx).Where("id = ?", uuid.UUID(propertyID)).Delete(&propertyRow{})
	if res.Error != nil {
		return fmt.Errorf("delete property: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("property not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

// FindContact returns the public card of a user, used to check managing agents.
func (s *GormStore) FindContact(ctx context.Context, userID id.UserID) (*models.Contact, error) {
	contacts, err := s.contacts(ctx, []uuid.UUID{uuid.UUID(userID)})
	if err != nil {
		return nil, err
	}
	c, ok := contacts[uuid.UUID(userID)]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	return c, nil
}

// RecentViewExists reports whether the viewer already has a view of the
// property since the given time. Signed-in viewers are matched by user id,
// anonymous ones by IP address.
func (s *GormStore) RecentViewExists(ctx context.Context, propertyID id.PropertyID, userID *id.UserID, ip string, since time.Time) (bool, error) {
	tx := s.db.WithContext(ctx).Model(&viewRow{}).
		Where("property_id = ? AND viewed_at >= ?", uuid.UUID(propertyID), since)
	if userID != nil {
		tx = tx.Where("user_id = ?", uuid.UUID(*userID))
	} else {
		tx = tx.Where("user_id IS NULL AND ip_address = ?", ip)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check recent view: %w", err)
	}
	return count > 0, nil
}

func (s *GormStore) RecordView(ctx context.Context, v *models.View) error {
	row := viewRow{
		ID:         uuid.New(),
		PropertyID: uuid.UUID(v.PropertyID),
		IPAddress:  v.IPAddress,
		UserAgent:  v.UserAgent,
		Device:     v.Device,
		Browser:    v.Browser,
		ViewedAt:   v.ViewedAt,
	}
	if v.UserID != nil {
		uid := uuid.UUID(*v.UserID)
		row.UserID = &uid
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("record property view: %w", err)
	}
	return nil
}

// enrich attaches contacts and engagement counts with two batched queries.
func (s *GormStore) enrich(ctx context.Context, props []*models.Property) ([]*models.Listing, error) {
	listings := make([]*models.Listing, 0, len(props))
	if len(props) == 0 {
		return listings, nil
	}

	propertyIDs := make([]uuid.UUID, 0, len(props))
	userIDs := make([]uuid.UUID, 0, len(props))
	for _, p := range props {
		propertyIDs = append(propertyIDs, uuid.UUID(p.ID))
		userIDs = append(userIDs, uuid.UUID(p.PostedByID))
		if p.ManagedByAgentID != nil {
			userIDs = append(userIDs, uuid.UUID(*p.ManagedByAgentID))
		}
	}

	contacts, err := s.contacts(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	var stats []statsRow
	err = s.db.WithContext(ctx).Raw(`
		SELECT p.id,
		       (SELECT COUNT(*) FROM property_views v WHERE v.property_id = p.id) AS views,
		       (SELECT COUNT(*) FROM favorites f WHERE f.property_id = p.id) AS favorites,
		       (SELECT COUNT(*) FROM ratings r WHERE r.property_id = p.id) AS ratings,
		       (SELECT COUNT(*) FROM complaints c WHERE c.property_id = p.id) AS complaints,
		       (SELECT COALESCE(AVG(r.rating), 0)::float8 FROM ratings r WHERE r.property_id = p.id) AS average_rating
		FROM properties p
		WHERE p.id IN ?`, propertyIDs).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("load property stats: %w", err)
	}
	byID := make(map[uuid.UUID]statsRow, len(stats))
	for _, st := range stats {
		byID[st.ID] = st
	}

	for _, p := range props {
		st := byID[uuid.UUID(p.ID)]
		l := &models.Listing{
			Property:      p,
			PostedBy:      contacts[uuid.UUID(p.PostedByID)],
			Counts:        models.Counts{Views: st.Views, Favorites: st.Favorites, Ratings: st.Ratings, Complaints: st.Complaints},
			AverageRating: st.AverageRating,
		}
		if p.ManagedByAgentID != nil {
			l.ManagedBy = contacts[uuid.UUID(*p.ManagedByAgentID)]
		}
		listings = append(listings, l)
	}
	return listings, nil
}

func (s *GormStore) contacts(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*models.Contact, error) {
	var rows []contactRow
	err := s.db.WithContext(ctx).Table("users").
		Select("id, first_name, last_name, COALESCE(avatar, '') AS avatar, role, COALESCE(phone, '') AS phone, COALESCE(email, '') AS email").
		Where("id IN ?", userIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load contacts: %w", err)
	}
	out := make(map[uuid.UUID]*models.Contact, len(rows))
	for _, r := range rows {
		out[r.ID] = &models.Contact{
			ID:        id.UserID(r.ID),
			FirstName: r.FirstName,
			LastName:  r.LastName,
			AvatarURL: r.Avatar,
			Role:      id.Role(r.Role),
			Phone:     r.Phone,
			Email:     r.Email,
		}
	}
	return out, nil
}

func contains(term string) string {
	return "%" + term + "%"
}

func toRow(p *models.Property) propertyRow {
	row := propertyRow{
		ID:            uuid.UUID(p.ID),
		Title:         p.Title,
		Description:   p.Description,
		Type:          string(p.Type),
		ListingType:   string(p.ListingType),
		Status:        string(p.Status),
		Price:         p.Price,
		Currency:      p.Currency,
		Address:       p.Address,
		City:          p.City,
		State:         p.State,
		ZipCode:       p.ZipCode,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		Area:          p.Area,
		YearBuilt:     p.YearBuilt,
		ImageURLs:     nonNil(p.ImageURLs),
		VideoURLs:     nonNil(p.VideoURLs),
		Amenities:     nonNil(p.Amenities),
		IsFeatured:    p.IsFeatured,
		AvailableFrom: p.AvailableFrom,
		PostedByID:    uuid.UUID(p.PostedByID),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.ManagedByAgentID != nil {
		agent := uuid.UUID(*p.ManagedByAgentID)
		row.ManagedByAgentID = &agent
	}
	return row
}

func nonNil(s []string) pq.StringArray {
	if s == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(s)
}

func (r *propertyRow) toModel() *models.Property {
	p := &models.Property{
		ID:            id.PropertyID(r.ID),
		Title:         r.Title,
		Description:   r.Description,
		Type:          id.PropertyType(r.Type),
		ListingType:   id.ListingType(r.ListingType),
		Status:        id.PropertyStatus(r.Status),
		Price:         r.Price,
		Currency:      r.Currency,
		Address:       r.Address,
		City:          r.City,
		State:         r.State,
		ZipCode:       r.ZipCode,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		Bedrooms:      r.Bedrooms,
		Bathrooms:     r.Bathrooms,
		Area:          r.Area,
		YearBuilt:     r.YearBuilt,
		ImageURLs:     []string(r.ImageURLs),
		VideoURLs:     []string(r.VideoURLs),
		Amenities:     []string(r.Amenities),
		IsFeatured:    r.IsFeatured,
		AvailableFrom: r.AvailableFrom,
		PostedByID:    id.UserID(r.PostedByID),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.ManagedByAgentID != nil {
		agent := id.UserID(*r.ManagedByAgentID)
		p.ManagedByAgentID = &agent
	}
	return p
}

func toModels(rows []propertyRow) []*models.Property {
	out := make([]*models.Property, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out
}
