package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	id "estatehub/pkg/domain"
)

// GormSource reads the dashboard figures from PostgreSQL.
type GormSource struct {
	db *gorm.DB
}

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{db: db}
}

var _ Source = (*GormSource)(nil)

type groupRow struct {
	GroupKey string
	Count    int64
}

// groupBy counts rows of table per value of column. Both names are
// package constants, never request input.
func (s *GormSource) groupBy(ctx context.Context, table, column string) ([]GroupCount, error) {
	var rows []groupRow
	err := s.db.WithContext(ctx).Table(table).
		Select(fmt.Sprintf("COALESCE(%s, '') AS group_key, COUNT(*) AS count", column)).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count %s by %s: %w", table, column, err)
	}
	out := make([]GroupCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, GroupCount{Key: r.GroupKey, Count: r.Count})
	}
	return out, nil
}

func (s *GormSource) UsersByRole(ctx context.Context) ([]GroupCount, error) {
	return s.groupBy(ctx, "users", "role")
}

func (s *GormSource) UsersByVerificationStatus(ctx context.Context) ([]GroupCount, error) {
	return s.groupBy(ctx, "users", "verification_status")
}

func (s *GormSource) PropertiesByStatus(ctx context.Context) ([]GroupCount, error) {
	return s.groupBy(ctx, "properties", "status")
}

func (s *GormSource) PropertiesByType(ctx context.Context) ([]GroupCount, error) {
	return s.groupBy(ctx, "properties", "type")
}

func (s *GormSource) PropertiesByListingType(ctx context.Context) ([]GroupCount, error) {
	return s.groupBy(ctx, "properties", "listing_type")
}

func (s *GormSource) PendingVerifications(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Table("user_verifications").
		Where("status = ?", string(id.VerificationPending)).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count pending verifications: %w", err)
	}
	return n, nil
}

func (s *GormSource) PendingComplaints(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Table("complaints").
		Where("status = ?", string(id.ComplaintPending)).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count pending complaints: %w", err)
	}
	return n, nil
}

func (s *GormSource) EngagementTotals(ctx context.Context) (Totals, error) {
	var t Totals
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM ratings) AS ratings,
			(SELECT COUNT(*) FROM favorites) AS favorites,
			(SELECT COUNT(*) FROM property_views) AS views`).
		Scan(&t).Error
	if err != nil {
		return Totals{}, fmt.Errorf("count engagement: %w", err)
	}
	return t, nil
}

func (s *GormSource) UsersCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Table("users").
		Where("created_at >= ?", since).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count new users: %w", err)
	}
	return n, nil
}

type recentUserRow struct {
	ID                 uuid.UUID
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	Role               string
	VerificationStatus string
	CreatedAt          time.Time
	LastLogin          *time.Time
}

func (s *GormSource) RecentUsers(ctx context.Context, limit int) ([]RecentUser, error) {
	var rows []recentUserRow
	err := s.db.WithContext(ctx).Table("users").
		Select(`id, first_name, last_name, COALESCE(email, '') AS email, COALESCE(phone, '') AS phone,
			role, verification_status, created_at, last_login`).
		Order("created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list recent users: %w", err)
	}
	out := make([]RecentUser, 0, len(rows))
	for _, r := range rows {
		out = append(out, RecentUser{
			ID:                 id.UserID(r.ID),
			FirstName:          r.FirstName,
			LastName:           r.LastName,
			Email:              r.Email,
			Phone:              r.Phone,
			Role:               r.Role,
			VerificationStatus: r.VerificationStatus,
			CreatedAt:          r.CreatedAt,
			LastLogin:          r.LastLogin,
		})
	}
	return out, nil
}

// AveragePrice reads AVG(price) as text so the decimal keeps its full
// precision until it is rounded.
func (s *GormSource) AveragePrice(ctx context.Context) (*big.Rat, error) {
	var avg sql.NullString
	err := s.db.WithContext(ctx).Raw(`SELECT AVG(price)::text FROM properties`).Row().Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("average property price: %w", err)
	}
	return parseDecimal(avg)
}

func (s *GormSource) RegistrationTimes(ctx context.Context, since time.Time) ([]time.Time, error) {
	return s.createdSince(ctx, "users", since)
}

func (s *GormSource) PropertyCreationTimes(ctx context.Context, since time.Time) ([]time.Time, error) {
	return s.createdSince(ctx, "properties", since)
}

func (s *GormSource) createdSince(ctx context.Context, table string, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := s.db.WithContext(ctx).Table(table).
		Where("created_at >= ?", since).
		Pluck("created_at", &times).Error
	if err != nil {
		return nil, fmt.Errorf("list %s creation times: %w", table, err)
	}
	return times, nil
}

type activityRow struct {
	ID               uuid.UUID
	Role             string
	LastLogin        *time.Time
	PropertiesPosted int64
	Ratings          int64
	Favorites        int64
	Complaints       int64
}

const engagementCounts = `
	(SELECT COUNT(*) FROM properties p WHERE p.posted_by_id = u.id) AS properties_posted,
	(SELECT COUNT(*) FROM ratings r WHERE r.user_id = u.id) AS ratings,
	(SELECT COUNT(*) FROM favorites f WHERE f.user_id = u.id) AS favorites,
	(SELECT COUNT(*) FROM complaints c WHERE c.client_id = u.id) AS complaints`

func (s *GormSource) UserEngagement(ctx context.Context, roles []id.Role) ([]UserActivity, error) {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}

	var rows []activityRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT u.id, u.role, u.last_login,`+engagementCounts+`
		FROM users u
		WHERE u.role IN ?
		ORDER BY u.created_at DESC`, names).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list user engagement: %w", err)
	}
	out := make([]UserActivity, 0, len(rows))
	for _, r := range rows {
		out = append(out, UserActivity{
			UserID:           id.UserID(r.ID),
			Role:             r.Role,
			LastLogin:        r.LastLogin,
			PropertiesPosted: r.PropertiesPosted,
			Ratings:          r.Ratings,
			Favorites:        r.Favorites,
			Complaints:       r.Complaints,
		})
	}
	return out, nil
}

type propertyRecordRow struct {
	ID              uuid.UUID
	Title           string
	Type            string
	ListingType     string
	Status          string
	Price           sql.NullString
	Currency        string
	Address         string
	City            string
	State           string
	Bedrooms        *int
	Bathrooms       *int
	Area            *float64
	YearBuilt       *int
	ImageURLs       pq.StringArray `gorm:"column:image_urls;type:text[]"`
	VideoURLs       pq.StringArray `gorm:"column:video_urls;type:text[]"`
	Amenities       pq.StringArray `gorm:"type:text[]"`
	IsFeatured      bool
	AvailableFrom   *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PosterID        *uuid.UUID
	PosterFirstName *string
	PosterLastName  *string
	PosterEmail     *string
	PosterPhone     *string
	AgentID         *uuid.UUID
	AgentFirstName  *string
	AgentLastName   *string
	AgentEmail      *string
	AgentPhone      *string
	Views           int64
	Favorites       int64
	Ratings         int64
	Complaints      int64
}

func (s *GormSource) Properties(ctx context.Context) ([]PropertyRecord, error) {
	var rows []propertyRecordRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT p.id, p.title, p.type, p.listing_type, p.status, p.price::text AS price, p.currency,
			p.address, p.city, p.state, p.bedrooms, p.bathrooms, p.area, p.year_built,
			p.image_urls, p.video_urls, p.amenities, p.is_featured, p.available_from,
			p.created_at, p.updated_at,
			pb.id AS poster_id, pb.first_name AS poster_first_name, pb.last_name AS poster_last_name,
			pb.email AS poster_email, pb.phone AS poster_phone,
			ag.id AS agent_id, ag.first_name AS agent_first_name, ag.last_name AS agent_last_name,
			ag.email AS agent_email, ag.phone AS agent_phone,
			(SELECT COUNT(*) FROM property_views v WHERE v.property_id = p.id) AS views,
			(SELECT COUNT(*) FROM favorites f WHERE f.property_id = p.id) AS favorites,
			(SELECT COUNT(*) FROM ratings r WHERE r.property_id = p.id) AS ratings,
			(SELECT COUNT(*) FROM complaints c WHERE c.property_id = p.id) AS complaints
		FROM properties p
		LEFT JOIN users pb ON pb.id = p.posted_by_id
		LEFT JOIN users ag ON ag.id = p.managed_by_agent_id
		ORDER BY p.created_at DESC`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list dashboard properties: %w", err)
	}

	out := make([]PropertyRecord, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].toRecord()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *propertyRecordRow) toRecord() (PropertyRecord, error) {
	price, err := parseDecimal(r.Price)
	if err != nil {
		return PropertyRecord{}, fmt.Errorf("property %s: %w", r.ID, err)
	}
	return PropertyRecord{
		ID:            id.PropertyID(r.ID),
		Title:         r.Title,
		Type:          r.Type,
		ListingType:   r.ListingType,
		Status:        r.Status,
		Price:         price,
		Currency:      r.Currency,
		Address:       r.Address,
		City:          r.City,
		State:         r.State,
		Bedrooms:      r.Bedrooms,
		Bathrooms:     r.Bathrooms,
		Area:          r.Area,
		YearBuilt:     r.YearBuilt,
		ImageURLs:     []string(r.ImageURLs),
		VideoURLs:     []string(r.VideoURLs),
		Amenities:     []string(r.Amenities),
		IsFeatured:    r.IsFeatured,
		AvailableFrom: r.AvailableFrom,
		PostedBy:      person(r.PosterID, r.PosterFirstName, r.PosterLastName, r.PosterEmail, r.PosterPhone),
		ManagedBy:     person(r.AgentID, r.AgentFirstName, r.AgentLastName, r.AgentEmail, r.AgentPhone),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		Views:         r.Views,
		Favorites:     r.Favorites,
		Ratings:       r.Ratings,
		Complaints:    r.Complaints,
	}, nil
}

type userRecordRow struct {
	ID                 uuid.UUID
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	Role               string
	VerificationStatus string
	IsEmailVerified    bool
	Avatar             string
	LastLogin          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	HasAgentProfile    bool
	Experience         int
	Specialties        pq.StringArray `gorm:"type:text[]"`
	RequestStatus      *string
	RequestSubmittedAt *time.Time
	RequestReviewedAt  *time.Time
	PropertiesPosted   int64
	Ratings            int64
	Favorites          int64
	Complaints         int64
}

func (s *GormSource) Users(ctx context.Context) ([]UserRecord, error) {
	var rows []userRecordRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT u.id, u.first_name, u.last_name,
			COALESCE(u.email, '') AS email, COALESCE(u.phone, '') AS phone,
			u.role, u.verification_status, u.is_email_verified, COALESCE(u.avatar, '') AS avatar,
			u.last_login, u.created_at, u.updated_at,
			ap.user_id IS NOT NULL AS has_agent_profile,
			COALESCE(ap.experience, 0) AS experience, ap.specialties,
			uv.status AS request_status, uv.submitted_at AS request_submitted_at,
			uv.reviewed_at AS request_reviewed_at,`+engagementCounts+`
		FROM users u
		LEFT JOIN agent_profiles ap ON ap.user_id = u.id
		LEFT JOIN user_verifications uv ON uv.user_id = u.id
		ORDER BY u.created_at DESC`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list dashboard users: %w", err)
	}

	out := make([]UserRecord, 0, len(rows))
	for _, r := range rows {
		rec := UserRecord{
			ID:                 id.UserID(r.ID),
			FirstName:          r.FirstName,
			LastName:           r.LastName,
			Email:              r.Email,
			Phone:              r.Phone,
			Role:               r.Role,
			VerificationStatus: r.VerificationStatus,
			IsEmailVerified:    r.IsEmailVerified,
			AvatarURL:          r.Avatar,
			LastLogin:          r.LastLogin,
			CreatedAt:          r.CreatedAt,
			UpdatedAt:          r.UpdatedAt,
			PropertiesPosted:   r.PropertiesPosted,
			Ratings:            r.Ratings,
			Favorites:          r.Favorites,
			Complaints:         r.Complaints,
		}
		if r.HasAgentProfile {
			rec.Agent = &AgentProfile{Experience: r.Experience, Specialties: []string(r.Specialties)}
		}
		if r.RequestStatus != nil && r.RequestSubmittedAt != nil {
			rec.Verification = &VerificationInfo{
				Status:      *r.RequestStatus,
				SubmittedAt: *r.RequestSubmittedAt,
				ReviewedAt:  r.RequestReviewedAt,
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func person(userID *uuid.UUID, first, last, email, phone *string) *Person {
	if userID == nil {
		return nil
	}
	return &Person{
		ID:        id.UserID(*userID),
		FirstName: deref(first),
		LastName:  deref(last),
		Email:     deref(email),
		Phone:     deref(phone),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// parseDecimal converts a NUMERIC rendered as text. NULL yields nil.
func parseDecimal(v sql.NullString) (*big.Rat, error) {
	if !v.Valid {
		return nil, nil
	}
	r, ok := new(big.Rat).SetString(v.String)
	if !ok {
		return nil, fmt.Errorf("parse decimal %q", v.String)
	}
	return r, nil
}
