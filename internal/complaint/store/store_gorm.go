package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"estatehub/internal/complaint/models"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
)

type complaintRow struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID        uuid.UUID `gorm:"type:uuid"`
	PropertyID      uuid.UUID `gorm:"type:uuid"`
	Subject         string
	Description     string
	Status          string
	ResolutionNotes *string
	ResolvedAt      *time.Time
	ResolvedBy      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (complaintRow) TableName() string { return "complaints" }

type detailRow struct {
	complaintRow
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Title     string
	City      string
	State     string
}

const detailSelect = `
	SELECT c.*, u.first_name, u.last_name,
		COALESCE(u.email, '') AS email, COALESCE(u.phone, '') AS phone,
		p.title, p.city, p.state
	FROM complaints c
	JOIN users u ON u.id = c.client_id
	JOIN properties p ON p.id = c.property_id`

// GormStore persists complaints in PostgreSQL through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) PropertyExists(ctx context.Context, propertyID id.PropertyID) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Table("properties").
		Where("id = ?", uuid.UUID(propertyID)).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check property: %w", err)
	}
	return n > 0, nil
}

func (s *GormStore) Create(ctx context.Context, c *models.Complaint) error {
	row := complaintRow{
		ID:          uuid.UUID(c.ID),
		ClientID:    uuid.UUID(c.ClientID),
		PropertyID:  uuid.UUID(c.PropertyID),
		Subject:     c.Subject,
		Description: c.Description,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create complaint: %w", err)
	}
	return nil
}

func (s *GormStore) FindDetail(ctx context.Context, complaintID id.ComplaintID) (*models.Detail, error) {
	var rows []detailRow
	err := s.db.WithContext(ctx).Raw(detailSelect+` WHERE c.id = ?`, uuid.UUID(complaintID)).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find complaint: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("complaint not found: %w", sentinel.ErrNotFound)
	}
	return rows[0].toDetail(), nil
}

// List returns one page of complaints matching filter, newest first.
func (s *GormStore) List(ctx context.Context, filter models.Filter, q models.ListQuery) ([]*models.Detail, int64, error) {
	where, args := filterClause(filter)

	var total int64
	if err := s.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM complaints c`+where, args...).Scan(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count complaints: %w", err)
	}

	var rows []detailRow
	args = append(args, q.Offset, q.Limit)
	err := s.db.WithContext(ctx).Raw(detailSelect+where+`
		ORDER BY c.created_at DESC
		OFFSET ? LIMIT ?`, args...).Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list complaints: %w", err)
	}
	details := make([]*models.Detail, 0, len(rows))
	for i := range rows {
		details = append(details, rows[i].toDetail())
	}
	return details, total, nil
}

// Resolve applies an admin status change. Moving to RESOLVED stamps
// resolved_at and resolved_by; any other status leaves them untouched.
func (s *GormStore) Resolve(ctx context.Context, complaintID id.ComplaintID, res models.Resolution) error {
	fields := map[string]any{
		"status":     string(res.Status),
		"updated_at": res.At,
	}
	if res.ResolutionNotes != nil {
		fields["resolution_notes"] = *res.ResolutionNotes
	}
	if res.Status == id.ComplaintResolved {
		fields["resolved_at"] = res.At
		fields["resolved_by"] = uuid.UUID(res.ResolvedBy)
	}
	result := s.db.WithContext(ctx).Model(&complaintRow{}).
		Where("id = ?", uuid.UUID(complaintID)).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update complaint: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("complaint not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func filterClause(filter models.Filter) (string, []any) {
	where, args := ` WHERE TRUE`, []any{}
	if filter.Status != "" {
		where += ` AND c.status = ?`
		args = append(args, string(filter.Status))
	}
	if !filter.ClientID.IsNil() {
		where += ` AND c.client_id = ?`
		args = append(args, uuid.UUID(filter.ClientID))
	}
	return where, args
}

func (r *detailRow) toDetail() *models.Detail {
	c := models.Complaint{
		ID:          id.ComplaintID(r.ID),
		ClientID:    id.UserID(r.ClientID),
		PropertyID:  id.PropertyID(r.PropertyID),
		Subject:     r.Subject,
		Description: r.Description,
		Status:      id.ComplaintStatus(r.Status),
		ResolvedAt:  r.ResolvedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.ResolutionNotes != nil {
		c.ResolutionNotes = *r.ResolutionNotes
	}
	if r.ResolvedBy != nil {
		by := id.UserID(*r.ResolvedBy)
		c.ResolvedBy = &by
	}
	return &models.Detail{
		Complaint: c,
		Client:    models.Party{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email, Phone: r.Phone},
		Property:  models.PropertyRef{Title: r.Title, City: r.City, State: r.State},
	}
}
