package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"estatehub/internal/sentinel"
	"estatehub/internal/verification/models"
	id "estatehub/pkg/domain"
)

const defaultTxTimeout = 5 * time.Second

type verificationRow struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid"`
	DocumentType string
	DocumentURL  string
	Status       string
	StatusReason *string
	SubmittedAt  time.Time
	ReviewedAt   *time.Time
	ReviewedBy   *uuid.UUID `gorm:"type:uuid"`
}

func (verificationRow) TableName() string { return "user_verifications" }

type detailRow struct {
	verificationRow
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Role      string
}

const detailSelect = `
	SELECT v.*, u.first_name, u.last_name,
		COALESCE(u.email, '') AS email, COALESCE(u.phone, '') AS phone, u.role
	FROM user_verifications v
	JOIN users u ON u.id = v.user_id`

type txKey struct{}

// GormStore persists verification requests in PostgreSQL through gorm.
// Methods called inside RunInTx share its transaction.
type GormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// RunInTx runs fn in one database transaction. fn must pass the context it
// receives to the store so its writes join the transaction.
func (s *GormStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTxTimeout)
		defer cancel()
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return s.db.WithContext(ctx)
}

func (s *GormStore) FindByUser(ctx context.Context, userID id.UserID) (*models.Verification, error) {
	var row verificationRow
	err := s.conn(ctx).Where("user_id = ?", uuid.UUID(userID)).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("verification not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find verification: %w", err)
	}
	v := row.toModel()
	return &v, nil
}

// Upsert stores v as the user's single verification request, replacing a
// previous document and clearing any earlier review.
func (s *GormStore) Upsert(ctx context.Context, v *models.Verification) error {
	var stored struct{ ID uuid.UUID }
	err := s.conn(ctx).Raw(`
		INSERT INTO user_verifications (id, user_id, document_type, document_url, status, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE
		SET document_type = EXCLUDED.document_type,
			document_url = EXCLUDED.document_url,
			status = EXCLUDED.status,
			status_reason = NULL,
			submitted_at = EXCLUDED.submitted_at,
			reviewed_at = NULL,
			reviewed_by = NULL
		RETURNING id`,
		uuid.UUID(v.ID), uuid.UUID(v.UserID), v.DocumentType, v.DocumentURL, string(v.Status), v.SubmittedAt,
	).Scan(&stored).Error
	if err != nil {
		return fmt.Errorf("upsert verification: %w", err)
	}
	v.ID = id.VerificationID(stored.ID)
	return nil
}

// ApplyDecision records the verdict on a verification and returns the
// applicant's id.
func (s *GormStore) ApplyDecision(ctx context.Context, verificationID id.VerificationID, d models.Decision) (id.UserID, error) {
	var reason *string
	if d.Reason != "" {
		reason = &d.Reason
	}
	var owners []struct{ UserID uuid.UUID }
	err := s.conn(ctx).Raw(`
		UPDATE user_verifications
		SET status = ?, status_reason = ?, reviewed_at = ?, reviewed_by = ?
		WHERE id = ?
		RETURNING user_id`,
		string(d.Status), reason, d.At, uuid.UUID(d.ReviewedBy), uuid.UUID(verificationID),
	).Scan(&owners).Error
	if err != nil {
		return id.UserID{}, fmt.Errorf("review verification: %w", err)
	}
	if len(owners) == 0 {
		return id.UserID{}, fmt.Errorf("verification not found: %w", sentinel.ErrNotFound)
	}
	return id.UserID(owners[0].UserID), nil
}

// SetUserStatus updates the verification status denormalized onto users.
func (s *GormStore) SetUserStatus(ctx context.Context, userID id.UserID, status id.VerificationStatus, at time.Time) error {
	res := s.conn(ctx).Table("users").
		Where("id = ?", uuid.UUID(userID)).
		Updates(map[string]any{"verification_status": string(status), "updated_at": at})
	if res.Error != nil {
		return fmt.Errorf("update user verification status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *GormStore) FindDetail(ctx context.Context, verificationID id.VerificationID) (*models.Detail, error) {
	var rows []detailRow
	err := s.conn(ctx).Raw(detailSelect+` WHERE v.id = ?`, uuid.UUID(verificationID)).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find verification: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("verification not found: %w", sentinel.ErrNotFound)
	}
	return rows[0].toDetail(), nil
}

// List returns one page of verification requests, oldest submission first
// so the review queue is worked in order.
func (s *GormStore) List(ctx context.Context, filter models.Filter, q models.ListQuery) ([]*models.Detail, int64, error) {
	where, args := ` WHERE TRUE`, []any{}
	if filter.Status != "" {
		where += ` AND v.status = ?`
		args = append(args, string(filter.Status))
	}

	var total int64
	if err := s.conn(ctx).Raw(`SELECT COUNT(*) FROM user_verifications v`+where, args...).Scan(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count verifications: %w", err)
	}

	var rows []detailRow
	args = append(args, q.Offset, q.Limit)
	err := s.conn(ctx).Raw(detailSelect+where+`
		ORDER BY v.submitted_at ASC
		OFFSET ? LIMIT ?`, args...).Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list verifications: %w", err)
	}
	details := make([]*models.Detail, 0, len(rows))
	for i := range rows {
		details = append(details, rows[i].toDetail())
	}
	return details, total, nil
}

func (r verificationRow) toModel() models.Verification {
	v := models.Verification{
		ID:           id.VerificationID(r.ID),
		UserID:       id.UserID(r.UserID),
		DocumentType: r.DocumentType,
		DocumentURL:  r.DocumentURL,
		Status:       id.VerificationStatus(r.Status),
		SubmittedAt:  r.SubmittedAt,
		ReviewedAt:   r.ReviewedAt,
	}
	if r.StatusReason != nil {
		v.StatusReason = *r.StatusReason
	}
	if r.ReviewedBy != nil {
		by := id.UserID(*r.ReviewedBy)
		v.ReviewedBy = &by
	}
	return v
}

func (r *detailRow) toDetail() *models.Detail {
	return &models.Detail{
		Verification: r.toModel(),
		User: models.Applicant{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
			Phone:     r.Phone,
			Role:      id.Role(r.Role),
		},
	}
}
