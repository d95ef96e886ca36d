package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"estatehub/internal/auth/models"
	"estatehub/internal/platform/database"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
)

// userRow mirrors the users table. Email, phone and avatar are nullable.
type userRow struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName          string
	LastName           string
	Email              *string
	Phone              *string
	PasswordHash       string
	Role               string
	VerificationStatus string
	IsEmailVerified    bool
	Avatar             *string
	LastLogin          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (userRow) TableName() string { return "users" }

type agentProfileRow struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Experience  int
	Specialties pq.StringArray `gorm:"type:text[]"`
}

func (agentProfileRow) TableName() string { return "agent_profiles" }

type verificationRow struct {
	Status       string
	StatusReason *string
	SubmittedAt  time.Time
	ReviewedAt   *time.Time
}

// GormStore persists users in PostgreSQL through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}
	row := toRow(user)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("user %s: %w", database.ConstraintName(err), sentinel.ErrAlreadyExists)
		}
		return fmt.Errorf("create user: %w", err)
	}
	user.CreatedAt = row.CreatedAt
	user.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *GormStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	return s.findOne(ctx, "find user by id", "id = ?", uuid.UUID(userID))
}

func (s *GormStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, "find user by email", "email = ?", strings.ToLower(email))
}

func (s *GormStore) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	return s.findOne(ctx, "find user by phone", "phone = ?", phone)
}

func (s *GormStore) findOne(ctx context.Context, op, query string, arg any) (*models.User, error) {
	var row userRow
	err := s.db.WithContext(ctx).Where(query, arg).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return row.toModel(), nil
}

// PhoneTakenByOther reports whether phone belongs to an account other than userID.
func (s *GormStore) PhoneTakenByOther(ctx context.Context, phone string, userID id.UserID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&userRow{}).
		Where("phone = ? AND id <> ?", phone, uuid.UUID(userID)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check phone owner: %w", err)
	}
	return count > 0, nil
}

// UpdateProfile applies the non-nil fields of update and returns the stored user.
func (s *GormStore) UpdateProfile(ctx context.Context, userID id.UserID, update models.ProfileUpdate) (*models.User, error) {
	fields := map[string]any{}
	if update.FirstName != nil {
		fields["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		fields["last_name"] = *update.LastName
	}
	if update.Phone != nil {
		fields["phone"] = nullable(*update.Phone)
	}
	if update.AvatarURL != nil {
		fields["avatar"] = nullable(*update.AvatarURL)
	}
	return s.updateFields(ctx, userID, fields)
}

// UpdateAdminFields applies an administrator's edit and returns the stored user.
func (s *GormStore) UpdateAdminFields(ctx context.Context, userID id.UserID, update models.AdminUserUpdate) (*models.User, error) {
	fields := map[string]any{}
	if update.FirstName != "" {
		fields["first_name"] = update.FirstName
	}
	if update.LastName != "" {
		fields["last_name"] = update.LastName
	}
	if update.Role != "" {
		fields["role"] = string(update.Role)
	}
	if update.VerificationStatus != "" {
		fields["verification_status"] = string(update.VerificationStatus)
	}
	return s.updateFields(ctx, userID, fields)
}

func (s *GormStore) updateFields(ctx context.Context, userID id.UserID, fields map[string]any) (*models.User, error) {
	var row userRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			fields["updated_at"] = time.Now().UTC()
			res := tx.Model(&userRow{}).Where("id = ?", uuid.UUID(userID)).Updates(fields)
			if res.Error != nil {
				if database.IsUniqueViolation(res.Error) {
					return fmt.Errorf("user %s: %w", database.ConstraintName(res.Error), sentinel.ErrAlreadyExists)
				}
				return fmt.Errorf("update user: %w", res.Error)
			}
		}
		if err := tx.Where("id = ?", uuid.UUID(userID)).Take(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
			}
			return fmt.Errorf("reload user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *GormStore) UpdatePassword(ctx context.Context, userID id.UserID, hash string) error {
	res := s.db.WithContext(ctx).Model(&userRow{}).
		Where("id = ?", uuid.UUID(userID)).
		Updates(map[string]any{"password_hash": hash, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *GormStore) TouchLastLogin(ctx context.Context, userID id.UserID, at time.Time) error {
	err := s.db.WithContext(ctx).Model(&userRow{}).
		Where("id = ?", uuid.UUID(userID)).
		UpdateColumn("last_login", at).Error
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, userID id.UserID) error {
	res := s.db.WithContext(ctx).Where("id = ?", uuid.UUID(userID)).Delete(&userRow{})
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *GormStore) Counts(ctx context.Context, userID id.UserID) (models.UserCounts, error) {
	var counts models.UserCounts
	uid := uuid.UUID(userID)
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM properties WHERE posted_by_id = @id)        AS properties_posted,
			(SELECT COUNT(*) FROM properties WHERE managed_by_agent_id = @id) AS properties_managed,
			(SELECT COUNT(*) FROM ratings WHERE user_id = @id)                AS ratings,
			(SELECT COUNT(*) FROM favorites WHERE user_id = @id)              AS favorites,
			(SELECT COUNT(*) FROM complaints WHERE client_id = @id)           AS complaints
	`, map[string]any{"id": uid}).Scan(&counts).Error
	if err != nil {
		return models.UserCounts{}, fmt.Errorf("count user activity: %w", err)
	}
	return counts, nil
}

// FindAgentProfile returns nil without error when the user has no agent profile.
func (s *GormStore) FindAgentProfile(ctx context.Context, userID id.UserID) (*models.AgentProfile, error) {
	var row agentProfileRow
	err := s.db.WithContext(ctx).Where("user_id = ?", uuid.UUID(userID)).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find agent profile: %w", err)
	}
	return &models.AgentProfile{
		UserID:      id.UserID(row.UserID),
		Experience:  row.Experience,
		Specialties: []string(row.Specialties),
	}, nil
}

// UpsertAgentProfile creates or replaces the agent profile of userID.
func (s *GormStore) UpsertAgentProfile(ctx context.Context, profile *models.AgentProfile) error {
	row := agentProfileRow{
		UserID:      uuid.UUID(profile.UserID),
		Experience:  profile.Experience,
		Specialties: pq.StringArray(profile.Specialties),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"experience", "specialties"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert agent profile: %w", err)
	}
	return nil
}

// FindVerificationSummary returns nil without error when no request was submitted.
func (s *GormStore) FindVerificationSummary(ctx context.Context, userID id.UserID) (*models.VerificationSummary, error) {
	var row verificationRow
	err := s.db.WithContext(ctx).Table("user_verifications").
		Select("status, status_reason, submitted_at, reviewed_at").
		Where("user_id = ?", uuid.UUID(userID)).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find verification summary: %w", err)
	}
	summary := &models.VerificationSummary{
		Status:      id.VerificationStatus(row.Status),
		SubmittedAt: row.SubmittedAt,
		ReviewedAt:  row.ReviewedAt,
	}
	if row.StatusReason != nil {
		summary.StatusReason = *row.StatusReason
	}
	return summary, nil
}

// List returns one page of users matching filter and the total match count.
func (s *GormStore) List(ctx context.Context, filter models.UserFilter, q models.ListQuery) ([]*models.User, int64, error) {
	scoped := s.db.WithContext(ctx).Model(&userRow{})
	if filter.Role != "" {
		scoped = scoped.Where("role = ?", string(filter.Role))
	}
	if filter.VerificationStatus != "" {
		scoped = scoped.Where("verification_status = ?", string(filter.VerificationStatus))
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		scoped = scoped.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	var rows []userRow
	err := scoped.Order(q.OrderBy).Offset(q.Offset).Limit(q.Limit).Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	users := make([]*models.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toModel())
	}
	return users, total, nil
}

// EnsureRole creates user unless an account with the same email exists, in
// which case that account is promoted to the user's role. It reports whether
// a new account was created.
func (s *GormStore) EnsureRole(ctx context.Context, user *models.User) (bool, error) {
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing userRow
		err := tx.Where("email = ?", strings.ToLower(user.Email)).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := toRow(user)
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			created = true
			return nil
		case err != nil:
			return fmt.Errorf("find user by email: %w", err)
		}
		if existing.Role == string(user.Role) {
			return nil
		}
		return tx.Model(&existing).Updates(map[string]any{
			"role":       string(user.Role),
			"updated_at": time.Now().UTC(),
		}).Error
	})
	return created, err
}

func toRow(u *models.User) userRow {
	return userRow{
		ID:                 uuid.UUID(u.ID),
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Email:              nullable(strings.ToLower(u.Email)),
		Phone:              nullable(u.Phone),
		PasswordHash:       u.PasswordHash,
		Role:               string(u.Role),
		VerificationStatus: string(u.VerificationStatus),
		IsEmailVerified:    u.IsEmailVerified,
		Avatar:             nullable(u.AvatarURL),
		LastLogin:          u.LastLogin,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (r *userRow) toModel() *models.User {
	return &models.User{
		ID:                 id.UserID(r.ID),
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Email:              deref(r.Email),
		Phone:              deref(r.Phone),
		PasswordHash:       r.PasswordHash,
		Role:               id.Role(r.Role),
		VerificationStatus: id.VerificationStatus(r.VerificationStatus),
		IsEmailVerified:    r.IsEmailVerified,
		AvatarURL:          deref(r.Avatar),
		LastLogin:          r.LastLogin,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
