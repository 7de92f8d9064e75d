package repository

import (
	"context"
	"time"

	"quadra/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileChangeRepository struct {
	db *gorm.DB
}

func NewProfileChangeRepository(db *gorm.DB) *ProfileChangeRepository {
	return &ProfileChangeRepository{db: db}
}

type profileChangeModel struct {
	ID              uuid.UUID  `gorm:"column:id;primaryKey;type:uuid"`
	UserID          uuid.UUID  `gorm:"column:user_id;type:uuid;index"`
	CreatedByUserID uuid.UUID  `gorm:"column:created_by_user_id;type:uuid"`
	Field           string     `gorm:"column:field"`
	OldValue        string     `gorm:"column:old_value"`
	NewValue        string     `gorm:"column:new_value"`
	Status          string     `gorm:"column:status;index"`
	ApproverUserID  *uuid.UUID `gorm:"column:approver_user_id;type:uuid"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	DecidedAt       *time.Time `gorm:"column:decided_at"`
	Justification   *string    `gorm:"column:justification"`
}

func (profileChangeModel) TableName() string { return "profile_change_requests" }

func toDomainProfileChange(m profileChangeModel) *domain.ProfileChangeRequest {
	var justification string
	if m.Justification != nil {
		justification = *m.Justification
	}

	return &domain.ProfileChangeRequest{
		ID:              m.ID,
		UserID:          m.UserID,
		CreatedByUserID: m.CreatedByUserID,
		Field:           m.Field,
		OldValue:        m.OldValue,
		NewValue:        m.NewValue,
		Status:          domain.RequestStatus(m.Status),
		ApproverUserID:  m.ApproverUserID,
		CreatedAt:       m.CreatedAt,
		DecidedAt:       m.DecidedAt,
		Justification:   justification,
	}
}

func toProfileChangeModel(req *domain.ProfileChangeRequest) profileChangeModel {
	var justification *string
	if req.Justification != "" {
		v := req.Justification
		justification = &v
	}

	return profileChangeModel{
		ID:              req.ID,
		UserID:          req.UserID,
		CreatedByUserID: req.CreatedByUserID,
		Field:           req.Field,
		OldValue:        req.OldValue,
		NewValue:        req.NewValue,
		Status:          string(req.Status),
		ApproverUserID:  req.ApproverUserID,
		CreatedAt:       req.CreatedAt,
		DecidedAt:       req.DecidedAt,
		Justification:   justification,
	}
}

func (r *ProfileChangeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProfileChangeRequest, error) {
	var m profileChangeModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return toDomainProfileChange(m), nil
}

// Submit upserts the single PENDING request per (user, field) in one
// transaction; a re-submission refreshes the open row.
func (r *ProfileChangeRepository) Submit(ctx context.Context, req *domain.ProfileChangeRequest) error {
	m := toProfileChangeModel(req)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing profileChangeModel
		found := tx.
			First(&existing, "user_id = ? AND field = ? AND status = ?",
				m.UserID, m.Field, string(domain.RequestPending)).
			Error
		switch found {
		case nil:
			existing.OldValue = m.OldValue
			existing.NewValue = m.NewValue
			existing.CreatedByUserID = m.CreatedByUserID
			existing.CreatedAt = m.CreatedAt
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			m = existing
			return nil
		case gorm.ErrRecordNotFound:
			return tx.Create(&m).Error
		default:
			return found
		}
	})
	if err != nil {
		return err
	}

	*req = *toDomainProfileChange(m)
	return nil
}

// ListPending returns PENDING change requests oldest first, narrowed to
// subjects of one tower for scoped actors.
func (r *ProfileChangeRepository) ListPending(ctx context.Context, towerID *uuid.UUID) ([]domain.ProfileChangeRequest, error) {
	q := r.db.WithContext(ctx).
		Table("profile_change_requests").
		Where("profile_change_requests.status = ?", string(domain.RequestPending))
	if towerID != nil {
		q = q.Joins("JOIN users u ON u.id = profile_change_requests.user_id").
			Where("u.tower_id = ?", *towerID)
	}

	var models []profileChangeModel
	if err := q.Order("profile_change_requests.created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ProfileChangeRequest, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainProfileChange(m))
	}
	return out, nil
}

// Decide finalizes the request and, on approval, applies the field change
// to the subject row in the same transaction.
func (r *ProfileChangeRepository) Decide(ctx context.Context, req *domain.ProfileChangeRequest, subject *domain.User) error {
	m := toProfileChangeModel(req)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&profileChangeModel{}).
			Where("id = ?", m.ID).
			Updates(map[string]any{
				"status":           m.Status,
				"approver_user_id": m.ApproverUserID,
				"decided_at":       m.DecidedAt,
				"justification":    m.Justification,
			}).Error; err != nil {
			return err
		}

		if subject == nil {
			return nil
		}

		um := toUserModel(subject)
		return tx.Model(&userModel{}).
			Where("id = ?", subject.ID).
			Select("name", "phone", "unit_number").
			Updates(&um).Error
	})
}
