package repository

import (
	"context"
	"time"

	"quadra/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApprovalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository {
	return &ApprovalRepository{db: db}
}

type signupApprovalModel struct {
	ID               uuid.UUID  `gorm:"column:id;primaryKey;type:uuid"`
	ApplicantUserID  uuid.UUID  `gorm:"column:applicant_user_id;type:uuid;index"`
	TowerID          uuid.UUID  `gorm:"column:tower_id;type:uuid;index"`
	UnitNumber       string     `gorm:"column:unit_number"`
	Status           string     `gorm:"column:status;index"`
	ApprovedByUserID *uuid.UUID `gorm:"column:approved_by_user_id;type:uuid"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	DecidedAt        *time.Time `gorm:"column:decided_at"`
	Note             *string    `gorm:"column:note"`
}

func (signupApprovalModel) TableName() string { return "signup_approval_requests" }

func toDomainApproval(m signupApprovalModel) *domain.SignupApprovalRequest {
	var note string
	if m.Note != nil {
		note = *m.Note
	}

	return &domain.SignupApprovalRequest{
		ID:               m.ID,
		ApplicantUserID:  m.ApplicantUserID,
		TowerID:          m.TowerID,
		UnitNumber:       m.UnitNumber,
		Status:           domain.RequestStatus(m.Status),
		ApprovedByUserID: m.ApprovedByUserID,
		CreatedAt:        m.CreatedAt,
		DecidedAt:        m.DecidedAt,
		Note:             note,
	}
}

func toApprovalModel(req *domain.SignupApprovalRequest) signupApprovalModel {
	var note *string
	if req.Note != "" {
		v := req.Note
		note = &v
	}

	return signupApprovalModel{
		ID:               req.ID,
		ApplicantUserID:  req.ApplicantUserID,
		TowerID:          req.TowerID,
		UnitNumber:       req.UnitNumber,
		Status:           string(req.Status),
		ApprovedByUserID: req.ApprovedByUserID,
		CreatedAt:        req.CreatedAt,
		DecidedAt:        req.DecidedAt,
		Note:             note,
	}
}

func (r *ApprovalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SignupApprovalRequest, error) {
	var m signupApprovalModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return toDomainApproval(m), nil
}

func (r *ApprovalRepository) GetPendingByApplicant(ctx context.Context, applicantID uuid.UUID) (*domain.SignupApprovalRequest, error) {
	var m signupApprovalModel
	if err := r.db.WithContext(ctx).
		First(&m, "applicant_user_id = ? AND status = ?", applicantID, string(domain.RequestPending)).Error; err != nil {
		return nil, err
	}
	return toDomainApproval(m), nil
}

// ListPending returns PENDING requests oldest first; towerID narrows to
// one tower for scoped actors.
func (r *ApprovalRepository) ListPending(ctx context.Context, towerID *uuid.UUID) ([]domain.SignupApprovalRequest, error) {
	q := r.db.WithContext(ctx).Where("status = ?", string(domain.RequestPending))
	if towerID != nil {
		q = q.Where("tower_id = ?", *towerID)
	}

	var models []signupApprovalModel
	if err := q.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.SignupApprovalRequest, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainApproval(m))
	}
	return out, nil
}

// Submit upserts the applicant's PENDING request and rewrites the
// applicant's tower/unit/status in one transaction, keeping the
// one-pending-per-applicant invariant under concurrent submissions (the
// partial unique index backs it on PostgreSQL).
func (r *ApprovalRepository) Submit(ctx context.Context, applicant *domain.User, req *domain.SignupApprovalRequest) error {
	m := toApprovalModel(req)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing signupApprovalModel
		found := tx.
			First(&existing, "applicant_user_id = ? AND status = ?", m.ApplicantUserID, string(domain.RequestPending)).
			Error
		switch found {
		case nil:
			// re-submission refreshes the open request instead of piling
			// up duplicates
			existing.TowerID = m.TowerID
			existing.UnitNumber = m.UnitNumber
			existing.CreatedAt = m.CreatedAt
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			m = existing
		case gorm.ErrRecordNotFound:
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		default:
			return found
		}

		um := toUserModel(applicant)
		return tx.Model(&userModel{}).
			Where("id = ?", applicant.ID).
			Select("tower_id", "unit_number", "status").
			Updates(&um).Error
	})
	if err != nil {
		return err
	}

	*req = *toDomainApproval(m)
	return nil
}

// Decide finalizes the request and, when the decision mutates the
// applicant (approval), writes both rows in one transaction.
func (r *ApprovalRepository) Decide(ctx context.Context, req *domain.SignupApprovalRequest, applicant *domain.User) error {
	m := toApprovalModel(req)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&signupApprovalModel{}).
			Where("id = ?", m.ID).
			Updates(map[string]any{
				"status":              m.Status,
				"approved_by_user_id": m.ApprovedByUserID,
				"decided_at":          m.DecidedAt,
				"note":                m.Note,
			}).Error; err != nil {
			return err
		}

		if applicant == nil {
			return nil
		}

		um := toUserModel(applicant)
		return tx.Model(&userModel{}).
			Where("id = ?", applicant.ID).
			Select("status", "is_verified").
			Updates(&um).Error
	})
}

func (r *ApprovalRepository) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&signupApprovalModel{}).
		Where("status = ?", string(domain.RequestPending)).
		Count(&n).Error
	return n, err
}
