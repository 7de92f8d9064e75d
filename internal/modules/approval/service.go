package approval

import (
	"context"
	"errors"
	"strings"
	"time"

	"quadra/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	approvals ApprovalRepository
	users     UserRepository
	towers    TowerRepository
	now       func() time.Time
}

func NewService(approvals ApprovalRepository, users UserRepository, towers TowerRepository) *Service {
	return &Service{
		approvals: approvals,
		users:     users,
		towers:    towers,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit files (or refreshes) the applicant's approval request. The
// submission eagerly rewrites the applicant's tower/unit and pushes the
// status back to PENDING, even for a previously active account.
func (s *Service) Submit(ctx context.Context, applicant *domain.User, req SubmitRequest) (*domain.SignupApprovalRequest, error) {
	unit := strings.TrimSpace(req.UnitNumber)
	if unit == "" {
		return nil, ErrValidation
	}

	if _, err := s.towers.GetByID(ctx, req.TowerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	towerID := req.TowerID
	applicant.TowerID = &towerID
	applicant.UnitNumber = unit
	applicant.Status = domain.UserPending

	request := &domain.SignupApprovalRequest{
		ApplicantUserID: applicant.ID,
		TowerID:         towerID,
		UnitNumber:      unit,
		Status:          domain.RequestPending,
		CreatedAt:       s.now(),
	}

	if err := s.approvals.Submit(ctx, applicant, request); err != nil {
		return nil, err
	}
	return request, nil
}

// ListPending is tower-scoped for doormen and sub-managers; a scoped
// actor with no tower sees nothing at all.
func (s *Service) ListPending(ctx context.Context, actor *domain.User) ([]domain.SignupApprovalRequest, error) {
	var towerID *uuid.UUID
	if domain.IsTowerScoped(actor.Role) {
		if actor.TowerID == nil {
			return []domain.SignupApprovalRequest{}, nil
		}
		towerID = actor.TowerID
	}
	return s.approvals.ListPending(ctx, towerID)
}

// Approve activates the applicant. The age gate runs at decision time:
// a missing birth date or age under 18 blocks approval for every actor
// role. The applicant's role is never promoted here.
func (s *Service) Approve(ctx context.Context, actor *domain.User, requestID uuid.UUID, note string) (*domain.SignupApprovalRequest, error) {
	req, err := s.loadPending(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	applicant, err := s.users.GetByID(ctx, req.ApplicantUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := domain.CheckAdult(applicant, s.now()); err != nil {
		return nil, err
	}

	applicant.Status = domain.UserActive
	applicant.IsVerified = true

	s.finalize(req, actor, domain.RequestApproved, note)
	if err := s.approvals.Decide(ctx, req, applicant); err != nil {
		return nil, err
	}
	return req, nil
}

// Reject finalizes the request and deliberately leaves the applicant's
// status untouched: a rejected applicant stays PENDING and may re-submit.
func (s *Service) Reject(ctx context.Context, actor *domain.User, requestID uuid.UUID, note string) (*domain.SignupApprovalRequest, error) {
	req, err := s.loadPending(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	s.finalize(req, actor, domain.RequestRejected, note)
	if err := s.approvals.Decide(ctx, req, nil); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) loadPending(ctx context.Context, actor *domain.User, requestID uuid.UUID) (*domain.SignupApprovalRequest, error) {
	req, err := s.approvals.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Status != domain.RequestPending {
		return nil, ErrAlreadyDecided
	}

	towerID := req.TowerID
	if !domain.TowerScopeAllowed(actor, &towerID) {
		return nil, ErrForbidden
	}

	return req, nil
}

func (s *Service) finalize(req *domain.SignupApprovalRequest, actor *domain.User, status domain.RequestStatus, note string) {
	decidedAt := s.now()
	actorID := actor.ID
	req.Status = status
	req.ApprovedByUserID = &actorID
	req.DecidedAt = &decidedAt
	if strings.TrimSpace(note) != "" {
		req.Note = strings.TrimSpace(note)
	}
}
