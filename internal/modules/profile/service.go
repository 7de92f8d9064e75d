package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"quadra/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fields a ProfileChangeRequest may target. Tower and birth date moves go
// through the signup-approval workflow instead.
var changeableFields = map[string]struct{}{
	"name":        {},
	"phone":       {},
	"unit_number": {},
}

type Service struct {
	changes ProfileChangeRepository
	users   UserRepository
	towers  TowerRepository
	now     func() time.Time
}

func NewService(changes ProfileChangeRepository, users UserRepository, towers TowerRepository) *Service {
	return &Service{
		changes: changes,
		users:   users,
		towers:  towers,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// UpdateProfile applies the pre-approval bootstrap fields directly: a
// pending applicant fills in phone, tower, unit and birth date before
// filing an approval request.
func (s *Service) UpdateProfile(ctx context.Context, actor *domain.User, req UpdateProfileRequest) (*domain.User, error) {
	if req.Phone != nil {
		actor.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.TowerID != nil {
		if _, err := s.towers.GetByID(ctx, *req.TowerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		towerID := *req.TowerID
		actor.TowerID = &towerID
	}
	if req.UnitNumber != nil {
		actor.UnitNumber = strings.TrimSpace(*req.UnitNumber)
	}
	if req.BirthDate != nil {
		bd := req.BirthDate.UTC()
		actor.BirthDate = &bd
	}

	if err := s.users.Update(ctx, actor); err != nil {
		return nil, err
	}
	return actor, nil
}

// SubmitChange files a change request for the subject. Actors may always
// file for themselves; filing for someone else requires an approver role
// inside the subject's tower.
func (s *Service) SubmitChange(ctx context.Context, actor *domain.User, input ChangeRequestInput) (*domain.ProfileChangeRequest, error) {
	field := strings.TrimSpace(input.Field)
	if _, ok := changeableFields[field]; !ok {
		return nil, ErrUnknownField
	}
	newValue := strings.TrimSpace(input.NewValue)
	if newValue == "" {
		return nil, ErrValidation
	}

	subject := actor
	if input.UserID != nil && *input.UserID != actor.ID {
		if !domain.CanDecideApprovals(actor.Role) {
			return nil, ErrForbidden
		}
		loaded, err := s.users.GetByID(ctx, *input.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if !domain.TowerScopeAllowed(actor, loaded.TowerID) {
			return nil, ErrForbidden
		}
		subject = loaded
	}

	req := &domain.ProfileChangeRequest{
		UserID:          subject.ID,
		CreatedByUserID: actor.ID,
		Field:           field,
		OldValue:        fieldValue(subject, field),
		NewValue:        newValue,
		Status:          domain.RequestPending,
		CreatedAt:       s.now(),
		Justification:   strings.TrimSpace(input.Justification),
	}

	if err := s.changes.Submit(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ListPending mirrors the signup-approval visibility rules.
func (s *Service) ListPending(ctx context.Context, actor *domain.User) ([]domain.ProfileChangeRequest, error) {
	var towerID *uuid.UUID
	if domain.IsTowerScoped(actor.Role) {
		if actor.TowerID == nil {
			return []domain.ProfileChangeRequest{}, nil
		}
		towerID = actor.TowerID
	}
	return s.changes.ListPending(ctx, towerID)
}

// Approve applies the requested field change to the subject.
func (s *Service) Approve(ctx context.Context, actor *domain.User, requestID uuid.UUID, justification string) (*domain.ProfileChangeRequest, error) {
	req, subject, err := s.loadPending(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	applyField(subject, req.Field, req.NewValue)
	s.finalize(req, actor, domain.RequestApproved, justification)
	if err := s.changes.Decide(ctx, req, subject); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) Reject(ctx context.Context, actor *domain.User, requestID uuid.UUID, justification string) (*domain.ProfileChangeRequest, error) {
	req, _, err := s.loadPending(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	s.finalize(req, actor, domain.RequestRejected, justification)
	if err := s.changes.Decide(ctx, req, nil); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) loadPending(ctx context.Context, actor *domain.User, requestID uuid.UUID) (*domain.ProfileChangeRequest, *domain.User, error) {
	req, err := s.changes.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	if req.Status != domain.RequestPending {
		return nil, nil, ErrAlreadyDecided
	}

	subject, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	if !domain.TowerScopeAllowed(actor, subject.TowerID) {
		return nil, nil, ErrForbidden
	}

	return req, subject, nil
}

func (s *Service) finalize(req *domain.ProfileChangeRequest, actor *domain.User, status domain.RequestStatus, justification string) {
	decidedAt := s.now()
	actorID := actor.ID
	req.Status = status
	req.ApproverUserID = &actorID
	req.DecidedAt = &decidedAt
	if strings.TrimSpace(justification) != "" {
		req.Justification = strings.TrimSpace(justification)
	}
}

func fieldValue(u *domain.User, field string) string {
	switch field {
	case "name":
		return u.Name
	case "phone":
		return u.Phone
	case "unit_number":
		return u.UnitNumber
	}
	return ""
}

func applyField(u *domain.User, field, value string) {
	switch field {
	case "name":
		u.Name = value
	case "phone":
		u.Phone = value
	case "unit_number":
		u.UnitNumber = value
	}
}
