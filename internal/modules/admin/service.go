package admin

import (
	"context"
	"errors"
	"time"

	"quadra/internal/domain"
	"quadra/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	users        UserRepository
	approvals    ApprovalCounter
	reservations ReservationCounter
	blackouts    BlackoutRepository
	now          func() time.Time
}

func NewService(users UserRepository, approvals ApprovalCounter, reservations ReservationCounter, blackouts BlackoutRepository) *Service {
	return &Service{
		users:        users,
		approvals:    approvals,
		reservations: reservations,
		blackouts:    blackouts,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

var validRoles = map[domain.Role]struct{}{
	domain.RoleResident:       {},
	domain.RoleDoorman:        {},
	domain.RoleSubManager:     {},
	domain.RoleGeneralManager: {},
	domain.RoleSuperuser:      {},
}

// AssignRole applies the role-granting authority rules:
//
//	sub_manager     -> doorman only, always inside its own tower
//	general_manager -> any role below superuser, any tower
//	superuser       -> any role
//
// The role write is unconditional once authorized, so re-assigning the
// role a user already holds still refreshes the tower binding.
func (s *Service) AssignRole(ctx context.Context, actor *domain.User, req AssignRoleRequest) (*domain.User, error) {
	newRole := domain.Role(req.Role)
	if _, ok := validRoles[newRole]; !ok {
		return nil, ErrValidation
	}

	towerID := req.TowerID

	switch actor.Role {
	case domain.RoleSubManager:
		if newRole != domain.RoleDoorman {
			return nil, ErrForbidden
		}
		if actor.TowerID == nil {
			return nil, ErrForbidden
		}
		if towerID != nil && *towerID != *actor.TowerID {
			return nil, ErrForbidden
		}
		towerID = actor.TowerID
	case domain.RoleGeneralManager:
		if newRole == domain.RoleSuperuser {
			return nil, ErrForbidden
		}
	case domain.RoleSuperuser:
		// unrestricted
	default:
		return nil, ErrForbidden
	}

	target, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	target.Role = newRole
	if towerID != nil {
		id := *towerID
		target.TowerID = &id
	}

	if err := s.users.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

type ListUsersQuery struct {
	Role    string
	Status  string
	TowerID *uuid.UUID
	Query   string
	Page    int
	Limit   int
}

func (s *Service) ListUsers(ctx context.Context, actor *domain.User, q ListUsersQuery) ([]domain.User, int64, error) {
	// tower-scoped staff only see their own tower
	if domain.IsTowerScoped(actor.Role) {
		if actor.TowerID == nil {
			return []domain.User{}, 0, nil
		}
		q.TowerID = actor.TowerID
	}

	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}

	filter := repository.UserListFilter{
		Role:    q.Role,
		Status:  q.Status,
		TowerID: q.TowerID,
		Query:   q.Query,
	}
	return s.users.List(ctx, filter, q.Limit, (q.Page-1)*q.Limit)
}

func (s *Service) BlockUser(ctx context.Context, actor *domain.User, userID uuid.UUID) (*domain.User, error) {
	return s.setStatus(ctx, actor, userID, domain.UserBlocked)
}

func (s *Service) UnblockUser(ctx context.Context, actor *domain.User, userID uuid.UUID) (*domain.User, error) {
	return s.setStatus(ctx, actor, userID, domain.UserActive)
}

func (s *Service) setStatus(ctx context.Context, actor *domain.User, userID uuid.UUID, status domain.UserStatus) (*domain.User, error) {
	target, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !domain.TowerScopeAllowed(actor, target.TowerID) {
		return nil, ErrForbidden
	}
	// superuser accounts are only touchable by another superuser
	if target.Role == domain.RoleSuperuser && actor.Role != domain.RoleSuperuser {
		return nil, ErrForbidden
	}

	target.Status = status
	if err := s.users.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	stats := &StatsResponse{}

	var err error
	if stats.ActiveUsers, err = s.users.CountByStatus(ctx, domain.UserActive); err != nil {
		return nil, err
	}
	if stats.PendingUsers, err = s.users.CountByStatus(ctx, domain.UserPending); err != nil {
		return nil, err
	}
	if stats.BlockedUsers, err = s.users.CountByStatus(ctx, domain.UserBlocked); err != nil {
		return nil, err
	}
	if stats.PendingApprovals, err = s.approvals.CountPending(ctx); err != nil {
		return nil, err
	}
	if stats.Reservations, err = s.reservations.CountAll(ctx); err != nil {
		return nil, err
	}
	now := s.now()
	if stats.ReservationsWeek, err = s.reservations.CountCreatedBetween(ctx, now.AddDate(0, 0, -7), now); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *Service) CreateBlackout(ctx context.Context, actor *domain.User, req CreateBlackoutRequest) (*domain.BlackoutWindow, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrValidation
	}

	w := &domain.BlackoutWindow{
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
		Reason:    req.Reason,
		CreatedBy: actor.ID,
	}
	if err := s.blackouts.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) DeleteBlackout(ctx context.Context, id uuid.UUID) error {
	if err := s.blackouts.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) ListBlackouts(ctx context.Context) ([]domain.BlackoutWindow, error) {
	return s.blackouts.List(ctx, s.now())
}
