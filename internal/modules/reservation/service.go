package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quadra/internal/domain"
	"quadra/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	reservations ReservationRepository
	users        UserRepository
	courts       CourtRepository
	events       EventRecorder
	feed         FeedPublisher
	now          func() time.Time
}

func NewService(
	reservations ReservationRepository,
	users UserRepository,
	courts CourtRepository,
	events EventRecorder,
	feed FeedPublisher,
) *Service {
	return &Service{
		reservations: reservations,
		users:        users,
		courts:       courts,
		events:       events,
		feed:         feed,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateReservation runs the admission pipeline in fixed order and reports
// the first failing step only. Steps 1-4 (beneficiary, eligibility, tower
// scope, interval) run here; quota, overlap and blackout run inside the
// repository transaction so the decision commits atomically.
func (s *Service) CreateReservation(ctx context.Context, actor *domain.User, req CreateReservationRequest) (*domain.Reservation, error) {
	// 1. Resolve beneficiary: defaults to the actor; only non-residents
	// may book on behalf of someone else.
	beneficiaryID := actor.ID
	if req.ReservedForUserID != nil {
		if actor.Role == domain.RoleResident && *req.ReservedForUserID != actor.ID {
			return nil, ErrForbidden
		}
		beneficiaryID = *req.ReservedForUserID
	}

	// 2. Load and vet the beneficiary.
	beneficiary, err := s.users.GetByID(ctx, beneficiaryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := domain.CheckBeneficiary(beneficiary, s.now()); err != nil {
		return nil, err
	}

	// 3. Doorman and sub-manager actors stay inside their own tower.
	if domain.IsTowerScoped(actor.Role) && !domain.TowerScopeAllowed(actor, beneficiary.TowerID) {
		return nil, ErrForbidden
	}

	court, err := s.courts.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !court.IsActive {
		return nil, ErrValidation
	}

	// 4. Interval: half-open, strictly positive, capped per slot.
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrValidation
	}
	if req.EndTime.Sub(req.StartTime) > domain.MaxSlotDuration {
		return nil, ErrValidation
	}

	res := &domain.Reservation{
		CourtID:         court.ID,
		UserID:          beneficiary.ID,
		CreatedByUserID: actor.ID,
		StartTime:       req.StartTime.UTC(),
		EndTime:         req.EndTime.UTC(),
		Notes:           req.Notes,
	}

	// 5-7. Quota, overlap, blackout and the insert, atomically.
	if err := s.reservations.CreateConfirmed(ctx, res); err != nil {
		switch {
		case errors.Is(err, repository.ErrDailyQuotaExceeded):
			return nil, ErrQuotaExceeded
		case errors.Is(err, repository.ErrSlotTaken):
			return nil, ErrSlotConflict
		case errors.Is(err, repository.ErrBlackout):
			return nil, ErrBlackout
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// exclusion-constraint backstop fired before our scan did
			if pgErr.Code == "23P01" || pgErr.Code == "23505" {
				return nil, ErrSlotConflict
			}
		}
		return nil, err
	}

	if s.events != nil {
		_ = s.events.Append(ctx, &domain.ReservationEvent{
			ReservationID: res.ID,
			Type:          domain.EventCreated,
			Payload:       fmt.Sprintf(`{"created_by":%q}`, actor.ID),
		})
	}
	if s.feed != nil {
		s.feed.ReservationCreated(res)
	}

	return res, nil
}

// CancelReservation is allowed to the beneficiary and to admin-like roles.
// Cancelling twice is a no-op; the slot never becomes un-cancelled.
func (s *Service) CancelReservation(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if res.UserID != actor.ID && !domain.IsAdminLike(actor.Role) {
		return nil, ErrForbidden
	}

	if res.Status == domain.ReservationCancelled {
		return res, nil
	}

	cancelled, err := s.reservations.Cancel(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.Append(ctx, &domain.ReservationEvent{
			ReservationID: cancelled.ID,
			Type:          domain.EventCancelled,
			Payload:       fmt.Sprintf(`{"cancelled_by":%q}`, actor.ID),
		})
	}
	if s.feed != nil {
		s.feed.ReservationCancelled(cancelled)
	}

	return cancelled, nil
}

// ListForDay returns the non-cancelled reservations of one UTC calendar
// day, optionally narrowed to a single court.
func (s *Service) ListForDay(ctx context.Context, dateStr string, courtID *uuid.UUID) ([]domain.Reservation, error) {
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrValidation
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	return s.reservations.ListForDay(ctx, courtID, dayStart, dayEnd)
}

func (s *Service) ListMine(ctx context.Context, actor *domain.User) ([]domain.Reservation, error) {
	return s.reservations.ListForUser(ctx, actor.ID)
}
