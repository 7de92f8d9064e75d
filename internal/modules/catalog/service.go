package catalog

import (
	"context"
	"errors"
	"time"

	"quadra/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not_found")
)

type DaySchedule struct {
	Court        *domain.Court           `json:"court"`
	Date         string                  `json:"date"`
	Reservations []domain.Reservation    `json:"reservations"`
	Blackouts    []domain.BlackoutWindow `json:"blackouts"`
}

type Service struct {
	towers       TowerRepository
	courts       CourtRepository
	reservations ReservationLister
	blackouts    BlackoutLister
}

func NewService(towers TowerRepository, courts CourtRepository, reservations ReservationLister, blackouts BlackoutLister) *Service {
	return &Service{towers: towers, courts: courts, reservations: reservations, blackouts: blackouts}
}

func (s *Service) ListTowers(ctx context.Context) ([]domain.Tower, error) {
	return s.towers.List(ctx)
}

func (s *Service) ListCourts(ctx context.Context) ([]domain.Court, error) {
	return s.courts.ListActive(ctx)
}

// CourtDay returns the occupied intervals of one court for a calendar day
// (UTC), so clients can render free slots themselves.
func (s *Service) CourtDay(ctx context.Context, courtID uuid.UUID, date string) (*DaySchedule, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrValidation
	}

	court, err := s.courts.GetByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	dayStart := day.UTC()
	dayEnd := dayStart.Add(24 * time.Hour)

	reservations, err := s.reservations.ListForDay(ctx, &courtID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	windows, err := s.blackouts.List(ctx, dayStart)
	if err != nil {
		return nil, err
	}
	// keep only windows touching the requested day
	inDay := make([]domain.BlackoutWindow, 0, len(windows))
	for _, w := range windows {
		if w.StartTime.Before(dayEnd) && w.EndTime.After(dayStart) {
			inDay = append(inDay, w)
		}
	}

	return &DaySchedule{
		Court:        court,
		Date:         date,
		Reservations: reservations,
		Blackouts:    inDay,
	}, nil
}
