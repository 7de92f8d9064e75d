package catalog

import (
	"context"
	"time"

	"quadra/internal/domain"

	"github.com/google/uuid"
)

type TowerRepository interface {
	List(ctx context.Context) ([]domain.Tower, error)
}

type CourtRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Court, error)
	ListActive(ctx context.Context) ([]domain.Court, error)
}

type ReservationLister interface {
	ListForDay(ctx context.Context, courtID *uuid.UUID, dayStart, dayEnd time.Time) ([]domain.Reservation, error)
}

type BlackoutLister interface {
	List(ctx context.Context, from time.Time) ([]domain.BlackoutWindow, error)
}
