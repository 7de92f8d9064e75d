package reservation

import (
	"context"
	"time"

	"quadra/internal/domain"

	"github.com/google/uuid"
)

// ReservationRepository is the transactional admission surface. The
// implementation must run quota, overlap and blackout checks plus the
// insert as one unit of work.
type ReservationRepository interface {
	CreateConfirmed(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	Cancel(ctx context.Context, id, actorID uuid.UUID) (*domain.Reservation, error)
	ListForDay(ctx context.Context, courtID *uuid.UUID, dayStart, dayEnd time.Time) ([]domain.Reservation, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Reservation, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type CourtRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Court, error)
}

type EventRecorder interface {
	Append(ctx context.Context, ev *domain.ReservationEvent) error
}

// FeedPublisher pushes reservation state changes to connected live-feed
// clients. Nil-able; the engine works without it.
type FeedPublisher interface {
	ReservationCreated(res *domain.Reservation)
	ReservationCancelled(res *domain.Reservation)
}
