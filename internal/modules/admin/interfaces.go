package admin

import (
	"context"
	"time"

	"quadra/internal/domain"
	"quadra/internal/repository"

	"github.com/google/uuid"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	List(ctx context.Context, filter repository.UserListFilter, limit, offset int) ([]domain.User, int64, error)
	CountByStatus(ctx context.Context, status domain.UserStatus) (int64, error)
}

type ApprovalCounter interface {
	CountPending(ctx context.Context) (int64, error)
}

type ReservationCounter interface {
	CountAll(ctx context.Context) (int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type BlackoutRepository interface {
	Create(ctx context.Context, w *domain.BlackoutWindow) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, from time.Time) ([]domain.BlackoutWindow, error)
}
