package profile

import (
	"context"

	"quadra/internal/domain"

	"github.com/google/uuid"
)

type ProfileChangeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProfileChangeRequest, error)
	Submit(ctx context.Context, req *domain.ProfileChangeRequest) error
	ListPending(ctx context.Context, towerID *uuid.UUID) ([]domain.ProfileChangeRequest, error)
	Decide(ctx context.Context, req *domain.ProfileChangeRequest, subject *domain.User) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type TowerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tower, error)
}
