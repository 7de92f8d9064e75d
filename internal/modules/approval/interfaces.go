package approval

import (
	"context"

	"quadra/internal/domain"

	"github.com/google/uuid"
)

type ApprovalRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SignupApprovalRequest, error)
	ListPending(ctx context.Context, towerID *uuid.UUID) ([]domain.SignupApprovalRequest, error)
	Submit(ctx context.Context, applicant *domain.User, req *domain.SignupApprovalRequest) error
	Decide(ctx context.Context, req *domain.SignupApprovalRequest, applicant *domain.User) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type TowerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tower, error)
}
