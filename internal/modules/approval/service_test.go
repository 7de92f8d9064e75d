package approval

import (
	"context"
	"testing"
	"time"

	"quadra/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockApprovalRepository struct {
	mock.Mock
}

func (m *MockApprovalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SignupApprovalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SignupApprovalRequest), args.Error(1)
}

func (m *MockApprovalRepository) ListPending(ctx context.Context, towerID *uuid.UUID) ([]domain.SignupApprovalRequest, error) {
	args := m.Called(ctx, towerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SignupApprovalRequest), args.Error(1)
}

func (m *MockApprovalRepository) Submit(ctx context.Context, applicant *domain.User, req *domain.SignupApprovalRequest) error {
	args := m.Called(ctx, applicant, req)
	if args.Error(0) == nil && req != nil && req.ID == uuid.Nil {
		req.ID = uuid.New() // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockApprovalRepository) Decide(ctx context.Context, req *domain.SignupApprovalRequest, applicant *domain.User) error {
	args := m.Called(ctx, req, applicant)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTowerRepository struct {
	mock.Mock
}

func (m *MockTowerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tower, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tower), args.Error(1)
}

func TestSubmit_Success(t *testing.T) {
	mockApprovals := new(MockApprovalRepository)
	mockUsers := new(MockUserRepository)
	mockTowers := new(MockTowerRepository)

	tower := &domain.Tower{ID: uuid.New(), Name: "Torre A"}
	applicant := &domain.User{
		ID:     uuid.New(),
		Role:   domain.RoleResident,
		Status: domain.UserPending,
	}

	mockTowers.On("GetByID", mock.Anything, tower.ID).Return(tower, nil)
	mockApprovals.On("Submit", mock.Anything, applicant, mock.Anything).Return(nil)

	service := NewService(mockApprovals, mockUsers, mockTowers)

	req, err := service.Submit(context.Background(), applicant, SubmitRequest{
		TowerID:    tower.ID,
		UnitNumber: " 301 ",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RequestPending, req.Status)
	assert.Equal(t, "301", req.UnitNumber)
	// submission rewrites the applicant binding eagerly
	assert.Equal(t, tower.ID, *applicant.TowerID)
	assert.Equal(t, "301", applicant.UnitNumber)
	assert.Equal(t, domain.UserPending, applicant.Status)
}

func TestSubmit_UnknownTower(t *testing.T) {
	mockApprovals := new(MockApprovalRepository)
	mockUsers := new(MockUserRepository)
	mockTowers := new(MockTowerRepository)

	towerID := uuid.New()
	mockTowers.On("GetByID", mock.Anything, towerID).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockApprovals, mockUsers, mockTowers)

	_, err := service.Submit(context.Background(), &domain.User{ID: uuid.New()}, SubmitRequest{
		TowerID:    towerID,
		UnitNumber: "301",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmit_EmptyUnit(t *testing.T) {
	mockApprovals := new(MockApprovalRepository)
	mockUsers := new(MockUserRepository)
	mockTowers := new(MockTowerRepository)

	service := NewService(mockApprovals, mockUsers, mockTowers)

	_, err := service.Submit(context.Background(), &domain.User{ID: uuid.New()}, SubmitRequest{
		TowerID:    uuid.New(),
		UnitNumber: "   ",
	})

	assert.ErrorIs(t, err, ErrValidation)
	mockTowers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestApprove_UnderageBlocksEveryRole(t *testing.T) {
	towerID := uuid.New()
	minor := time.Now().UTC().AddDate(-16, 0, 0)

	actors := []*domain.User{
		{ID: uuid.New(), Role: domain.RoleDoorman, TowerID: &towerID},
		{ID: uuid.New(), Role: domain.RoleSubManager, TowerID: &towerID},
		{ID: uuid.New(), Role: domain.RoleGeneralManager},
		{ID: uuid.New(), Role: domain.RoleSuperuser},
	}

	for _, actor := range actors {
		t.Run(string(actor.Role), func(t *testing.T) {
			mockApprovals := new(MockApprovalRepository)
			mockUsers := new(MockUserRepository)
			mockTowers := new(MockTowerRepository)

			req := &domain.SignupApprovalRequest{
				ID:              uuid.New(),
				ApplicantUserID: uuid.New(),
				TowerID:         towerID,
				Status:          domain.RequestPending,
			}
			applicant := &domain.User{
				ID:        req.ApplicantUserID,
				Status:    domain.UserPending,
				BirthDate: &minor,
			}

			mockApprovals.On("GetByID", mock.Anything, req.ID).Return(req, nil)
			mockUsers.On("GetByID", mock.Anything, applicant.ID).Return(applicant, nil)

			service := NewService(mockApprovals, mockUsers, mockTowers)

			_, err := service.Approve(context.Background(), actor, req.ID, "")
			assert.ErrorIs(t, err, domain.ErrUnderage)
			mockApprovals.AssertNotCalled(t, "Decide", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestApprove_ActivatesApplicant(t *testing.T) {
	mockApprovals := new(MockApprovalRepository)
	mockUsers := new(MockUserRepository)
	mockTowers := new(MockTowerRepository)

	towerID := uuid.New()
	birth := time.Date(1992, 8, 1, 0, 0, 0, 0, time.UTC)

	actor := &domain.User{ID: uuid.New(), Role: domain.RoleDoorman, TowerID: &towerID}
	req := &domain.SignupApprovalRequest{
		ID:              uuid.New(),
		ApplicantUserID: uuid.New(),
		TowerID:         towerID,
		Status:          domain.RequestPending,
	}
	applicant := &domain.User{
		ID:        req.ApplicantUserID,
		Role:      domain.RoleResident,
		Status:    domain.UserPending,
		BirthDate: &birth,
	}

	mockApprovals.On("GetByID", mock.Anything, req.ID).Return(req, nil)
	mockUsers.On("GetByID", mock.Anything, applicant.ID).Return(applicant, nil)
	mockApprovals.On("Decide", mock.Anything, req, applicant).Return(nil)

	service := NewService(mockApprovals, mockUsers, mockTowers)

	decided, err := service.Approve(context.Background(), actor, req.ID, "welcome")

	assert.NoError(t, err)
	assert.Equal(t, domain.RequestApproved, decided.Status)
	assert.Equal(t, actor.ID, *decided.ApprovedByUserID)
	assert.NotNil(t, decided.DecidedAt)
	assert.Equal(t, "welcome", decided.Note)
	assert.Equal(t, domain.UserActive, applicant.Status)
	assert.True(t, applicant.IsVerified)
	// approval never promotes the role
	assert.Equal(t, domain.RoleResident, applicant.Role)
}

func TestApprove_TowerScopeViolation(t *testing.T) {
	mockApprovals := new(MockApprovalRepository)
	mockUsers := new(MockUserRepository)
	mockTowers := new(MockTowerRepository)

	towerA := uuid.New()
	towerB := uuid.New()

	actor := &domain.User{ID: uuid.New(), Role: domain.RoleDoorman, TowerID: &towerA}
	req := &domain.SignupApprovalRequest{
		ID:              uuid.New(),
		ApplicantUserID: uuid.New(),
		TowerID:         towerB,
		Status:          domain.RequestPending,
	}
	mockApprovals.On("GetByID", mock.Anything, req.ID).Return(req, nil)

	service := NewService(mockApprovals, mockUsers, mockTowers)

	_, err := service.Approve(context.Background(), actor, req.ID, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestApprove_AlreadyDecided(t *testing.T) {
	mockApprovals := new(MockApprovalRepository)
	mockUsers := new(MockUserRepository)
	mockTowers := new(MockTowerRepository)

	actor := &domain.User{ID: uuid.New(), Role: domain.RoleSuperuser}
	req := &domain.SignupApprovalRequest{
		ID:     uuid.New(),
		Status: domain.RequestApproved,
	}
	mockApprovals.On("GetByID", mock.Anything, req.ID).Return(req, nil)

	service := NewService(mockApprovals, mockUsers, mockTowers)

	_, err := service.Approve(context.Background(), actor, req.ID, "")
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestReject_LeavesApplicantPending(t *testing.T) {
	mockApprovals := new(MockApprovalRepository)
	mockUsers := new(MockUserRepository)
	mockTowers := new(MockTowerRepository)

	towerID := uuid.New()
	actor := &domain.User{ID: uuid.New(), Role: domain.RoleSubManager, TowerID: &towerID}
	req := &domain.SignupApprovalRequest{
		ID:              uuid.New(),
		ApplicantUserID: uuid.New(),
		TowerID:         towerID,
		Status:          domain.RequestPending,
	}

	mockApprovals.On("GetByID", mock.Anything, req.ID).Return(req, nil)
	// nil applicant: rejection must not touch the user row
	mockApprovals.On("Decide", mock.Anything, req, (*domain.User)(nil)).Return(nil)

	service := NewService(mockApprovals, mockUsers, mockTowers)

	decided, err := service.Reject(context.Background(), actor, req.ID, "wrong unit")

	assert.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, decided.Status)
	assert.Equal(t, "wrong unit", decided.Note)
	mockApprovals.AssertExpectations(t)
	mockUsers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestListPending_ScopedActorWithoutTower(t *testing.T) {
	mockApprovals := new(MockApprovalRepository)
	mockUsers := new(MockUserRepository)
	mockTowers := new(MockTowerRepository)

	service := NewService(mockApprovals, mockUsers, mockTowers)

	requests, err := service.ListPending(context.Background(), &domain.User{
		ID:   uuid.New(),
		Role: domain.RoleDoorman,
	})

	assert.NoError(t, err)
	assert.Empty(t, requests)
	mockApprovals.AssertNotCalled(t, "ListPending", mock.Anything, mock.Anything)
}

func TestListPending_AdminSeesAllTowers(t *testing.T) {
	mockApprovals := new(MockApprovalRepository)
	mockUsers := new(MockUserRepository)
	mockTowers := new(MockTowerRepository)

	mockApprovals.On("ListPending", mock.Anything, (*uuid.UUID)(nil)).
		Return([]domain.SignupApprovalRequest{{ID: uuid.New()}}, nil)

	service := NewService(mockApprovals, mockUsers, mockTowers)

	requests, err := service.ListPending(context.Background(), &domain.User{
		ID:   uuid.New(),
		Role: domain.RoleGeneralManager,
	})

	assert.NoError(t, err)
	assert.Len(t, requests, 1)
	mockApprovals.AssertExpectations(t)
}
