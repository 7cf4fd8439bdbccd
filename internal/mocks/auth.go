package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/recipe-api/backend/internal/models"
	"github.com/recipe-api/backend/internal/service"
	"github.com/recipe-api/backend/internal/types"
)

// MockAuthService is a mock implementation of service.IAuthService
type MockAuthService struct {
	mock.Mock
}

var _ service.IAuthService = (*MockAuthService)(nil)

func (m *MockAuthService) user(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) CreateUser(ctx context.Context, email, password, name string) (*models.User, error) {
	return m.user(m.Called(ctx, email, password, name))
}

func (m *MockAuthService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	return m.user(m.Called(ctx, email, password))
}

func (m *MockAuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	return m.user(m.Called(ctx, email, password))
}

func (m *MockAuthService) GenerateToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockAuthService) RevokeToken(ctx context.Context, claims *types.TokenClaims) error {
	return m.Called(ctx, claims).Error(0)
}

func (m *MockAuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockAuthService) UpdateUser(ctx context.Context, id uint, req types.UpdateUserRequest) (*models.User, error) {
	return m.user(m.Called(ctx, id, req))
}

func (m *MockAuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}
