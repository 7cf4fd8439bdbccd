package testhelpers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/recipe-api/backend/internal/types"
)

// MockTokenValidator is a mock implementation of the token validation used by
// the auth middleware
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}
