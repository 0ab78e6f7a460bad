package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-favorites/backend/internal/model"
	"github.com/pageza/recipe-favorites/backend/internal/service"
)

// MockFavoriteService is a mock implementation of the favorite service
type MockFavoriteService struct {
	mock.Mock
}

var _ service.IFavoriteService = (*MockFavoriteService)(nil)

// ListByUser mocks the ListByUser method
func (m *MockFavoriteService) ListByUser(ctx context.Context, userID string) ([]model.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Favorite), args.Error(1)
}

// Exists mocks the Exists method
func (m *MockFavoriteService) Exists(ctx context.Context, userID string, recipeID int32) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

// Insert mocks the Insert method
func (m *MockFavoriteService) Insert(ctx context.Context, fav *model.Favorite) (*model.Favorite, error) {
	args := m.Called(ctx, fav)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Favorite), args.Error(1)
}

// DeleteByKey mocks the DeleteByKey method
func (m *MockFavoriteService) DeleteByKey(ctx context.Context, userID string, recipeID int32) (*model.Favorite, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Favorite), args.Error(1)
}

// Ping mocks the Ping method
func (m *MockFavoriteService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
