package service

import (
	"context"

	"github.com/pageza/recipe-favorites/backend/internal/model"
)

// IFavoriteService defines the persistence operations on favorite records
type IFavoriteService interface {
	ListByUser(ctx context.Context, userID string) ([]model.Favorite, error)
	Exists(ctx context.Context, userID string, recipeID int32) (bool, error)
	Insert(ctx context.Context, fav *model.Favorite) (*model.Favorite, error)
	DeleteByKey(ctx context.Context, userID string, recipeID int32) (*model.Favorite, error)
	Ping(ctx context.Context) error
}
