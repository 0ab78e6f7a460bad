package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipe-favorites/backend/internal/database"
	"github.com/pageza/recipe-favorites/backend/internal/model"
)

// ErrFavoriteExists is returned by Insert when the (user, recipe) pair is
// already stored.
var ErrFavoriteExists = errors.New("recipe already in favorites")

// FavoriteService handles favorite record persistence
type FavoriteService struct {
	db *gorm.DB
}

// Ensure FavoriteService implements IFavoriteService
var _ IFavoriteService = (*FavoriteService)(nil)

// NewFavoriteService creates a new FavoriteService instance
func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// ListByUser returns every favorite of userID, oldest first. A user with no
// favorites gets an empty slice.
func (s *FavoriteService) ListByUser(ctx context.Context, userID string) ([]model.Favorite, error) {
	favorites := []model.Favorite{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites for %s: %w", userID, err)
	}
	return favorites, nil
}

// Exists reports whether userID has already favorited recipeID. It is an
// early exit only; Insert is authoritative.
func (s *FavoriteService) Exists(ctx context.Context, userID string, recipeID int32) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check favorite %s/%d: %w", userID, recipeID, err)
	}
	return count > 0, nil
}

// Insert stores fav and returns it with its generated ID. The unique index on
// (user_id, recipe_id) makes this safe against concurrent creates: the loser
// gets ErrFavoriteExists.
func (s *FavoriteService) Insert(ctx context.Context, fav *model.Favorite) (*model.Favorite, error) {
	if err := s.db.WithContext(ctx).Create(fav).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrFavoriteExists
		}
		return nil, fmt.Errorf("insert favorite %s/%d: %w", fav.UserID, fav.RecipeID, err)
	}
	return fav, nil
}

// DeleteByKey removes the favorite matching userID and recipeID and returns
// it, or returns nil when nothing matched.
func (s *FavoriteService) DeleteByKey(ctx context.Context, userID string, recipeID int32) (*model.Favorite, error) {
	var deleted *model.Favorite
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var fav model.Favorite
		err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&fav).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		res := tx.Delete(&model.Favorite{}, "id = ?", fav.ID)
		if res.Error != nil {
			return res.Error
		}
		// A concurrent delete may have won between the read and the delete.
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = &fav
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete favorite %s/%d: %w", userID, recipeID, err)
	}
	return deleted, nil
}

// Ping checks the store is reachable
func (s *FavoriteService) Ping(ctx context.Context) error {
	return database.Ping(ctx, s.db)
}
