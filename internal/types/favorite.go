package types

import "github.com/pageza/recipe-favorites/backend/internal/model"

// MandatoryFavoriteFields names the fields a create request must carry
const MandatoryFavoriteFields = "userId, recipeId, title"

// CreateFavoriteRequest is the body of POST /api/favorites. The required
// fields reject zero values, so an empty title or a recipeId of 0 counts as
// missing.
type CreateFavoriteRequest struct {
	UserID   string        `json:"userId" binding:"required"`
	RecipeID int32         `json:"recipeId" binding:"required"`
	Title    string        `json:"title" binding:"required"`
	Image    *string       `json:"image"`
	CookTime *model.Scalar `json:"cookTime"`
	Serving  *model.Scalar `json:"serving"`
}

// Favorite converts the request into a record ready for insertion
func (r *CreateFavoriteRequest) Favorite() *model.Favorite {
	return &model.Favorite{
		UserID:   r.UserID,
		RecipeID: r.RecipeID,
		Title:    r.Title,
		Image:    r.Image,
		CookTime: r.CookTime,
		Serving:  r.Serving,
	}
}

// ListFavoritesResponse is the body of GET /api/favorites/:userId
type ListFavoritesResponse struct {
	Success      bool             `json:"success"`
	RecordsCount int              `json:"recordsCount"`
	Favourites   []model.Favorite `json:"favourites"`
}

// CreateFavoriteResponse is the body of a successful POST /api/favorites
type CreateFavoriteResponse struct {
	Success bool            `json:"success"`
	Data    *model.Favorite `json:"data"`
}

// DeleteFavoriteResponse is the body of a successful DELETE
type DeleteFavoriteResponse struct {
	Success       bool            `json:"success"`
	DeletedRecord *model.Favorite `json:"deletedRecord"`
}
