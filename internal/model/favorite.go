package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite is one user's favorite recipe. The recipe itself lives in an
// external catalog; title, image, cook time and serving are denormalized
// copies for display.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_favorites_user_recipe,priority:1" json:"userId"`
	RecipeID  int32     `gorm:"type:integer;not null;uniqueIndex:idx_favorites_user_recipe,priority:2" json:"recipeId"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	Image     *string   `gorm:"type:text" json:"image"`
	CookTime  *Scalar   `gorm:"type:text" json:"cookTime"`
	Serving   *Scalar   `gorm:"type:text" json:"serving"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// BeforeCreate assigns the surrogate key when the caller did not.
func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
