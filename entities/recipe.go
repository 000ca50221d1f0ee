package entities

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	RecipeImage string    `json:"recipe_image,omitempty"`
	DishType    string    `json:"dish_type"`
	CuisineType string    `json:"cuisine_type"`
	Recipe      string    `gorm:"type:text" json:"recipe"`
	// URL is the provider's canonical source URL. It is nil for recipes
	// submitted directly by users and unique across ingested recipes.
	URL *string `gorm:"uniqueIndex" json:"url,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`
}

// SearchSession stores the most recent provider query per user so a GET on
// the search endpoint can replay the last POSTed query.
type SearchSession struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Query     string    `gorm:"not null" json:"query"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}
