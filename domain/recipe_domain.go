package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessSearchRecipes   = "success search recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessAddRecipe       = "recipe added successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessToggleLike      = "like toggled successfully"
	MessageSuccessGetMyRecipes    = "success get own recipes"
	MessageSuccessGetLikedRecipes = "success get liked recipes"
	MessageSuccessUploadImage     = "image uploaded successfully"

	MessageNoActiveQuery         = "no active search, submit a query first"
	MessageSearchFailed          = "search failed, please try again later"
	MessageFailedSearch          = "failed to search recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedAddRecipe       = "failed to add recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedToggleLike      = "failed to toggle like"
	MessageFailedGetMyRecipes    = "failed to get own recipes"
	MessageFailedGetLikedRecipes = "failed to get liked recipes"
	MessageFailedUploadImage     = "failed to upload image"

	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrNotRecipeOwner      = errors.New("recipe belongs to another user")
	ErrSelfLikeForbidden   = errors.New("cannot like your own recipe")
	ErrNoActiveQuery       = errors.New("no active search query")
	ErrProviderUnavailable = errors.New("recipe provider unavailable")
	ErrSeedUserMissing     = errors.New("seed user not configured")
	ErrInvalidDishType     = errors.New("unknown dish type")
	ErrInvalidCuisineType  = errors.New("unknown cuisine type")
)

// DishTypes and CuisineTypes are the accepted values for direct recipe
// submissions, keyed by form value with their display labels.
var (
	DishTypes = map[string]string{
		"alcohol-cocktail":  "Alcohol-cocktail",
		"biscuits-cookies":  "Biscuits and cookies",
		"bread":             "Bread",
		"cereals":           "Cereals",
		"condiments-sauces": "Condiments and sauces",
		"drinks":            "Drinks",
		"desserts":          "Desserts",
		"egg":               "Egg",
		"main-course":       "Main course",
		"omelet":            "Omelet",
		"pancake":           "Pancake",
		"preps":             "Preps",
		"preserve":          "Preserve",
		"salad":             "Salad",
		"sandwiches":        "Sandwiches",
		"soup":              "Soup",
		"starter":           "Starter",
	}

	CuisineTypes = map[string]string{
		"american":         "American",
		"asian":            "Asian",
		"british":          "British",
		"caribbean":        "Caribbean",
		"central-europe":   "Central Europe",
		"chinese":          "Chinese",
		"eastern-europe":   "Eastern Europe",
		"french":           "French",
		"indian":           "Indian",
		"italian":          "Italian",
		"japanese":         "Japanese",
		"kosher":           "Kosher",
		"mediterranean":    "Mediterranean",
		"mexican":          "Mexican",
		"middle-eastern":   "Middle Eastern",
		"nordic":           "Nordic",
		"south-american":   "South American",
		"south-east-asian": "South East Asian",
	}
)

// DishTypeNone is stored when the provider returns no dish-type tag for a
// candidate. Degraded provider data is still valid data.
const DishTypeNone = "None"

type (
	SearchRecipesRequest struct {
		Query string `json:"query" validate:"omitempty,min=2"`
	}

	SearchRecipesResponse struct {
		Query        string   `json:"query"`
		Recipes      []Recipe `json:"recipes"`
		TotalRecipes int      `json:"total_recipes"`
		LikedIDs     []string `json:"liked_ids,omitempty"`
	}

	AddRecipeRequest struct {
		Title       string `json:"title" validate:"required"`
		RecipeImage string `json:"recipe_image" validate:"required,url"`
		DishType    string `json:"dish_type" validate:"required"`
		CuisineType string `json:"cuisine_type" validate:"required"`
		Recipe      string `json:"recipe" validate:"required,min=10"`
	}

	Recipe struct {
		ID          string    `json:"id"`
		Title       string    `json:"title"`
		RecipeImage string    `json:"recipe_image,omitempty"`
		DishType    string    `json:"dish_type"`
		CuisineType string    `json:"cuisine_type"`
		Recipe      string    `json:"recipe"`
		URL         string    `json:"url,omitempty"`
		UserID      string    `json:"user_id"`
		CreatedAt   time.Time `json:"created_at"`
		IsLiked     bool      `json:"is_liked,omitempty"`
	}

	ToggleLikeResponse struct {
		RecipeID string `json:"recipe_id"`
		Liked    bool   `json:"liked"`
	}

	UploadRecipeImageResponse struct {
		ImageURL string `json:"image_url"`
	}
)
