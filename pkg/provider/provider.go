package provider

import "context"

// Candidate is a provider search hit before it is matched against or
// inserted into the recipe store.
type Candidate struct {
	Label           string
	Image           string
	IngredientLines []string
	CuisineType     []string
	DishType        []string
	URL             string
}

// RecipeProvider searches an external recipe catalog. Implementations do no
// persistence and no deduplication.
type RecipeProvider interface {
	Search(ctx context.Context, query string) ([]Candidate, error)
}
