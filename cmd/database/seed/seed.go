package seed

import (
	"context"
	"fmt"

	"github.com/dishcovery/dishcovery/domain"
	"github.com/dishcovery/dishcovery/pkg/jwt"
	"github.com/dishcovery/dishcovery/pkg/provider"
	"github.com/dishcovery/dishcovery/pkg/recipe"
	"github.com/dishcovery/dishcovery/pkg/user"
	"gorm.io/gorm"
)

// Seed creates the service account and fills an empty catalog with a first
// batch of provider recipes so fresh installs are not blank.
func Seed(ctx context.Context, db *gorm.DB) error {
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	userService := user.NewUserService(userRepository, jwt.NewJWTService())
	recipeService := recipe.NewRecipeService(recipeRepository, userService, provider.NewEdamamProvider(), nil)

	seedUser, err := userService.EnsureSeedUser(ctx)
	if err != nil {
		return fmt.Errorf("ensure seed user: %w", err)
	}

	_, err = recipeService.SearchRecipes(ctx, domain.SearchRecipesRequest{Query: "chicken"}, seedUser.ID.String())
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	fmt.Println("Database seed complete")
	return nil
}
