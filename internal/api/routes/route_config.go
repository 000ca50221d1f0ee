package routes

import (
	"github.com/dishcovery/dishcovery/internal/api/handlers"
	"github.com/dishcovery/dishcovery/internal/middleware"
	"github.com/dishcovery/dishcovery/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	RecipeHandler handlers.RecipeHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	// provider search, POST stores the query and GET replays it
	recipes.Post("/search", c.RecipeHandler.SearchRecipes)
	recipes.Get("/search", c.RecipeHandler.SearchRecipes)

	// direct submissions and browsing
	recipes.Post("", c.RecipeHandler.AddRecipe)
	recipes.Get("/mine", c.RecipeHandler.GetMyRecipes)
	recipes.Get("/likes", c.RecipeHandler.GetLikedRecipes)
	recipes.Post("/image", c.RecipeHandler.UploadRecipeImage)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)

	// one toggle, two entry points
	recipes.Post("/:id/like", c.RecipeHandler.ToggleLike)
	recipes.Post("/:id/unlike", c.RecipeHandler.ToggleLike)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
