package recipe

import (
	"context"
	"errors"
	"time"

	"github.com/dishcovery/dishcovery/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		IngestRecipes(ctx context.Context, recipes []*entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipeByURL(ctx context.Context, url string) (*entities.Recipe, error)
		GetRecipesByUser(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error)
		GetLikedRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error)
		DeleteRecipe(ctx context.Context, id string) error
		ToggleLike(ctx context.Context, userID, recipeID string) (bool, error)
		GetLikedRecipeIDs(ctx context.Context, userID string, recipeIDs []uuid.UUID) ([]uuid.UUID, error)
		SaveSearchQuery(ctx context.Context, userID, query string) error
		GetSearchQuery(ctx context.Context, userID string) (string, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

// IngestRecipes commits provider-sourced recipes as a single unit of work.
// The unique index on url is the concurrency guard: when a concurrent
// identical search wins the insert race, the conflicting row is re-fetched
// by url and copied over the candidate in place, so callers keep their
// ordered slice and never reference an uncommitted row.
func (r *recipeRepository) IngestRecipes(ctx context.Context, recipes []*entities.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rec := range recipes {
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "url"}},
				DoNothing: true,
			}).Create(rec)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 && rec.URL != nil {
				var existing entities.Recipe
				if err := tx.Where("url = ?", *rec.URL).First(&existing).Error; err != nil {
					return err
				}
				*rec = existing
			}
		}
		return nil
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeByURL(ctx context.Context, url string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("url = ?", url).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipesByUser(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetLikedRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Joins("JOIN likes ON recipes.id = likes.recipe_id").
		Where("likes.user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN likes ON recipes.id = likes.recipe_id").
		Where("likes.user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("likes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

// DeleteRecipe removes the recipe and its likes in one transaction.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	recipeUUID, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeUUID).Delete(&entities.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", recipeUUID).Delete(&entities.Recipe{}).Error
	})
}

// ToggleLike flips the (user, recipe) membership and reports the new state.
// The composite unique index on likes serializes concurrent toggles: a lost
// insert race resolves to the liked state instead of a duplicate row.
func (r *recipeRepository) ToggleLike(ctx context.Context, userID, recipeID string) (bool, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return false, err
	}

	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return false, err
	}

	liked := false
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND recipe_id = ?", userUUID, recipeUUID).Delete(&entities.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		like := entities.Like{
			ID:        uuid.New(),
			UserID:    userUUID,
			RecipeID:  recipeUUID,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				liked = true
				return nil
			}
			return err
		}
		liked = true
		return nil
	})

	return liked, err
}

func (r *recipeRepository) GetLikedRecipeIDs(ctx context.Context, userID string, recipeIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}

	var likedIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.Like{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &likedIDs).Error; err != nil {
		return nil, err
	}
	return likedIDs, nil
}

// SaveSearchQuery upserts the user's current search, one row per user.
func (r *recipeRepository) SaveSearchQuery(ctx context.Context, userID, query string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return err
	}

	session := entities.SearchSession{
		ID:        uuid.New(),
		UserID:    userUUID,
		Query:     query,
		UpdatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"query", "updated_at"}),
	}).Create(&session).Error
}

func (r *recipeRepository) GetSearchQuery(ctx context.Context, userID string) (string, error) {
	var session entities.SearchSession
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&session).Error; err != nil {
		return "", err
	}
	return session.Query, nil
}
