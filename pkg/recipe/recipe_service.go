package recipe

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/dishcovery/dishcovery/domain"
	"github.com/dishcovery/dishcovery/entities"
	"github.com/dishcovery/dishcovery/internal/utils/storage"
	"github.com/dishcovery/dishcovery/pkg/provider"
	"github.com/dishcovery/dishcovery/pkg/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		SearchRecipes(ctx context.Context, req domain.SearchRecipesRequest, userID string) (domain.SearchRecipesResponse, error)
		AddRecipe(ctx context.Context, req domain.AddRecipeRequest, userID string) (domain.Recipe, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.Recipe, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		ToggleLike(ctx context.Context, userID, recipeID string) (domain.ToggleLikeResponse, error)
		GetMyRecipes(ctx context.Context, page, limit int, userID string) ([]domain.Recipe, int64, error)
		GetLikedRecipes(ctx context.Context, page, limit int, userID string) ([]domain.Recipe, int64, error)
		UploadRecipeImage(ctx context.Context, file *multipart.FileHeader, userID string) (domain.UploadRecipeImageResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		userService      user.UserService
		provider         provider.RecipeProvider
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, userService user.UserService, recipeProvider provider.RecipeProvider, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		userService:      userService,
		provider:         recipeProvider,
		s3:               s3,
	}
}

// SearchRecipes resolves the effective query, fetches provider candidates and
// reconciles them against the store by canonical url. Existing recipes are
// returned untouched; new ones are attributed to the seed account and
// committed as one unit. Result order follows provider order.
func (s *recipeService) SearchRecipes(ctx context.Context, req domain.SearchRecipesRequest, userID string) (domain.SearchRecipesResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query != "" {
		if err := s.recipeRepository.SaveSearchQuery(ctx, userID, query); err != nil {
			return domain.SearchRecipesResponse{}, err
		}
	} else {
		stored, err := s.recipeRepository.GetSearchQuery(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.SearchRecipesResponse{}, domain.ErrNoActiveQuery
			}
			return domain.SearchRecipesResponse{}, err
		}
		query = stored
	}

	candidates, err := s.provider.Search(ctx, query)
	if err != nil {
		return domain.SearchRecipesResponse{}, domain.ErrProviderUnavailable
	}

	seed, err := s.userService.EnsureSeedUser(ctx)
	if err != nil {
		return domain.SearchRecipesResponse{}, domain.ErrSeedUserMissing
	}

	ordered := make([]*entities.Recipe, 0, len(candidates))
	var toCreate []*entities.Recipe

	for _, candidate := range candidates {
		if candidate.URL == "" {
			// Without a canonical url there is no dedup key to reconcile on.
			continue
		}

		existing, err := s.recipeRepository.GetRecipeByURL(ctx, candidate.URL)
		if err == nil {
			ordered = append(ordered, existing)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SearchRecipesResponse{}, err
		}

		rec := candidateToRecipe(candidate, seed.ID)
		ordered = append(ordered, rec)
		toCreate = append(toCreate, rec)
	}

	if err := s.recipeRepository.IngestRecipes(ctx, toCreate); err != nil {
		return domain.SearchRecipesResponse{}, err
	}

	recipeIDs := make([]uuid.UUID, 0, len(ordered))
	for _, rec := range ordered {
		recipeIDs = append(recipeIDs, rec.ID)
	}

	likedIDs, err := s.recipeRepository.GetLikedRecipeIDs(ctx, userID, recipeIDs)
	if err != nil {
		return domain.SearchRecipesResponse{}, err
	}
	likedSet := make(map[uuid.UUID]bool, len(likedIDs))
	for _, id := range likedIDs {
		likedSet[id] = true
	}

	recipes := make([]domain.Recipe, 0, len(ordered))
	liked := make([]string, 0, len(likedIDs))
	for _, rec := range ordered {
		dto := recipeToDomain(rec)
		dto.IsLiked = likedSet[rec.ID]
		if dto.IsLiked {
			liked = append(liked, rec.ID.String())
		}
		recipes = append(recipes, dto)
	}

	return domain.SearchRecipesResponse{
		Query:        query,
		Recipes:      recipes,
		TotalRecipes: len(recipes),
		LikedIDs:     liked,
	}, nil
}

func candidateToRecipe(candidate provider.Candidate, ownerID uuid.UUID) *entities.Recipe {
	url := candidate.URL
	return &entities.Recipe{
		ID:          uuid.New(),
		UserID:      ownerID,
		Title:       candidate.Label,
		RecipeImage: candidate.Image,
		DishType:    firstTagOrNone(candidate.DishType),
		CuisineType: firstTagOrNone(candidate.CuisineType),
		Recipe:      strings.Join(candidate.IngredientLines, "\n"),
		URL:         &url,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
}

// firstTagOrNone capitalizes the leading provider tag for display, falling
// back to the "None" sentinel when the provider omitted the tag list.
func firstTagOrNone(tags []string) string {
	if len(tags) == 0 || tags[0] == "" {
		return domain.DishTypeNone
	}
	tag := tags[0]
	return strings.ToUpper(tag[:1]) + strings.ToLower(tag[1:])
}

func recipeToDomain(rec *entities.Recipe) domain.Recipe {
	dto := domain.Recipe{
		ID:          rec.ID.String(),
		Title:       rec.Title,
		RecipeImage: rec.RecipeImage,
		DishType:    rec.DishType,
		CuisineType: rec.CuisineType,
		Recipe:      rec.Recipe,
		UserID:      rec.UserID.String(),
		CreatedAt:   rec.CreatedAt,
	}
	if rec.URL != nil {
		dto.URL = *rec.URL
	}
	return dto
}

func (s *recipeService) AddRecipe(ctx context.Context, req domain.AddRecipeRequest, userID string) (domain.Recipe, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Recipe{}, domain.ErrParseUUID
	}

	dishLabel, ok := domain.DishTypes[req.DishType]
	if !ok {
		return domain.Recipe{}, domain.ErrInvalidDishType
	}
	cuisineLabel, ok := domain.CuisineTypes[req.CuisineType]
	if !ok {
		return domain.Recipe{}, domain.ErrInvalidCuisineType
	}

	rec := entities.Recipe{
		ID:          uuid.New(),
		UserID:      userUUID,
		Title:       req.Title,
		RecipeImage: req.RecipeImage,
		DishType:    dishLabel,
		CuisineType: cuisineLabel,
		Recipe:      req.Recipe,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := s.recipeRepository.CreateRecipe(ctx, &rec); err != nil {
		return domain.Recipe{}, err
	}

	return recipeToDomain(&rec), nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.Recipe, error) {
	rec, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recipe{}, domain.ErrRecipeNotFound
		}
		return domain.Recipe{}, err
	}

	dto := recipeToDomain(rec)

	likedIDs, err := s.recipeRepository.GetLikedRecipeIDs(ctx, userID, []uuid.UUID{rec.ID})
	if err == nil && len(likedIDs) > 0 {
		dto.IsLiked = true
	}

	return dto, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	rec, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if rec.UserID.String() != userID {
		return domain.ErrNotRecipeOwner
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

// ToggleLike flips membership of the recipe in the caller's liked set. Both
// the like and unlike routes land here; there is one toggle, two entry points.
func (s *recipeService) ToggleLike(ctx context.Context, userID, recipeID string) (domain.ToggleLikeResponse, error) {
	rec, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ToggleLikeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.ToggleLikeResponse{}, err
	}

	if rec.UserID.String() == userID {
		return domain.ToggleLikeResponse{}, domain.ErrSelfLikeForbidden
	}

	liked, err := s.recipeRepository.ToggleLike(ctx, userID, recipeID)
	if err != nil {
		return domain.ToggleLikeResponse{}, err
	}

	return domain.ToggleLikeResponse{
		RecipeID: recipeID,
		Liked:    liked,
	}, nil
}

func (s *recipeService) GetMyRecipes(ctx context.Context, page, limit int, userID string) ([]domain.Recipe, int64, error) {
	recs, count, err := s.recipeRepository.GetRecipesByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	recipes := make([]domain.Recipe, 0, len(recs))
	for _, rec := range recs {
		recipes = append(recipes, recipeToDomain(rec))
	}
	return recipes, count, nil
}

func (s *recipeService) GetLikedRecipes(ctx context.Context, page, limit int, userID string) ([]domain.Recipe, int64, error) {
	recs, count, err := s.recipeRepository.GetLikedRecipes(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	recipes := make([]domain.Recipe, 0, len(recs))
	for _, rec := range recs {
		dto := recipeToDomain(rec)
		dto.IsLiked = true
		recipes = append(recipes, dto)
	}
	return recipes, count, nil
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, file *multipart.FileHeader, userID string) (domain.UploadRecipeImageResponse, error) {
	key := fmt.Sprintf("recipes/%s/%s%s", userID, uuid.New().String(), filepath.Ext(file.Filename))

	imageURL, err := s.s3.UploadFile(ctx, key, file)
	if err != nil {
		return domain.UploadRecipeImageResponse{}, err
	}

	return domain.UploadRecipeImageResponse{ImageURL: imageURL}, nil
}
