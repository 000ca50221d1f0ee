package user

import (
	"context"

	"github.com/dishcovery/dishcovery/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		DeleteUser(ctx context.Context, id string) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the user together with everything hanging off it.
// Cascades run as one explicit transaction: likes on the user's recipes,
// the user's own likes, the recipes, the search session, then the row itself.
func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	userUUID, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownRecipeIDs := tx.Model(&entities.Recipe{}).Select("id").Where("user_id = ?", userUUID)

		if err := tx.Where("recipe_id IN (?)", ownRecipeIDs).Delete(&entities.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userUUID).Delete(&entities.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userUUID).Delete(&entities.Recipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userUUID).Delete(&entities.SearchSession{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userUUID).Delete(&entities.User{}).Error
	})
}
