package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dishcovery/dishcovery/domain"
	"github.com/dishcovery/dishcovery/entities"
	"github.com/dishcovery/dishcovery/internal/utils"
	"github.com/dishcovery/dishcovery/internal/utils/mailing"
	"github.com/dishcovery/dishcovery/pkg/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.UserRegisterRequest) (domain.UserRegisterResponse, error)
		Login(ctx context.Context, req domain.UserLoginRequest) (domain.UserLoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		EnsureSeedUser(ctx context.Context) (*entities.User, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.UserRegisterRequest) (domain.UserRegisterResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserRegisterResponse{}, err
	}

	newUser := entities.User{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}

	if err := s.userRepository.CreateUser(ctx, &newUser); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if _, lookupErr := s.userRepository.GetUserByUsername(ctx, req.Username); lookupErr == nil {
				return domain.UserRegisterResponse{}, domain.ErrUsernameTaken
			}
			return domain.UserRegisterResponse{}, domain.ErrEmailTaken
		}
		return domain.UserRegisterResponse{}, err
	}

	go func() {
		body := fmt.Sprintf("<p>Hi %s, welcome to Dishcovery! Start searching and sharing recipes.</p>", newUser.Username)
		if err := mailing.SendMail(newUser.Email, "Welcome to Dishcovery", body); err != nil {
			log.Printf("failed to send welcome email to %s: %v", newUser.Email, err)
		}
	}()

	return domain.UserRegisterResponse{
		ID:       newUser.ID.String(),
		Username: newUser.Username,
		Email:    newUser.Email,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.UserLoginRequest) (domain.UserLoginResponse, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserLoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.UserLoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.UserLoginResponse{}, domain.ErrInvalidCredentials
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)

	return domain.UserLoginResponse{
		Token: token,
		Role:  user.Role,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	return domain.UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// EnsureSeedUser guarantees the service account that owns provider-ingested
// recipes exists, creating it on first run.
func (s *userService) EnsureSeedUser(ctx context.Context) (*entities.User, error) {
	username := utils.GetConfig("SEED_USERNAME")

	seed, err := s.userRepository.GetUserByUsername(ctx, username)
	if err == nil {
		return seed, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	password := utils.GetConfig("SEED_PASSWORD")
	if password == "" {
		password = uuid.New().String()
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newSeed := entities.User{
		ID:       uuid.New(),
		Username: username,
		Email:    utils.GetConfig("SEED_EMAIL"),
		Password: string(hashed),
		Role:     domain.RoleSeed,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := s.userRepository.CreateUser(ctx, &newSeed); err != nil {
		// A concurrent boot may have created it between lookup and insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.userRepository.GetUserByUsername(ctx, username)
		}
		return nil, err
	}

	return &newSeed, nil
}
