package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/dishcovery/dishcovery/domain"
	"github.com/dishcovery/dishcovery/entities"
	"github.com/dishcovery/dishcovery/pkg/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Recipe{},
		&entities.Like{},
		&entities.SearchSession{},
	))

	return db
}

func newTestService(t *testing.T, db *gorm.DB) (UserService, UserRepository) {
	t.Helper()

	repo := NewUserRepository(db)
	return NewUserService(repo, jwt.NewJWTService()), repo
}

func TestRegisterHashesPassword(t *testing.T) {
	db := setupTestDB(t)
	svc, repo := newTestService(t, db)

	res, err := svc.Register(context.Background(), domain.UserRegisterRequest{
		Username: "bob",
		Email:    "bob@email.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", res.Username)

	stored, err := repo.GetUserByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("supersecret")))
}

func TestRegisterDuplicateUsernameRecovers(t *testing.T) {
	db := setupTestDB(t)
	svc, repo := newTestService(t, db)

	_, err := svc.Register(context.Background(), domain.UserRegisterRequest{
		Username: "bob",
		Email:    "bob@email.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), domain.UserRegisterRequest{
		Username: "bob",
		Email:    "other@email.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	// the first row stays intact and no partial row is persisted
	stored, err := repo.GetUserByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob@email.com", stored.Email)

	var count int64
	require.NoError(t, db.Model(&entities.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newTestService(t, db)

	_, err := svc.Register(context.Background(), domain.UserRegisterRequest{
		Username: "bob",
		Email:    "bob@email.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), domain.UserRegisterRequest{
		Username: "robert",
		Email:    "bob@email.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newTestService(t, db)

	_, err := svc.Register(context.Background(), domain.UserRegisterRequest{
		Username: "bob",
		Email:    "bob@email.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), domain.UserLoginRequest{
		Username: "bob",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, domain.RoleUser, res.Role)

	_, err = svc.Login(context.Background(), domain.UserLoginRequest{
		Username: "bob",
		Password: "wrongpassword",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), domain.UserLoginRequest{
		Username: "nobody",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestEnsureSeedUserIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newTestService(t, db)

	first, err := svc.EnsureSeedUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSeed, first.Role)

	second, err := svc.EnsureSeedUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&entities.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	_, repo := newTestService(t, db)

	owner := &entities.User{ID: uuid.New(), Username: "bob", Email: "bob@email.com", Password: "x", Role: domain.RoleUser}
	liker := &entities.User{ID: uuid.New(), Username: "alice", Email: "alice@email.com", Password: "x", Role: domain.RoleUser}
	require.NoError(t, repo.CreateUser(context.Background(), owner))
	require.NoError(t, repo.CreateUser(context.Background(), liker))

	rec := &entities.Recipe{ID: uuid.New(), UserID: owner.ID, Title: "Pancakes"}
	require.NoError(t, db.Create(rec).Error)
	require.NoError(t, db.Create(&entities.Like{ID: uuid.New(), UserID: liker.ID, RecipeID: rec.ID}).Error)
	require.NoError(t, db.Create(&entities.SearchSession{ID: uuid.New(), UserID: owner.ID, Query: "chicken"}).Error)

	require.NoError(t, repo.DeleteUser(context.Background(), owner.ID.String()))

	var recipes, likes, sessions, users int64
	require.NoError(t, db.Model(&entities.Recipe{}).Count(&recipes).Error)
	require.NoError(t, db.Model(&entities.Like{}).Count(&likes).Error)
	require.NoError(t, db.Model(&entities.SearchSession{}).Count(&sessions).Error)
	require.NoError(t, db.Model(&entities.User{}).Count(&users).Error)

	assert.Zero(t, recipes, "owned recipes must be removed")
	assert.Zero(t, likes, "likes on owned recipes must be removed")
	assert.Zero(t, sessions)
	assert.EqualValues(t, 1, users, "other users stay")
}
