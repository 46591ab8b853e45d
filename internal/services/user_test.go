package service_test

import (
	"testing"

	appErrors "github.com/mdsweden/storefront-backend/internal/errors"
	"github.com/mdsweden/storefront-backend/internal/models"
	repoMocks "github.com/mdsweden/storefront-backend/internal/repositories/mocks"
	service "github.com/mdsweden/storefront-backend/internal/services"
	serviceMocks "github.com/mdsweden/storefront-backend/internal/services/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

var testJWTKey = []byte("test-signing-key")

type userServiceMocks struct {
	repo      *repoMocks.MockUserRepository
	rateLimit *repoMocks.MockRateLimitRepository
	notifier  *serviceMocks.MockNotificationService
	svc       service.UserService
}

func newUserService(t *testing.T) *userServiceMocks {
	t.Helper()

	m := &userServiceMocks{
		repo:      repoMocks.NewMockUserRepository(t),
		rateLimit: repoMocks.NewMockRateLimitRepository(t),
		notifier:  serviceMocks.NewMockNotificationService(t),
	}

	m.svc = service.NewUserService(m.repo, m.rateLimit, m.notifier, testJWTKey)

	return m
}

func TestRegister(t *testing.T) {
	ctx := t.Context()

	req := &models.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		m := newUserService(t)

		m.repo.On("GetUserByEmail", ctx, req.Email).Return(nil, assert.AnError).Once()
		m.repo.On("CreateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == req.Email && u.Password != req.Password
		})).Return(nil).Once()

		// The welcome notification runs on a goroutine after registration.
		m.notifier.On("NotifyNewUser", mock.Anything, mock.Anything).Return(nil).Maybe()

		// Act
		user, err := m.svc.Register(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, req.Email, user.Email)
	})

	t.Run("Failure - Email Already Registered", func(t *testing.T) {
		// Arrange
		m := newUserService(t)

		m.repo.On("GetUserByEmail", ctx, req.Email).Return(&models.User{ID: uuid.New(), Email: req.Email}, nil).Once()

		// Act
		user, err := m.svc.Register(ctx, req)

		// Assert
		assert.Nil(t, user)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		m.repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := t.Context()

	password := "password123"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	user := &models.User{
		ID:       uuid.New(),
		Name:     "Test User",
		Email:    "test@example.com",
		Password: string(hashed),
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		m := newUserService(t)

		m.rateLimit.On("CheckLoginRateLimit", ctx, user.Email).Return(true, 4, 0, nil).Once()
		m.repo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()

		// Act
		resp, err := m.svc.Login(ctx, &models.LoginRequest{Email: user.Email, Password: password})

		// Assert
		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		assert.Positive(t, resp.ExpiresIn)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		// Arrange
		m := newUserService(t)

		m.rateLimit.On("CheckLoginRateLimit", ctx, user.Email).Return(true, 3, 0, nil).Once()
		m.repo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()

		// Act
		resp, err := m.svc.Login(ctx, &models.LoginRequest{Email: user.Email, Password: "wrong"})

		// Assert
		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Empty(t, resp.Token)
		assert.Equal(t, 3, resp.RemainingTries)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		m := newUserService(t)

		m.rateLimit.On("CheckLoginRateLimit", ctx, user.Email).Return(false, 0, 30, nil).Once()

		// Act
		resp, err := m.svc.Login(ctx, &models.LoginRequest{Email: user.Email, Password: password})

		// Assert
		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, 30, resp.RetryAfter)
		m.repo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})
}
