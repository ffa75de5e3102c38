package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tourstay/internal/domain"
	"tourstay/internal/pkg/apperr"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type stubIssuer struct{}

func (stubIssuer) GenerateToken(userID int64, role domain.UserRole) (string, error) {
	return "token", nil
}

func TestRegisterDefaultsToGuestRole(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleUser && u.Email == "ananya@gmail.com"
	})).Return(nil)

	svc := NewService(users, stubIssuer{})
	result, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "Ananya@Gmail.com",
		Password: "supersecret",
		Name:     "Ananya",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token", result.Token)
	users.AssertExpectations(t)
}

func TestRegisterRejectsStaffRoles(t *testing.T) {
	svc := NewService(new(MockUserRepository), stubIssuer{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email: "x@y.z", Password: "supersecret", Name: "X", Role: "admin",
	})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "ananya@gmail.com").Return(&domain.User{
		ID: 1, Email: "ananya@gmail.com", PasswordHash: string(hash), Role: domain.RoleUser,
	}, nil)

	svc := NewService(users, stubIssuer{})

	result, err := svc.Login(context.Background(), LoginRequest{Email: "ananya@gmail.com", Password: "supersecret"})
	assert.NoError(t, err)
	assert.Equal(t, "token", result.Token)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "ananya@gmail.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "nobody@x.z").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(users, stubIssuer{})
	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@x.z", Password: "whatever"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
