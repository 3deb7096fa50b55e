package services_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"pizzeria/internal/models"
	"pizzeria/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User, roles []models.RoleAssignment) error {
	args := m.Called(user, roles)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(id uint, name, email, hashedPassword string) (*models.User, error) {
	args := m.Called(id, name, email, hashedPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(page, limit int, nameFilter string) ([]models.User, bool, error) {
	args := m.Called(page, limit, nameFilter)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]models.User), args.Bool(1), args.Error(2)
}

// MockAuthRepository is a mock implementation of repositories.AuthRepository.
type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) CreateToken(userID uint, signature string) error {
	args := m.Called(userID, signature)
	return args.Error(0)
}

func (m *MockAuthRepository) DeleteToken(signature string) error {
	args := m.Called(signature)
	return args.Error(0)
}

func (m *MockAuthRepository) TokenExists(signature string) (bool, error) {
	args := m.Called(signature)
	return args.Bool(0), args.Error(1)
}

func TestTokenSignature(t *testing.T) {
	assert.Equal(t, "sig", services.TokenSignature("h.p.sig"))
	assert.Equal(t, "", services.TokenSignature("h.p"))
	assert.Equal(t, "", services.TokenSignature(""))
	assert.Equal(t, "", services.TokenSignature("no-dots-at-all"))
	// Extra segments beyond three do not shift the signature position.
	assert.Equal(t, "c", services.TokenSignature("a.b.c.d"))
}

func TestAuthService_Register(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockAuth := new(MockAuthRepository)
	authService := services.NewAuthService(mockUsers, mockAuth, "test_jwt_secret")

	// Successful registration; the repository receives the role assignments
	// untouched and a bcrypt hash rather than the raw password.
	mockUsers.On("GetByEmail", "diner@example.com").Return(nil, fmt.Errorf("user with email diner@example.com: %w", models.ErrNotFound)).Once()
	mockUsers.On("Create", mock.AnythingOfType("*models.User"), []models.RoleAssignment(nil)).
		Run(func(args mock.Arguments) {
			user := args.Get(0).(*models.User)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
			user.ID = 7
		}).Return(nil).Once()

	user, err := authService.Register("Pizza Diner", "diner@example.com", "password123", nil)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	mockUsers.AssertExpectations(t)

	// Taken email fails with ErrExists before any write.
	mockUsers.On("GetByEmail", "diner@example.com").Return(&models.User{ID: 1}, nil).Once()
	_, err = authService.Register("Pizza Diner", "diner@example.com", "password123", nil)
	assert.ErrorIs(t, err, models.ErrExists)
	mockUsers.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockAuth := new(MockAuthRepository)
	authService := services.NewAuthService(mockUsers, mockAuth, "test_jwt_secret")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       1,
		Name:     "Pizza Diner",
		Email:    "diner@example.com",
		Password: string(hashed),
		Roles:    []models.UserRole{{UserID: 1, Role: models.RoleDiner}},
	}

	// Successful login stores the token's signature segment for the user.
	var storedSignature string
	mockUsers.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockAuth.On("CreateToken", uint(1), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			storedSignature = args.String(1)
		}).Return(nil).Once()

	loggedIn, token, err := authService.Login(user.Email, "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, services.TokenSignature(token), storedSignature)
	assert.NotEmpty(t, storedSignature)
	assert.Empty(t, loggedIn.Password)
	assert.Equal(t, user.Roles, loggedIn.Roles)
	mockUsers.AssertExpectations(t)
	mockAuth.AssertExpectations(t)

	// A wrong password and an unknown email fail identically.
	mockUsers.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, wrongPassErr := authService.Login(user.Email, "wrongpassword")
	assert.ErrorIs(t, wrongPassErr, models.ErrNotFound)

	mockUsers.On("GetByEmail", "nobody@example.com").Return(nil, fmt.Errorf("user with email nobody@example.com: %w", models.ErrNotFound)).Once()
	_, _, unknownErr := authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, unknownErr, models.ErrNotFound)

	assert.Equal(t, wrongPassErr.Error(), unknownErr.Error())
	mockUsers.AssertExpectations(t)
}

func TestAuthService_LogoutDeletesSignature(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockAuth := new(MockAuthRepository)
	authService := services.NewAuthService(mockUsers, mockAuth, "test_jwt_secret")

	mockAuth.On("DeleteToken", "sig").Return(nil).Once()
	assert.NoError(t, authService.Logout("header.payload.sig"))
	mockAuth.AssertExpectations(t)
}

func TestAuthService_Authenticate(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockAuth := new(MockAuthRepository)
	authService := services.NewAuthService(mockUsers, mockAuth, "test_jwt_secret")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: 1, Name: "Pizza Diner", Email: "diner@example.com", Password: string(hashed)}

	mockUsers.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockAuth.On("CreateToken", uint(1), mock.AnythingOfType("string")).Return(nil).Once()
	_, token, err := authService.Login(user.Email, "password123")
	assert.NoError(t, err)

	// Valid token whose signature is logged in.
	mockAuth.On("TokenExists", services.TokenSignature(token)).Return(true, nil).Once()
	mockUsers.On("GetByID", uint(1)).Return(user, nil).Once()
	authUser, err := authService.Authenticate(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), authUser.ID)
	assert.Empty(t, authUser.Password)

	// The same token after logout is rejected: logged-in state is table
	// presence, not token validity.
	mockAuth.On("TokenExists", services.TokenSignature(token)).Return(false, nil).Once()
	_, err = authService.Authenticate(token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	// A malformed token maps to the empty signature, which never matches.
	mockAuth.On("TokenExists", "").Return(false, nil).Once()
	_, err = authService.Authenticate("garbage")
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	// A forged token with a stored signature still fails JWT verification.
	forged := "eyJh.eyJw." + services.TokenSignature(token)
	mockAuth.On("TokenExists", services.TokenSignature(token)).Return(true, nil).Once()
	_, err = authService.Authenticate(forged)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	mockAuth.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestAuthService_IsLoggedIn(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockAuth := new(MockAuthRepository)
	authService := services.NewAuthService(mockUsers, mockAuth, "test_jwt_secret")

	mockAuth.On("TokenExists", "sig").Return(true, nil).Once()
	loggedIn, err := authService.IsLoggedIn("h.p.sig")
	assert.NoError(t, err)
	assert.True(t, loggedIn)

	mockAuth.On("TokenExists", "sig").Return(false, errors.New("db down")).Once()
	_, err = authService.IsLoggedIn("h.p.sig")
	assert.Error(t, err)
	mockAuth.AssertExpectations(t)
}
