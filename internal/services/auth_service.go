package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"pizzeria/internal/models"
	"pizzeria/internal/repositories"
)

// AuthService handles registration, login state and token verification.
// Logged-in state is defined solely by the presence of a token's signature in
// the auth table; the JWT itself carries no server-tracked expiry there.
type AuthService struct {
	userRepo      repositories.UserRepository
	authRepo      repositories.AuthRepository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, authRepo repositories.AuthRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		authRepo:      authRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour,
	}
}

// TokenSignature extracts the signature segment of a bearer token, the third
// dot-delimited component. Malformed input yields the empty string, which is
// a key that never matches a stored token.
func TokenSignature(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

// Register hashes the password and creates the user with the requested role
// assignments (a lone diner role when none are given). A taken email fails
// with ErrExists before anything is written.
func (s *AuthService) Register(name, email, password string, roles []models.RoleAssignment) (*models.User, error) {
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, fmt.Errorf("email %s: %w", email, models.ErrExists)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Name: name, Email: email, Password: string(hashed)}
	if err := s.userRepo.Create(user, roles); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials, signs a JWT and records its signature in
// the auth table. A wrong password fails exactly like an unknown email so the
// response never reveals which emails are registered.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("invalid credentials: %w", models.ErrNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials: %w", models.ErrNotFound)
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.authRepo.CreateToken(user.ID, TokenSignature(token)); err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

// Logout deletes the token's signature from the auth table.
func (s *AuthService) Logout(token string) error {
	return s.authRepo.DeleteToken(TokenSignature(token))
}

// IsLoggedIn reports whether the token's signature is present in the auth
// table.
func (s *AuthService) IsLoggedIn(token string) (bool, error) {
	return s.authRepo.TokenExists(TokenSignature(token))
}

// Authenticate verifies the token's signature is logged in and its JWT is
// valid, then loads the user it names with a fresh set of roles.
func (s *AuthService) Authenticate(token string) (*models.User, error) {
	loggedIn, err := s.authRepo.TokenExists(TokenSignature(token))
	if err != nil {
		return nil, err
	}
	if !loggedIn {
		return nil, fmt.Errorf("token is not logged in: %w", models.ErrUnauthorized)
	}

	userID, err := s.parseToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", models.ErrUnauthorized)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("token user %d: %w", userID, models.ErrUnauthorized)
		}
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (s *AuthService) signToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"roles":   user.Roles,
		"exp":     now.Add(s.tokenDuration).Unix(),
		"iat":     now.Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) parseToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid token claims")
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("missing user_id claim")
	}
	return uint(id), nil
}
