package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"pizzeria/internal/models"
	"pizzeria/internal/repositories"
)

// UserService handles business logic for user profiles.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Get retrieves a user by id with roles attached.
func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// Update applies a partial profile update. Only the target user themselves or
// an admin may update a user; the password is re-hashed when supplied.
func (s *UserService) Update(authUser *models.User, id uint, name, email, password string) (*models.User, error) {
	if !authUser.MayActOn(id) {
		return nil, fmt.Errorf("not allowed to update user %d: %w", id, models.ErrForbidden)
	}

	hashed := ""
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed = string(h)
	}
	return s.userRepo.Update(id, name, email, hashed)
}

// List pages through users by name filter. Admin only.
func (s *UserService) List(authUser *models.User, page, limit int, nameFilter string) ([]models.User, bool, error) {
	if !authUser.HasRole(models.RoleAdmin) {
		return nil, false, fmt.Errorf("listing users requires the admin role: %w", models.ErrForbidden)
	}
	return s.userRepo.List(page, limit, nameFilter)
}
