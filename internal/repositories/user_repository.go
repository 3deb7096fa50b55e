package repositories

import "pizzeria/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create inserts the user and one role row per assignment, defaulting to a
	// single diner role when none are given. The stored password must already
	// be hashed by the caller.
	Create(user *models.User, roles []models.RoleAssignment) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	// Update applies only the non-empty fields and returns the reloaded user.
	Update(id uint, name, email, hashedPassword string) (*models.User, error)
	// List returns at most limit users matching the name filter plus a flag
	// indicating whether more pages exist.
	List(page, limit int, nameFilter string) ([]models.User, bool, error)
}
