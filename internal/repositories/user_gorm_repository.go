package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"pizzeria/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

// Create inserts the user row and its role rows in a single transaction. A
// franchisee assignment names its franchise; an unknown name aborts the whole
// write with ErrNotFound.
func (r *GORMUserRepository) Create(user *models.User, roles []models.RoleAssignment) error {
	if len(roles) == 0 {
		roles = []models.RoleAssignment{{Role: models.RoleDiner}}
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Roles").Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		userRoles := make([]models.UserRole, 0, len(roles))
		for _, assignment := range roles {
			userRole := models.UserRole{UserID: user.ID, Role: assignment.Role}
			if assignment.Role == models.RoleFranchisee {
				var franchise models.Franchise
				if err := tx.First(&franchise, "name = ?", assignment.Object).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("franchise %q: %w", assignment.Object, models.ErrNotFound)
					}
					return fmt.Errorf("failed to resolve franchise %q: %w", assignment.Object, err)
				}
				userRole.ObjectID = franchise.ID
			}
			if err := tx.Create(&userRole).Error; err != nil {
				return fmt.Errorf("failed to create role %s for user %d: %w", assignment.Role, user.ID, err)
			}
			userRoles = append(userRoles, userRole)
		}
		user.Roles = userRoles
		return nil
	})
	if err != nil {
		return err
	}

	user.Password = ""
	return nil
}

// GetByEmail retrieves a user with roles by email. The password hash is left
// in place for credential checks; callers strip it before returning the user.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Roles").First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user with roles by id.
func (r *GORMUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Roles").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// Update applies a partial update of the supplied fields and reloads the full
// record, roles included.
func (r *GORMUserRepository) Update(id uint, name, email, hashedPassword string) (*models.User, error) {
	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if email != "" {
		updates["email"] = email
	}
	if hashedPassword != "" {
		updates["password"] = hashedPassword
	}

	if len(updates) > 0 {
		res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("failed to update user %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("user with ID %d: %w", id, models.ErrNotFound)
		}
	}

	user, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// List pages through users whose name matches the filter. A `*` wildcard maps
// to SQL `%`. One extra row is fetched to derive the more flag without a
// second count query.
func (r *GORMUserRepository) List(page, limit int, nameFilter string) ([]models.User, bool, error) {
	pattern := strings.ReplaceAll(nameFilter, "*", "%")
	if pattern == "" {
		pattern = "%"
	}

	var users []models.User
	err := r.db.Preload("Roles").
		Where("name LIKE ?", pattern).
		Offset(page * limit).
		Limit(limit + 1).
		Find(&users).Error
	if err != nil {
		return nil, false, fmt.Errorf("failed to list users: %w", err)
	}

	more := false
	if len(users) > limit {
		more = true
		users = users[:limit]
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, more, nil
}
