package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"pizzeria/internal/models"
)

// GORMFranchiseRepository is a GORM implementation of FranchiseRepository.
type GORMFranchiseRepository struct {
	db *gorm.DB
}

// NewGORMFranchiseRepository creates a new instance of GORMFranchiseRepository.
func NewGORMFranchiseRepository(db *gorm.DB) *GORMFranchiseRepository {
	return &GORMFranchiseRepository{db: db}
}

// Create inserts the franchise and a franchisee role row per admin. All admin
// emails are resolved first so an unknown one fails before anything is
// written.
func (r *GORMFranchiseRepository) Create(franchise *models.Franchise) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		admins := make([]models.User, 0, len(franchise.Admins))
		for _, admin := range franchise.Admins {
			var user models.User
			if err := tx.First(&user, "email = ?", admin.Email).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("franchise admin %s: %w", admin.Email, models.ErrNotFound)
				}
				return fmt.Errorf("failed to resolve franchise admin %s: %w", admin.Email, err)
			}
			user.Password = ""
			admins = append(admins, user)
		}

		if err := tx.Create(franchise).Error; err != nil {
			return fmt.Errorf("failed to create franchise: %w", err)
		}

		for _, admin := range admins {
			role := models.UserRole{
				UserID:   admin.ID,
				Role:     models.RoleFranchisee,
				ObjectID: franchise.ID,
			}
			if err := tx.Create(&role).Error; err != nil {
				return fmt.Errorf("failed to create franchisee role for user %d: %w", admin.ID, err)
			}
		}

		franchise.Admins = admins
		return nil
	})
}

// List pages through franchises matching the name filter, fetching one extra
// row to derive the more flag. Detailed listings hydrate every entry.
func (r *GORMFranchiseRepository) List(page, limit int, nameFilter string, detailed bool) ([]models.Franchise, bool, error) {
	pattern := strings.ReplaceAll(nameFilter, "*", "%")
	if pattern == "" {
		pattern = "%"
	}

	var franchises []models.Franchise
	err := r.db.Where("name LIKE ?", pattern).
		Offset(page * limit).
		Limit(limit + 1).
		Find(&franchises).Error
	if err != nil {
		return nil, false, fmt.Errorf("failed to list franchises: %w", err)
	}

	more := false
	if len(franchises) > limit {
		more = true
		franchises = franchises[:limit]
	}

	if detailed {
		for i := range franchises {
			full, err := r.Get(franchises[i].ID)
			if err != nil {
				return nil, false, err
			}
			franchises[i] = *full
		}
	}
	return franchises, more, nil
}

// ListForUser resolves the franchises a user administers through their
// franchisee roles.
func (r *GORMFranchiseRepository) ListForUser(userID uint) ([]models.Franchise, error) {
	var roles []models.UserRole
	err := r.db.Where("user_id = ? AND role = ?", userID, models.RoleFranchisee).Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list franchise roles for user %d: %w", userID, err)
	}

	franchises := make([]models.Franchise, 0, len(roles))
	for _, role := range roles {
		full, err := r.Get(role.ObjectID)
		if err != nil {
			return nil, err
		}
		franchises = append(franchises, *full)
	}
	return franchises, nil
}

// Get loads a franchise and hydrates its admins (join through the role table)
// and stores, each store carrying the total revenue of its order items.
func (r *GORMFranchiseRepository) Get(id uint) (*models.Franchise, error) {
	var franchise models.Franchise
	if err := r.db.First(&franchise, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("franchise with ID %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get franchise %d: %w", id, err)
	}

	var admins []models.User
	err := r.db.Model(&models.User{}).
		Select("users.id, users.name, users.email").
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Where("user_roles.role = ? AND user_roles.object_id = ?", models.RoleFranchisee, franchise.ID).
		Find(&admins).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load admins for franchise %d: %w", id, err)
	}
	franchise.Admins = admins

	var stores []models.Store
	if err := r.db.Where("franchise_id = ?", id).Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to load stores for franchise %d: %w", id, err)
	}
	for i := range stores {
		var total float64
		err := r.db.Model(&models.OrderItem{}).
			Joins("JOIN diner_orders ON diner_orders.id = order_items.order_id").
			Where("diner_orders.store_id = ?", stores[i].ID).
			Select("COALESCE(SUM(order_items.price), 0)").
			Scan(&total).Error
		if err != nil {
			return nil, fmt.Errorf("failed to compute revenue for store %d: %w", stores[i].ID, err)
		}
		stores[i].TotalRevenue = total
	}
	franchise.Stores = stores

	return &franchise, nil
}

// Delete removes stores before the franchise row; any failure rolls the whole
// operation back.
func (r *GORMFranchiseRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("franchise_id = ?", id).Delete(&models.Store{}).Error; err != nil {
			return fmt.Errorf("failed to delete stores: %w", err)
		}
		if err := tx.Where("role = ? AND object_id = ?", models.RoleFranchisee, id).
			Delete(&models.UserRole{}).Error; err != nil {
			return fmt.Errorf("failed to delete franchisee roles: %w", err)
		}
		if err := tx.Delete(&models.Franchise{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete franchise row: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete franchise %d: %w", id, err)
	}
	return nil
}

// CreateStore inserts a store under an existing franchise.
func (r *GORMFranchiseRepository) CreateStore(franchiseID uint, store *models.Store) error {
	var franchise models.Franchise
	if err := r.db.First(&franchise, franchiseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("franchise with ID %d: %w", franchiseID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to get franchise %d: %w", franchiseID, err)
	}

	store.FranchiseID = franchiseID
	if err := r.db.Create(store).Error; err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

// DeleteStore removes a store by its composite key.
func (r *GORMFranchiseRepository) DeleteStore(franchiseID, storeID uint) error {
	res := r.db.Where("franchise_id = ? AND id = ?", franchiseID, storeID).Delete(&models.Store{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete store %d: %w", storeID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("store %d in franchise %d: %w", storeID, franchiseID, models.ErrNotFound)
	}
	return nil
}
