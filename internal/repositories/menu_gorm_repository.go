package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"pizzeria/internal/models"
)

// GORMMenuRepository is a GORM implementation of MenuRepository.
type GORMMenuRepository struct {
	db *gorm.DB
}

// NewGORMMenuRepository creates a new instance of GORMMenuRepository.
func NewGORMMenuRepository(db *gorm.DB) *GORMMenuRepository {
	return &GORMMenuRepository{db: db}
}

// GetAll retrieves the full menu.
func (r *GORMMenuRepository) GetAll() ([]models.Menu, error) {
	var menu []models.Menu
	if err := r.db.Find(&menu).Error; err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}
	return menu, nil
}

// Create inserts a menu item; the assigned id is written back to the model.
func (r *GORMMenuRepository) Create(item *models.Menu) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}
