package repositories

import "pizzeria/internal/models"

// MenuRepository defines the interface for menu data access.
type MenuRepository interface {
	GetAll() ([]models.Menu, error)
	Create(item *models.Menu) error
}
