package services

import (
	"fmt"

	"pizzeria/internal/models"
	"pizzeria/internal/repositories"
)

// MenuService handles business logic for the menu.
type MenuService struct {
	menuRepo repositories.MenuRepository
}

// NewMenuService creates a new MenuService.
func NewMenuService(menuRepo repositories.MenuRepository) *MenuService {
	return &MenuService{menuRepo: menuRepo}
}

// GetMenu retrieves the full menu.
func (s *MenuService) GetMenu() ([]models.Menu, error) {
	return s.menuRepo.GetAll()
}

// AddItem adds a menu item. Admin only.
func (s *MenuService) AddItem(authUser *models.User, item *models.Menu) error {
	if !authUser.HasRole(models.RoleAdmin) {
		return fmt.Errorf("adding menu items requires the admin role: %w", models.ErrForbidden)
	}
	return s.menuRepo.Create(item)
}
