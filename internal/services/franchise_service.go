package services

import (
	"fmt"

	"pizzeria/internal/models"
	"pizzeria/internal/repositories"
)

// FranchiseService handles business logic for franchises and their stores.
type FranchiseService struct {
	franchiseRepo repositories.FranchiseRepository
}

// NewFranchiseService creates a new FranchiseService.
func NewFranchiseService(franchiseRepo repositories.FranchiseRepository) *FranchiseService {
	return &FranchiseService{franchiseRepo: franchiseRepo}
}

// List pages through franchises. Anonymous callers and plain diners get a
// lightweight id-and-name listing; an admin gets every entry hydrated with
// admins and stores.
func (s *FranchiseService) List(authUser *models.User, page, limit int, nameFilter string) ([]models.Franchise, bool, error) {
	detailed := authUser != nil && authUser.HasRole(models.RoleAdmin)
	return s.franchiseRepo.List(page, limit, nameFilter, detailed)
}

// ListForUser returns the franchises a user administers. Callers other than
// the user themselves or an admin get an empty list rather than an error.
func (s *FranchiseService) ListForUser(authUser *models.User, userID uint) ([]models.Franchise, error) {
	if !authUser.MayActOn(userID) {
		return []models.Franchise{}, nil
	}
	return s.franchiseRepo.ListForUser(userID)
}

// Get retrieves a franchise with admins and stores attached.
func (s *FranchiseService) Get(id uint) (*models.Franchise, error) {
	return s.franchiseRepo.Get(id)
}

// Create creates a franchise with the given admins. Admin only.
func (s *FranchiseService) Create(authUser *models.User, franchise *models.Franchise) error {
	if !authUser.HasRole(models.RoleAdmin) {
		return fmt.Errorf("creating a franchise requires the admin role: %w", models.ErrForbidden)
	}
	return s.franchiseRepo.Create(franchise)
}

// Delete removes a franchise and its stores. Admin only.
func (s *FranchiseService) Delete(authUser *models.User, id uint) error {
	if !authUser.HasRole(models.RoleAdmin) {
		return fmt.Errorf("deleting a franchise requires the admin role: %w", models.ErrForbidden)
	}
	return s.franchiseRepo.Delete(id)
}

// CreateStore adds a store to a franchise. Allowed for admins and for the
// franchise's own admins.
func (s *FranchiseService) CreateStore(authUser *models.User, franchiseID uint, store *models.Store) error {
	if err := s.authorizeStoreChange(authUser, franchiseID); err != nil {
		return err
	}
	return s.franchiseRepo.CreateStore(franchiseID, store)
}

// DeleteStore removes a store from a franchise under the same rule as
// CreateStore.
func (s *FranchiseService) DeleteStore(authUser *models.User, franchiseID, storeID uint) error {
	if err := s.authorizeStoreChange(authUser, franchiseID); err != nil {
		return err
	}
	return s.franchiseRepo.DeleteStore(franchiseID, storeID)
}

// authorizeStoreChange checks the caller against the franchise's admin list.
func (s *FranchiseService) authorizeStoreChange(authUser *models.User, franchiseID uint) error {
	if authUser.HasRole(models.RoleAdmin) {
		return nil
	}
	franchise, err := s.franchiseRepo.Get(franchiseID)
	if err != nil {
		return err
	}
	for _, admin := range franchise.Admins {
		if admin.ID == authUser.ID {
			return nil
		}
	}
	return fmt.Errorf("changing stores of franchise %d requires admin rights: %w", franchiseID, models.ErrForbidden)
}
