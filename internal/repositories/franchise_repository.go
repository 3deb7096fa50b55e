package repositories

import "pizzeria/internal/models"

// FranchiseRepository defines the interface for franchise and store data
// access.
type FranchiseRepository interface {
	// Create resolves each admin by email, then inserts the franchise and one
	// franchisee role per admin in a transaction. An unregistered admin email
	// fails with ErrNotFound before any row is written.
	Create(franchise *models.Franchise) error
	// List pages through franchises by name filter. Without detailed, entries
	// carry id and name only; with it, each is hydrated via Get.
	List(page, limit int, nameFilter string, detailed bool) ([]models.Franchise, bool, error)
	// ListForUser returns the franchises the user administers; an empty slice
	// when none.
	ListForUser(userID uint) ([]models.Franchise, error)
	// Get attaches admins and stores (with computed revenue) to the franchise.
	Get(id uint) (*models.Franchise, error)
	// Delete removes the franchise's stores, its franchisee roles and the
	// franchise itself as one all-or-nothing transaction.
	Delete(id uint) error
	CreateStore(franchiseID uint, store *models.Store) error
	DeleteStore(franchiseID, storeID uint) error
}
