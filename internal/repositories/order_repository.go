package repositories

import "pizzeria/internal/models"

// OrderPageSize is the fixed page size for a diner's order history.
const OrderPageSize = 10

// OrderRepository defines the interface for diner-order data access.
type OrderRepository interface {
	// ListByDiner pages through a diner's orders, items attached.
	ListByDiner(dinerID uint, page int) ([]models.DinerOrder, error)
	// Create inserts the order and its items in one transaction, resolving
	// each item's menu id from its description. An unknown description aborts
	// the whole write with ErrNotFound.
	Create(order *models.DinerOrder) error
}
