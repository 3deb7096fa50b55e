package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pizzeria/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// ListByDiner retrieves one page of a diner's orders, newest first.
func (r *GORMOrderRepository) ListByDiner(dinerID uint, page int) ([]models.DinerOrder, error) {
	var orders []models.DinerOrder
	err := r.db.Preload("Items").
		Where("diner_id = ?", dinerID).
		Order("id DESC").
		Offset(page * OrderPageSize).
		Limit(OrderPageSize).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for diner %d: %w", dinerID, err)
	}
	return orders, nil
}

// Create inserts the order row, then resolves and inserts each item. Every
// item description must match an existing menu title; otherwise nothing is
// kept.
func (r *GORMOrderRepository) Create(order *models.DinerOrder) error {
	items := order.Items
	order.Items = nil
	if order.Date.IsZero() {
		order.Date = time.Now()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			var menu models.Menu
			if err := tx.First(&menu, "title = ?", items[i].Description).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("menu item %q: %w", items[i].Description, models.ErrNotFound)
				}
				return fmt.Errorf("failed to resolve menu item %q: %w", items[i].Description, err)
			}
			items[i].OrderID = order.ID
			items[i].MenuID = menu.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}
		order.Items = items
		return nil
	})
}
