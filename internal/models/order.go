package models

import "time"

// DinerOrder is an order a diner placed against a franchise store.
type DinerOrder struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	DinerID     uint        `json:"dinerId" gorm:"index"`
	FranchiseID uint        `json:"franchiseId"`
	StoreID     uint        `json:"storeId"`
	Date        time.Time   `json:"date"`
	Items       []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem is one line of an order. Description must match the title of an
// existing menu item at order time; the repository resolves it to MenuID.
type OrderItem struct {
	ID          uint    `json:"-" gorm:"primaryKey"`
	OrderID     uint    `json:"-" gorm:"index"`
	MenuID      uint    `json:"menuId"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price"`
}

// AuthToken records the signature segment of an issued bearer token. A user is
// logged in exactly while a row with their token's signature exists.
type AuthToken struct {
	ID        uint   `json:"-" gorm:"primaryKey"`
	UserID    uint   `json:"userId" gorm:"index"`
	Signature string `json:"-" gorm:"uniqueIndex;type:varchar(512)"`
}
