package models

// Menu is a single item on the pizza menu.
type Menu struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Image       string  `json:"image" validate:"omitempty,max=255"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}
