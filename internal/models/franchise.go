package models

// Franchise groups stores under a name and a set of administering users.
// Admins and Stores are not columns; the repository hydrates them from the
// role and store tables.
type Franchise struct {
	ID     uint    `json:"id" gorm:"primaryKey"`
	Name   string  `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Admins []User  `json:"admins,omitempty" gorm:"-"`
	Stores []Store `json:"stores,omitempty" gorm:"-"`
}

// Store is a single outlet of a franchise. TotalRevenue is computed from the
// order items placed against the store, not stored.
type Store struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	FranchiseID  uint    `json:"franchiseId" gorm:"index"`
	Name         string  `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	TotalRevenue float64 `json:"totalRevenue" gorm:"-"`
}
