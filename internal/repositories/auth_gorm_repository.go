package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"pizzeria/internal/models"
)

// GORMAuthRepository is a GORM implementation of AuthRepository.
type GORMAuthRepository struct {
	db *gorm.DB
}

// NewGORMAuthRepository creates a new instance of GORMAuthRepository.
func NewGORMAuthRepository(db *gorm.DB) *GORMAuthRepository {
	return &GORMAuthRepository{db: db}
}

// CreateToken records a token signature for a user. Each login inserts
// independently, so a user can hold several live tokens at once.
func (r *GORMAuthRepository) CreateToken(userID uint, signature string) error {
	token := models.AuthToken{UserID: userID, Signature: signature}
	if err := r.db.Create(&token).Error; err != nil {
		return fmt.Errorf("failed to create auth token for user %d: %w", userID, err)
	}
	return nil
}

// DeleteToken removes the row for a signature. Deleting an unknown signature
// is not an error; logout is idempotent.
func (r *GORMAuthRepository) DeleteToken(signature string) error {
	if err := r.db.Where("signature = ?", signature).Delete(&models.AuthToken{}).Error; err != nil {
		return fmt.Errorf("failed to delete auth token: %w", err)
	}
	return nil
}

// TokenExists reports whether a signature is currently logged in. The empty
// signature produced by malformed tokens never matches a stored row.
func (r *GORMAuthRepository) TokenExists(signature string) (bool, error) {
	if signature == "" {
		return false, nil
	}
	var count int64
	if err := r.db.Model(&models.AuthToken{}).Where("signature = ?", signature).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up auth token: %w", err)
	}
	return count > 0, nil
}
