package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pizzeria/internal/models"
	"pizzeria/internal/repositories"
)

// setupTestDB opens a private in-memory SQLite database for one test and
// migrates the full schema into it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.AuthToken{},
		&models.Menu{},
		&models.Franchise{},
		&models.Store{},
		&models.DinerOrder{},
		&models.OrderItem{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string, roles ...models.RoleAssignment) *models.User {
	t.Helper()

	user := &models.User{Name: name, Email: email, Password: "hashed-secret"}
	require.NoError(t, repositories.NewGORMUserRepository(db).Create(user, roles))
	return user
}

func seedMenu(t *testing.T, db *gorm.DB, title string, price float64) *models.Menu {
	t.Helper()

	item := &models.Menu{Title: title, Description: title + " pizza", Image: "pizza.png", Price: price}
	require.NoError(t, repositories.NewGORMMenuRepository(db).Create(item))
	return item
}

func seedFranchise(t *testing.T, db *gorm.DB, name string, adminEmails ...string) *models.Franchise {
	t.Helper()

	franchise := &models.Franchise{Name: name}
	for _, email := range adminEmails {
		franchise.Admins = append(franchise.Admins, models.User{Email: email})
	}
	require.NoError(t, repositories.NewGORMFranchiseRepository(db).Create(franchise))
	return franchise
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
