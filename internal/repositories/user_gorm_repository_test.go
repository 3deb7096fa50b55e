package repositories_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/models"
	"pizzeria/internal/repositories"
)

func TestGORMUserRepository_Create(t *testing.T) {
	t.Run("defaults to a single diner role", func(t *testing.T) {
		db := setupTestDB(t)
		repo := repositories.NewGORMUserRepository(db)

		user := &models.User{Name: "pizza diner", Email: "d@jwt.com", Password: "hashed"}
		require.NoError(t, repo.Create(user, nil))

		assert.NotZero(t, user.ID)
		assert.Empty(t, user.Password)
		require.Len(t, user.Roles, 1)
		assert.Equal(t, models.RoleDiner, user.Roles[0].Role)
		assert.Equal(t, int64(1), countRows(t, db, &models.UserRole{}))
	})

	t.Run("resolves a franchisee assignment by franchise name", func(t *testing.T) {
		db := setupTestDB(t)
		repo := repositories.NewGORMUserRepository(db)
		require.NoError(t, db.Create(&models.Franchise{Name: "pizzaPocket"}).Error)

		user := &models.User{Name: "frank", Email: "f@jwt.com", Password: "hashed"}
		err := repo.Create(user, []models.RoleAssignment{
			{Role: models.RoleFranchisee, Object: "pizzaPocket"},
		})
		require.NoError(t, err)

		require.Len(t, user.Roles, 1)
		assert.Equal(t, models.RoleFranchisee, user.Roles[0].Role)
		assert.NotZero(t, user.Roles[0].ObjectID)
	})

	t.Run("rolls everything back on an unknown franchise", func(t *testing.T) {
		db := setupTestDB(t)
		repo := repositories.NewGORMUserRepository(db)

		user := &models.User{Name: "frank", Email: "f@jwt.com", Password: "hashed"}
		err := repo.Create(user, []models.RoleAssignment{
			{Role: models.RoleFranchisee, Object: "no such franchise"},
		})
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Equal(t, int64(0), countRows(t, db, &models.User{}))
		assert.Equal(t, int64(0), countRows(t, db, &models.UserRole{}))
	})
}

func TestGORMUserRepository_GetByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMUserRepository(db)
	seedUser(t, db, "pizza diner", "d@jwt.com")

	user, err := repo.GetByEmail("d@jwt.com")
	require.NoError(t, err)
	assert.Equal(t, "pizza diner", user.Name)
	assert.Equal(t, "hashed-secret", user.Password, "hash must stay for the credential check")
	assert.Len(t, user.Roles, 1)

	_, err = repo.GetByEmail("nobody@jwt.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGORMUserRepository_Update(t *testing.T) {
	t.Run("applies only the supplied fields", func(t *testing.T) {
		db := setupTestDB(t)
		repo := repositories.NewGORMUserRepository(db)
		seeded := seedUser(t, db, "pizza diner", "d@jwt.com")

		updated, err := repo.Update(seeded.ID, "hungry diner", "", "")
		require.NoError(t, err)
		assert.Equal(t, "hungry diner", updated.Name)
		assert.Equal(t, "d@jwt.com", updated.Email)
		assert.Empty(t, updated.Password)

		stored, err := repo.GetByEmail("d@jwt.com")
		require.NoError(t, err)
		assert.Equal(t, "hashed-secret", stored.Password, "password untouched when not supplied")
	})

	t.Run("reports a missing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := repositories.NewGORMUserRepository(db)

		_, err := repo.Update(99, "ghost", "", "")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestGORMUserRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMUserRepository(db)
	for i := 1; i <= 6; i++ {
		seedUser(t, db, fmt.Sprintf("diner %d", i), fmt.Sprintf("d%d@jwt.com", i))
	}

	t.Run("fetches one extra row to detect a next page", func(t *testing.T) {
		users, more, err := repo.List(0, 5, "*")
		require.NoError(t, err)
		assert.Len(t, users, 5)
		assert.True(t, more)
		for _, user := range users {
			assert.Empty(t, user.Password)
		}

		users, more, err = repo.List(1, 5, "*")
		require.NoError(t, err)
		assert.Len(t, users, 1)
		assert.False(t, more)
	})

	t.Run("maps the star wildcard to a LIKE pattern", func(t *testing.T) {
		users, more, err := repo.List(0, 10, "*3")
		require.NoError(t, err)
		assert.False(t, more)
		require.Len(t, users, 1)
		assert.Equal(t, "diner 3", users[0].Name)
	})

	t.Run("an empty filter matches everyone", func(t *testing.T) {
		users, _, err := repo.List(0, 10, "")
		require.NoError(t, err)
		assert.Len(t, users, 6)
	})
}
