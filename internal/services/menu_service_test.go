package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pizzeria/internal/models"
	"pizzeria/internal/services"
)

// MockMenuRepository is a mock implementation of repositories.MenuRepository.
type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) GetAll() ([]models.Menu, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Menu), args.Error(1)
}

func (m *MockMenuRepository) Create(item *models.Menu) error {
	args := m.Called(item)
	return args.Error(0)
}

func TestMenuService_GetMenu(t *testing.T) {
	expected := []models.Menu{{ID: 1, Title: "Veggie", Price: 0.05}}
	mockMenu := new(MockMenuRepository)
	mockMenu.On("GetAll").Return(expected, nil).Once()

	menuService := services.NewMenuService(mockMenu)
	menu, err := menuService.GetMenu()
	assert.NoError(t, err)
	assert.Equal(t, expected, menu)
	mockMenu.AssertExpectations(t)
}

func TestMenuService_AddItem(t *testing.T) {
	t.Run("admins add items", func(t *testing.T) {
		mockMenu := new(MockMenuRepository)
		mockMenu.On("Create", mock.AnythingOfType("*models.Menu")).Return(nil).Once()

		menuService := services.NewMenuService(mockMenu)
		err := menuService.AddItem(adminUser(), &models.Menu{Title: "Veggie", Price: 0.05})
		assert.NoError(t, err)
		mockMenu.AssertExpectations(t)
	})

	t.Run("diners are rejected", func(t *testing.T) {
		mockMenu := new(MockMenuRepository)

		menuService := services.NewMenuService(mockMenu)
		err := menuService.AddItem(dinerUser(5), &models.Menu{Title: "Veggie", Price: 0.05})
		assert.ErrorIs(t, err, models.ErrForbidden)
		mockMenu.AssertNotCalled(t, "Create", mock.Anything)
	})
}
