package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"pizzeria/internal/middleware"
	"pizzeria/internal/models"
	"pizzeria/internal/services"
)

// MenuHandler handles HTTP requests for the menu.
type MenuHandler struct {
	menuService *services.MenuService
	validate    *validator.Validate
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(menuService *services.MenuService) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
		validate:    validator.New(),
	}
}

// RegisterPublicRoutes registers the open menu read endpoint.
func (h *MenuHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/menu", h.HandleGetMenu)
}

// RegisterRoutes registers the authenticated menu endpoints.
func (h *MenuHandler) RegisterRoutes(router fiber.Router) {
	router.Put("/menu", middleware.AdminRequired(), h.HandleAddItem)
}

// HandleGetMenu returns the full menu.
func (h *MenuHandler) HandleGetMenu(c *fiber.Ctx) error {
	menu, err := h.menuService.GetMenu()
	if err != nil {
		logrus.Errorf("error getting menu: %v", err)
		return respondError(c, "Could not retrieve menu", err)
	}
	return c.JSON(menu)
}

// HandleAddItem adds a menu item and returns the updated menu.
func (h *MenuHandler) HandleAddItem(c *fiber.Ctx) error {
	var item models.Menu
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(item); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.menuService.AddItem(currentUser(c), &item); err != nil {
		logrus.Errorf("error adding menu item %q: %v", item.Title, err)
		return respondError(c, "Could not add menu item", err)
	}

	menu, err := h.menuService.GetMenu()
	if err != nil {
		logrus.Errorf("error reloading menu: %v", err)
		return respondError(c, "Could not retrieve menu", err)
	}
	return c.Status(fiber.StatusCreated).JSON(menu)
}
