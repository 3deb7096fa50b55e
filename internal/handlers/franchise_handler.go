package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"pizzeria/internal/middleware"
	"pizzeria/internal/models"
	"pizzeria/internal/services"
)

// FranchiseHandler handles HTTP requests for franchises and stores.
type FranchiseHandler struct {
	franchiseService *services.FranchiseService
	validate         *validator.Validate
}

// NewFranchiseHandler creates a new FranchiseHandler.
func NewFranchiseHandler(franchiseService *services.FranchiseService) *FranchiseHandler {
	return &FranchiseHandler{
		franchiseService: franchiseService,
		validate:         validator.New(),
	}
}

// RegisterPublicRoutes registers the franchise listing, which answers without
// a token but hydrates full detail for admins.
func (h *FranchiseHandler) RegisterPublicRoutes(router fiber.Router, optionalAuth fiber.Handler) {
	router.Get("/franchises", optionalAuth, h.HandleList)
}

// RegisterRoutes registers the authenticated franchise and store routes.
func (h *FranchiseHandler) RegisterRoutes(router fiber.Router) {
	franchiseRoutes := router.Group("/franchises")
	franchiseRoutes.Get("/user/:userId", h.HandleListForUser)
	franchiseRoutes.Post("/", middleware.AdminRequired(), h.HandleCreate)
	franchiseRoutes.Delete("/:id", middleware.AdminRequired(), h.HandleDelete)
	franchiseRoutes.Post("/:id/stores", h.HandleCreateStore)
	franchiseRoutes.Delete("/:id/stores/:storeId", h.HandleDeleteStore)
}

// HandleList pages through franchises. Query parameters: page, limit, name.
func (h *FranchiseHandler) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	limit := c.QueryInt("limit", 10)
	name := c.Query("name", "*")

	franchises, more, err := h.franchiseService.List(currentUser(c), page, limit, name)
	if err != nil {
		logrus.Errorf("error listing franchises: %v", err)
		return respondError(c, "Could not list franchises", err)
	}
	return c.JSON(fiber.Map{
		"franchises": franchises,
		"more":       more,
		"page":       page,
	})
}

// HandleListForUser returns the franchises a user administers.
func (h *FranchiseHandler) HandleListForUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user id",
		})
	}

	franchises, err := h.franchiseService.ListForUser(currentUser(c), uint(userID))
	if err != nil {
		logrus.Errorf("error listing franchises for user %d: %v", userID, err)
		return respondError(c, "Could not list franchises", err)
	}
	return c.JSON(franchises)
}

// CreateFranchiseRequest represents the request body for franchise creation.
// Admins are referenced by email and must already be registered.
type CreateFranchiseRequest struct {
	Name   string   `json:"name" validate:"required,min=2,max=100"`
	Admins []string `json:"admins" validate:"omitempty,dive,email"`
}

// HandleCreate creates a franchise with its admins.
func (h *FranchiseHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateFranchiseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	franchise := &models.Franchise{Name: req.Name}
	for _, email := range req.Admins {
		franchise.Admins = append(franchise.Admins, models.User{Email: email})
	}

	if err := h.franchiseService.Create(currentUser(c), franchise); err != nil {
		logrus.Errorf("error creating franchise %q: %v", req.Name, err)
		return respondError(c, "Could not create franchise", err)
	}
	return c.Status(fiber.StatusCreated).JSON(franchise)
}

// HandleDelete removes a franchise and everything under it.
func (h *FranchiseHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid franchise id",
		})
	}

	if err := h.franchiseService.Delete(currentUser(c), uint(id)); err != nil {
		logrus.Errorf("error deleting franchise %d: %v", id, err)
		return respondError(c, "Could not delete franchise", err)
	}
	return c.JSON(fiber.Map{
		"message": "Franchise deleted",
	})
}

// HandleCreateStore adds a store to a franchise.
func (h *FranchiseHandler) HandleCreateStore(c *fiber.Ctx) error {
	franchiseID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid franchise id",
		})
	}

	var store models.Store
	if err := c.BodyParser(&store); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(store); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.franchiseService.CreateStore(currentUser(c), uint(franchiseID), &store); err != nil {
		logrus.Errorf("error creating store in franchise %d: %v", franchiseID, err)
		return respondError(c, "Could not create store", err)
	}
	return c.Status(fiber.StatusCreated).JSON(store)
}

// HandleDeleteStore removes a store from a franchise.
func (h *FranchiseHandler) HandleDeleteStore(c *fiber.Ctx) error {
	franchiseID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid franchise id",
		})
	}
	storeID, err := strconv.ParseUint(c.Params("storeId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid store id",
		})
	}

	if err := h.franchiseService.DeleteStore(currentUser(c), uint(franchiseID), uint(storeID)); err != nil {
		logrus.Errorf("error deleting store %d from franchise %d: %v", storeID, franchiseID, err)
		return respondError(c, "Could not delete store", err)
	}
	return c.JSON(fiber.Map{
		"message": "Store deleted",
	})
}
