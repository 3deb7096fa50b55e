package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"pizzeria/internal/models"
	"pizzeria/internal/services"
)

// OrderHandler handles HTTP requests for diner orders.
type OrderHandler struct {
	orderService *services.OrderService
	validate     *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the order routes; all require authentication.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Post("/", h.HandleCreateOrder)
}

// HandleGetOrders returns one page of the diner's order history.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	diner := currentUser(c)
	page := c.QueryInt("page", 0)

	orders, err := h.orderService.ListForDiner(diner, page)
	if err != nil {
		logrus.Errorf("error listing orders for diner %d: %v", diner.ID, err)
		return respondError(c, "Could not retrieve orders", err)
	}
	return c.JSON(fiber.Map{
		"dinerId": diner.ID,
		"orders":  orders,
		"page":    page,
	})
}

// CreateOrderRequest represents the request body for placing an order.
type CreateOrderRequest struct {
	FranchiseID uint               `json:"franchiseId" validate:"required"`
	StoreID     uint               `json:"storeId" validate:"required"`
	Items       []models.OrderItem `json:"items" validate:"required,min=1,dive"`
}

// HandleCreateOrder places an order for the authenticated diner and relays
// the factory's report URL and token.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	diner := currentUser(c)
	order := &models.DinerOrder{
		FranchiseID: req.FranchiseID,
		StoreID:     req.StoreID,
		Items:       req.Items,
	}

	created, fulfillment, err := h.orderService.Create(diner, order)
	if err != nil {
		logrus.Errorf("error creating order for diner %d: %v", diner.ID, err)
		return respondError(c, "Could not create order", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order":     created,
		"reportUrl": fulfillment.ReportURL,
		"jwt":       fulfillment.JWT,
	})
}
