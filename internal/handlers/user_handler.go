package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"pizzeria/internal/middleware"
	"pizzeria/internal/services"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes; every route requires
// authentication, listing additionally requires admin.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/me", h.HandleMe)
	userRoutes.Get("/", middleware.AdminRequired(), h.HandleList)
	userRoutes.Put("/:id", h.HandleUpdate)
}

// HandleMe returns the authenticated user.
func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// HandleList pages through users, filtered by name. Query parameters: page,
// limit, name (supporting the `*` wildcard).
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	limit := c.QueryInt("limit", 10)
	name := c.Query("name", "*")

	users, more, err := h.userService.List(currentUser(c), page, limit, name)
	if err != nil {
		logrus.Errorf("error listing users: %v", err)
		return respondError(c, "Could not list users", err)
	}
	return c.JSON(fiber.Map{
		"users": users,
		"more":  more,
		"page":  page,
	})
}

// UpdateUserRequest represents the request body for a profile update. Empty
// fields are left untouched.
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// HandleUpdate applies a partial update to a user. Allowed for the user
// themselves or an admin.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user id",
		})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user, err := h.userService.Update(currentUser(c), uint(id), req.Name, req.Email, req.Password)
	if err != nil {
		logrus.Errorf("error updating user %d: %v", id, err)
		return respondError(c, "Could not update user", err)
	}
	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}
