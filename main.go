package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pizzeria/internal/config"
	"pizzeria/internal/handlers"
	"pizzeria/internal/middleware"
	"pizzeria/internal/models"
	"pizzeria/internal/repositories"
	"pizzeria/internal/services"
	"pizzeria/pkg/factory"
	"pizzeria/pkg/rabbitmq"
)

// NewApp builds the fully wired Fiber application: database, broker, factory
// client, repositories, services, handlers and routes.
func NewApp(cfg *config.Config) (*fiber.App, error) {
	db, err := setupDatabase(cfg)
	if err != nil {
		return nil, err
	}

	// The broker is best effort: order events are skipped when it is down.
	var mqClient *rabbitmq.Client
	mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		logrus.Warnf("RabbitMQ unavailable, order events disabled: %v", err)
		mqClient = nil
	}

	factoryClient := factory.NewClient(factory.Config{
		URL:    cfg.FactoryURL,
		APIKey: cfg.FactoryAPIKey,
	})

	userRepo := repositories.NewGORMUserRepository(db)
	authRepo := repositories.NewGORMAuthRepository(db)
	menuRepo := repositories.NewGORMMenuRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	franchiseRepo := repositories.NewGORMFranchiseRepository(db)

	authService := services.NewAuthService(userRepo, authRepo, cfg.JWTSecret)
	userService := services.NewUserService(userRepo)
	menuService := services.NewMenuService(menuRepo)
	orderService := services.NewOrderService(orderRepo, factoryClient, mqClient)
	franchiseService := services.NewFranchiseService(franchiseRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	menuHandler := handlers.NewMenuHandler(menuService)
	orderHandler := handlers.NewOrderHandler(orderService)
	franchiseHandler := handlers.NewFranchiseHandler(franchiseService)

	app := fiber.New()
	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	apiV1 := app.Group("/api/v1")

	authRequired := middleware.AuthRequired(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	// Public surface: registration, login, the menu and the franchise list.
	authHandler.RegisterRoutes(apiV1, authRequired)
	menuHandler.RegisterPublicRoutes(apiV1)
	franchiseHandler.RegisterPublicRoutes(apiV1, optionalAuth)

	// Everything else needs a logged-in token.
	protected := apiV1.Group("", authRequired)
	userHandler.RegisterRoutes(protected)
	menuHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	franchiseHandler.RegisterRoutes(protected)

	return app, nil
}

// setupDatabase opens the connection, migrates the schema idempotently and
// seeds the default admin when the user table is empty.
func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.AuthToken{},
		&models.Menu{},
		&models.Franchise{},
		&models.Store{},
		&models.DinerOrder{},
		&models.OrderItem{},
	)
	if err != nil {
		return nil, err
	}

	if err := seedAdmin(db, cfg); err != nil {
		return nil, err
	}
	return db, nil
}

// seedAdmin inserts the bootstrap admin account on a fresh database.
func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{Name: "Admin", Email: cfg.AdminEmail, Password: string(hashed)}
	userRepo := repositories.NewGORMUserRepository(db)
	if err := userRepo.Create(&admin, []models.RoleAssignment{{Role: models.RoleAdmin}}); err != nil {
		return err
	}
	logrus.Infof("seeded admin user %s", cfg.AdminEmail)
	return nil
}

func setupLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func main() {
	cfg := config.Load()
	setupLogging(cfg)

	app, err := NewApp(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Infof("Starting server on %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	logrus.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		logrus.Errorf("Error during shutdown: %v", err)
	}
	logrus.Info("Server gracefully stopped")
}
