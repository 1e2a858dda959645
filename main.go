package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storemanager/internal/handlers"
	"storemanager/internal/middleware"
	"storemanager/internal/models"
	"storemanager/internal/repositories"
	"storemanager/internal/services"
	"storemanager/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":3000")
	viper.SetDefault("DATABASE_DRIVER", "sqlite") // sqlite | postgres | memory
	viper.SetDefault("DATABASE_DSN", "store_manager.db")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables messaging
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("AUTH_ENABLED", false)
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Repositories ---
	productRepo, saleRepo, userRepo, err := buildRepositories(
		viper.GetString("DATABASE_DRIVER"),
		viper.GetString("DATABASE_DSN"),
	)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var events services.EventPublisher
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient
	}

	// --- Services ---
	productService := services.NewProductService(productRepo)
	saleService := services.NewSaleService(saleRepo, productService, events)
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	saleHandler := handlers.NewSaleHandler(saleService)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Fiber app ---
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})
	app.Use(logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	authHandler.RegisterRoutes(app)

	// Product and sale routes are open unless AUTH_ENABLED asks for JWTs.
	entityRoutes := fiber.Router(app)
	if viper.GetBool("AUTH_ENABLED") {
		entityRoutes = app.Group("", middleware.AuthRequired(authService))
	}
	productHandler.RegisterRoutes(entityRoutes)
	saleHandler.RegisterRoutes(entityRoutes)

	// --- Sale-events consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for sale events...")
			err := mqClient.ConsumeSaleEvents(func(msg amqp.Delivery) error {
				log.Printf("Sale event %s: %s", msg.Type, string(msg.Body))
				return nil
			})
			if err != nil {
				log.Printf("Sale-events consumer stopped: %v", err)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// buildRepositories wires the store adapters for the configured driver.
// "memory" runs without a database; sqlite and postgres go through GORM.
func buildRepositories(driver, dsn string) (repositories.ProductRepository, repositories.SaleRepository, repositories.UserRepository, error) {
	if driver == "memory" {
		return repositories.NewMemoryProductRepository(),
			repositories.NewMemorySaleRepository(),
			repositories.NewMemoryUserRepository(),
			nil
	}

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, nil, nil, fmt.Errorf("unknown DATABASE_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Sale{}, &models.User{}); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repositories.NewGORMProductRepository(db),
		repositories.NewGORMSaleRepository(db),
		repositories.NewGORMUserRepository(db),
		nil
}
