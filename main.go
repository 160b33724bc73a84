package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/fadhlanhapp/umrah-backoffice/config"
	"github.com/fadhlanhapp/umrah-backoffice/handlers"
	"github.com/fadhlanhapp/umrah-backoffice/repository"
	"github.com/fadhlanhapp/umrah-backoffice/routes"
	"github.com/fadhlanhapp/umrah-backoffice/services"
	"github.com/fadhlanhapp/umrah-backoffice/utils"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to an optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.Logger.Fatalf("Failed to load configuration: %v", err)
	}
	utils.InitLogger(cfg.Log.Level, cfg.Log.Format)

	// Initialize New Relic
	var app *newrelic.Application
	if cfg.NewRelic.License != "" {
		app, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.License),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			utils.Logger.WithError(err).Warn("Failed to initialize New Relic")
		}
	}

	// Initialize database
	db, err := repository.InitDB(cfg.DatabaseConnectionString())
	if err != nil {
		utils.Logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer repository.CloseDB(db)

	if err := repository.EnsureSchema(db); err != nil {
		utils.Logger.Fatalf("Failed to prepare database schema: %v", err)
	}

	// Initialize services
	handlerServices := newHandlerServices(cfg, db)

	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	// Set up Gin router
	router := gin.Default()

	// Add New Relic middleware
	if app != nil {
		router.Use(nrgin.Middleware(app))
	}

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-WP-Nonce"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: !containsWildcard(cfg.Server.AllowOrigins),
		MaxAge:           12 * time.Hour,
	}))

	// Set up routes
	routes.SetupRoutes(router, handlers.NewHandlers(handlerServices))

	// Start server
	utils.Logger.Infof("Server starting on %s...", cfg.ServerAddress())
	if err := router.Run(cfg.ServerAddress()); err != nil {
		utils.Logger.Fatalf("Failed to start server: %v", err)
	}
}

// newHandlerServices wires repositories and services from the configuration
func newHandlerServices(cfg *config.Config, db *sql.DB) *handlers.HandlerServices {
	ledgerService := services.NewLedgerService(repository.NewFinanceRepository(db))

	return &handlers.HandlerServices{
		LedgerService:  ledgerService,
		ExcelService:   services.NewExcelService(ledgerService),
		PaymentService: services.NewPaymentService(repository.NewPaymentRepository(db), services.NewPaymentLedger()),
		RoomingService: services.NewRoomingService(
			repository.NewRoomingRepository(db),
			services.NewRoomAllocator(),
			newRoomLocker(cfg),
		),
	}
}

// newRoomLocker shares room locks through Redis when configured and reachable
func newRoomLocker(cfg *config.Config) services.RoomLocker {
	if cfg.Redis.Addr == "" {
		return services.NewMemoryRoomLocker()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		utils.Logger.WithError(err).Warn("Redis unavailable, room locks stay in process")
		client.Close()
		return services.NewMemoryRoomLocker()
	}

	utils.Logger.Info("Redis connection established for room locks")
	return services.NewRedisRoomLocker(client, cfg.RoomLockTTL())
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
