package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/backlogrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/staffrepo"
	"fulfillment/internal/cache"
	"fulfillment/internal/notifications"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	broker, err := notifications.NewBroker(configs.NotificationsDriver, configs.RedisAddr, logger)
	if err != nil {
		log.Fatalf("Failed to create notification broker: %v", err)
	}
	defer broker.Close()

	store, err := cache.NewStore(configs.CacheDriver, configs.RedisAddr, time.Minute, logger)
	if err != nil {
		log.Fatalf("Failed to create cache store: %v", err)
	}
	defer store.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, broker, store, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:              envOr("HTTP_PORT", "8080"),
		DBHost:                envOr("DB_HOST", "localhost"),
		DBPort:                envOr("DB_PORT", "5432"),
		DBUser:                envOr("DB_USER", "postgres"),
		DBPassword:            envOr("DB_PASSWORD", "postgres"),
		DBName:                envOr("DB_NAME", "fulfillment"),
		DBSslMode:             envOr("DB_SSLMODE", "disable"),
		TaxRate:               envFloat("TAX_RATE", 0.18),
		NotificationsDriver:   envOr("NOTIFICATIONS_DRIVER", "memory"),
		CacheDriver:           envOr("CACHE_DRIVER", "noop"),
		RedisAddr:             envOr("REDIS_ADDR", "localhost:6379"),
		SequenceRetentionDays: envInt("SEQUENCE_RETENTION_DAYS", 7),
		PaymentTimeout:        envDuration("PAYMENT_TIMEOUT", 30*time.Second),
		PaymentLatency:        envDuration("PAYMENT_LATENCY", 2*time.Second),
	}
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.StatusLogDTO{},
		&staffrepo.StaffDTO{},
		&backlogrepo.EntryDTO{},
		&postgres.SequenceDTO{},
	)
	if err != nil {
		return nil, err
	}

	return gormDB, nil
}

func startWebServer(app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	app.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Web server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return parsed
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return parsed
}
