package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/ledger_core/internal/audit"
	"github.com/SscSPs/ledger_core/internal/cache"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/handlers"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_core/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Ledger Core API
// @version 1.0
// @description Double-entry ledger: chart of accounts, journal entries and financial reports.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)

	var sink portssvc.AuditSink = audit.NewChainSink(repos.AuditStore)
	if len(cfg.KafkaBrokers) > 0 {
		writer := audit.NewKafkaWriter(cfg.KafkaBrokers, cfg.AuditTopic)
		defer func() {
			if cerr := writer.Close(); cerr != nil {
				logger.Error("Error closing audit writer", slog.String("error", cerr.Error()))
			}
		}()
		sink = audit.MultiSink{sink, audit.NewKafkaSink(writer)}
		logger.Info("Publishing audit events", slog.String("topic", cfg.AuditTopic))
	}

	collab := services.Collaborators{
		PeriodLock: pgsql.NewPeriodLock(dbPool),
		Stations:   pgsql.NewStationDirectory(dbPool),
		AuditSink:  sink,
	}

	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to configure redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			// The ledger still works without the cache; balances are read from the database.
			logger.Warn("Redis unreachable, balance cache disabled", slog.String("error", err.Error()))
		} else {
			collab.BalanceCache = cache.NewRedisBalanceCache(client, cfg.BalanceCacheTTL)
			logger.Info("Balance cache enabled", slog.Duration("ttl", cfg.BalanceCacheTTL))
		}
	}

	serviceContainer := services.NewServiceContainer(repos, collab)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var extra []gin.HandlerFunc
	if cfg.RateLimit != "" {
		limiterInstance, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
			os.Exit(1)
		}
		extra = append(extra, middleware.RateLimit(limiterInstance))
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, extra...)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to start", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
