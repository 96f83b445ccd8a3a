package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/cashbook_app/internal/adapters/amqp"
	"github.com/SscSPs/cashbook_app/internal/cache"
	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
	"github.com/SscSPs/cashbook_app/internal/core/services"
	"github.com/SscSPs/cashbook_app/internal/handlers"
	"github.com/SscSPs/cashbook_app/internal/middleware"
	"github.com/SscSPs/cashbook_app/internal/platform/config"
	"github.com/SscSPs/cashbook_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/cashbook_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/cashbook_app/internal/repositories/memory"
	"github.com/SscSPs/cashbook_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// @title Cashbook API
// @version 1.0
// @description Business cashbook: customers, suppliers, IN/OUT transactions and monthly analytics.

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := repos.Close(context.Background()); err != nil {
			logger.Error("Error closing store", slog.String("error", err.Error()))
		}
	}()

	var options []services.ContainerOption
	var analyticsCache *cache.MonthlyAnalytics
	var consumer *amqp.Client
	if cfg.CacheEnabled() {
		analyticsCache = cache.NewMonthlyAnalytics(cfg.AnalyticsCacheSize, cfg.AnalyticsCacheTTL)
		options = append(options, services.WithAnalyticsCache(analyticsCache))
		logger.Info("Analytics cache enabled",
			slog.Int("size", cfg.AnalyticsCacheSize),
			slog.Duration("ttl", cfg.AnalyticsCacheTTL))
	}

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			logger.Error("Failed to connect to AMQP broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer client.Close()
		options = append(options, services.WithEventPublisher(client))

		// Other replicas publish to the same exchange; their writes must evict our cache too.
		if analyticsCache != nil {
			consumer = client
		}
	}

	serviceContainer := services.NewServiceContainer(repos, options...)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(sigCtx)

	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	})

	if consumer != nil {
		g.Go(func() error {
			err := consumer.ConsumeLedgerEvents(gctx, amqp.InvalidateCache(analyticsCache))
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("ledger event consumer stopped: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

// openStore builds the LedgerStore selected by STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		if cfg.EnableDBCheck {
			logger.Info("Running database migrations...")
			changed, err := pgsql.RunMigrations(cfg.DatabaseURL)
			if err != nil {
				return portsrepo.RepositoryProvider{}, err
			}
			if changed {
				logger.Info("Database migrations applied successfully.")
			} else {
				logger.Info("No new migrations to apply.")
			}
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		return pgsql.NewRepositoryProvider(pool), nil

	case config.DriverSQLite:
		logger.Info("Opening SQLite database", slog.String("path", cfg.SQLitePath))
		return sqlite.NewRepositoryProvider(ctx, cfg.SQLitePath)

	case config.DriverMemory:
		logger.Warn("Using in-memory store; data is lost on restart")
		return portsrepo.RepositoryProvider{
			Ledger: memory.NewStore(),
			Close:  func(context.Context) error { return nil },
		}, nil
	}
	return portsrepo.RepositoryProvider{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
