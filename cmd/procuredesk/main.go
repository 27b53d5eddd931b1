package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/Strob0t/ProcureDesk/internal/adapter/email"
	pdhttp "github.com/Strob0t/ProcureDesk/internal/adapter/http"
	"github.com/Strob0t/ProcureDesk/internal/adapter/otel"
	"github.com/Strob0t/ProcureDesk/internal/adapter/postgres"
	pdredis "github.com/Strob0t/ProcureDesk/internal/adapter/redis"
	"github.com/Strob0t/ProcureDesk/internal/adapter/ristretto"
	"github.com/Strob0t/ProcureDesk/internal/config"
	"github.com/Strob0t/ProcureDesk/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Logging.Level),
	})).With("service", cfg.Logging.Service)
	slog.SetDefault(logger)

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"pg_max_conns", cfg.Postgres.MaxConns,
	)

	ctx := context.Background()

	// --- Infrastructure ---

	// PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	// Run migrations
	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	// Redis (one-time passcodes)
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("redis url: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() { _ = redisClient.Close() }()
	slog.Info("redis connected")

	// In-process catalog cache
	catalogCache, err := ristretto.New(cfg.Cache.MaxSizeMB*1024*1024, cfg.Cache.ProductTTL)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer catalogCache.Close()

	// Observability
	shutdownTracer := otel.InitTracer(cfg.Logging.Service)
	defer func() { _ = shutdownTracer(ctx) }()

	metrics, err := otel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	mail := email.NewMailer(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		From:     cfg.SMTP.From,
		Password: cfg.SMTP.Password,
	})

	// --- Services ---
	store := postgres.NewStore(pool)
	otpStore := pdredis.NewOTPStore(redisClient)

	authSvc := service.NewAuthService(store, otpStore, mail, metrics, &cfg.Auth)
	staffSvc := service.NewStaffService(store, &cfg.Auth)
	tenantSvc := service.NewTenantService(store)
	catalogSvc := service.NewCatalogService(store, catalogCache)
	cartSvc := service.NewCartService(store)
	checkoutSvc := service.NewCheckoutService(store, metrics)
	orderSvc := service.NewOrderService(store)
	creditSvc := service.NewCreditService(store, metrics)
	supportSvc := service.NewSupportService(store)
	homepageSvc := service.NewHomepageService(store)

	// --- HTTP ---
	handlers := pdhttp.NewHandlers(
		authSvc, staffSvc, tenantSvc, catalogSvc, cartSvc,
		checkoutSvc, orderSvc, creditSvc, supportSvc, homepageSvc,
	)

	r := chi.NewRouter()

	r.Use(pdhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(pdhttp.SecurityHeaders)
	r.Use(chimw.RequestID)
	r.Use(pdhttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(otel.HTTPMiddleware("procuredesk-core"))

	pdhttp.MountRoutes(r, handlers, authSvc, staffSvc)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
