package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/vtuboss/vtuboss-api/internal/config"
	"github.com/vtuboss/vtuboss-api/internal/domain/catalog"
	"github.com/vtuboss/vtuboss-api/internal/domain/provider"
	"github.com/vtuboss/vtuboss-api/internal/domain/purchase"
	"github.com/vtuboss/vtuboss-api/internal/domain/user"
	"github.com/vtuboss/vtuboss-api/internal/domain/wallet"
	"github.com/vtuboss/vtuboss-api/internal/middleware"
	"github.com/vtuboss/vtuboss-api/internal/pkg/billing"
	"github.com/vtuboss/vtuboss-api/internal/pkg/database"
	"github.com/vtuboss/vtuboss-api/internal/pkg/jwt"
	"github.com/vtuboss/vtuboss-api/internal/pkg/logger"
	"github.com/vtuboss/vtuboss-api/internal/pkg/metrics"
	"github.com/vtuboss/vtuboss-api/internal/pkg/response"
	"github.com/vtuboss/vtuboss-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})
	metrics.Init()

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting VTU Boss API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	walletRepo := wallet.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	providerRepo := provider.NewRepository(db)
	ledger := purchase.NewLedger(db)

	// ---------- Services ----------
	userService := user.NewService(userRepo, jwtService)
	walletService := wallet.NewService(walletRepo)
	catalogService := catalog.NewCatalog(catalogRepo, redisClient)

	billingClient := billing.NewClient(cfg.ProviderTimeout)
	purchaseService := purchase.NewService(
		userRepo,
		catalogService,
		providerRepo,
		ledger,
		purchase.NewFulfillers(billingClient),
	)

	// ---------- Reconciler ----------
	var archive *storage.R2Archive
	if cfg.ArchiveConfigured() {
		archive, err = storage.NewR2Archive(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create R2 archive")
		}
	}
	reconciler := purchase.NewReconciler(ledger, archive, cfg.ReconcileInterval, cfg.PendingDeadline)
	reconciler.Start()
	defer reconciler.Stop()

	// ---------- Handlers ----------
	userHandler := user.NewHandler(userService)
	walletHandler := wallet.NewHandler(walletService)
	catalogHandler := catalog.NewHandler(catalogService)
	providerHandler := provider.NewHandler(providerRepo)
	purchaseHandler := purchase.NewHandler(purchaseService)

	authMiddleware := middleware.Auth(jwtService)
	adminMiddleware := middleware.RequireAdmin()

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(middleware.HTTPMetrics)

	if !cfg.IsDevelopment() {
		r.Use(chimw.Compress(5))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", userHandler.Routes(authMiddleware))
		r.Mount("/services", catalogHandler.Routes(authMiddleware))
		r.Mount("/wallet", walletHandler.Routes(authMiddleware))
		r.Mount("/purchases", purchaseHandler.Routes(authMiddleware))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Mount("/users", userHandler.AdminRoutes(authMiddleware, adminMiddleware))
		r.Mount("/services", catalogHandler.AdminRoutes(authMiddleware, adminMiddleware))
		r.Mount("/providers", providerHandler.AdminRoutes(authMiddleware, adminMiddleware))
		r.Mount("/", walletHandler.AdminRoutes(authMiddleware, adminMiddleware))
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
