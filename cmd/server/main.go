package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vothaan/chongi/internal/config"
	"github.com/vothaan/chongi/internal/database"
	"github.com/vothaan/chongi/internal/handlers"
	"github.com/vothaan/chongi/internal/middleware"
	"github.com/vothaan/chongi/internal/services"
	"github.com/vothaan/chongi/internal/services/ai"
	"github.com/vothaan/chongi/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	sugar.Infow("Starting server", "env", cfg.Server.Environment)

	sugar.Infow("Connecting to PostgreSQL", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	sugar.Info("Connected to PostgreSQL")

	sugar.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.Database.DSN(), "migrations"); err != nil {
		return err
	}
	sugar.Info("Migrations completed")

	sugar.Infow("Connecting to Redis", "addr", cfg.Redis.Addr())
	redisDB, err := database.NewRedisDB(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	sugar.Info("Connected to Redis")

	// Services
	dbAdapter := services.NewPoolAdapter(db.Pool)
	redisAdapter := services.NewRedisAdapter(redisDB.Client)
	blobStore := storage.NewClient(cfg.Storage.BaseURL, cfg.Storage.Bucket, cfg.Storage.APIKey)

	userService := services.NewUserService(dbAdapter)
	authService := services.NewAuthService(dbAdapter, redisAdapter)
	emailService := services.NewEmailService(&cfg.Email, redisAdapter, userService, sugar)
	itemService := services.NewItemService(dbAdapter, blobStore, sugar)
	picker := services.NewPicker()
	suggester := ai.NewService(cfg, sugar)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db, redisDB)
	authHandler := handlers.NewAuthHandler(userService, authService, emailService, sugar, cfg.Server.Secure)
	itemHandler := handlers.NewItemHandler(itemService, sugar)
	suggestHandler := handlers.NewSuggestHandler(itemService, picker, suggester, sugar)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Secure)
	requestLogger := middleware.NewRequestLogger(sugar)

	requireAuth := authMiddleware.RequireAuth

	// Router
	mux := http.NewServeMux()

	// Health endpoints (no auth)
	mux.HandleFunc("GET /health", healthHandler.Ready)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// Auth endpoints
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/auth/me", requireAuth(http.HandlerFunc(authHandler.Me)))
	mux.HandleFunc("POST /api/auth/verify-email", authHandler.VerifyEmail)

	// Category and item endpoints
	mux.HandleFunc("GET /api/categories", itemHandler.GetCategories)
	mux.Handle("GET /api/items", requireAuth(http.HandlerFunc(itemHandler.List)))
	mux.Handle("POST /api/items", requireAuth(http.HandlerFunc(itemHandler.Create)))
	mux.Handle("DELETE /api/items/{id}", requireAuth(http.HandlerFunc(itemHandler.Delete)))

	// Suggestion endpoints
	mux.Handle("GET /api/suggest/random", requireAuth(http.HandlerFunc(suggestHandler.Random)))
	mux.Handle("POST /api/suggest", requireAuth(http.HandlerFunc(suggestHandler.Suggest)))

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = authMiddleware.Authenticate(handler)
	handler = securityHeaders.Apply(handler)
	handler = requestLogger.Apply(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// Gemini calls can take a while; keep the write timeout above the AI
		// client timeout so callers get JSON instead of a dropped connection.
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		sugar.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			sugar.Errorw("Could not gracefully shutdown the server", "error", err)
		}
		close(done)
	}()

	sugar.Infow("Server listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	sugar.Info("Server stopped")
	return nil
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
