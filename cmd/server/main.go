package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/snapgala/api/internal/config"
	"github.com/snapgala/api/internal/conversation"
	"github.com/snapgala/api/internal/database"
	"github.com/snapgala/api/internal/handler"
	"github.com/snapgala/api/internal/media"
	"github.com/snapgala/api/internal/middleware"
	"github.com/snapgala/api/internal/repository"
	"github.com/snapgala/api/internal/service"
	"github.com/snapgala/api/internal/session"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize media storage
	mediaStore, err := media.NewDiskStore(media.DiskStoreConfig{
		BaseDir:      cfg.Media.BaseDir,
		PublicPrefix: cfg.Server.PublicBaseURL + cfg.Media.PublicPrefix,
	})
	if err != nil {
		slog.Error("failed to initialize media storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db)
	photoRepo := repository.NewPhotoRepository(db)

	// Initialize session store for organizer conversations
	sessions := session.NewStore()

	// Initialize the organizer websocket gateway. The creation service is
	// attached after construction because each side needs the other.
	gateway := conversation.NewGateway(cfg.Server.AllowedOrigins)

	// Initialize services
	creationService := service.NewCreationService(service.CreationServiceConfig{
		Sessions:      sessions,
		EventRepo:     eventRepo,
		PhotoRepo:     photoRepo,
		Media:         mediaStore,
		Sender:        gateway,
		PublicBaseURL: cfg.Server.PublicBaseURL,
	})
	gateway.Attach(creationService)

	admissionService := service.NewAdmissionService(service.AdmissionServiceConfig{
		EventRepo: eventRepo,
		PhotoRepo: photoRepo,
		Media:     mediaStore,
	})

	// Initialize rate limiter for guest endpoints
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.Rate,
		Window: cfg.RateLimit.Window,
		Burst:  cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	// Initialize handlers
	eventHandler := handler.NewEventHandler(admissionService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	// Guest endpoints (public). Only these are rate limited; health
	// probes and stored media are exempt.
	limited := middleware.RateLimit(rateLimiter)
	mux.Handle("GET /v1/events/{eventId}", limited(http.HandlerFunc(eventHandler.GetEventPage)))
	mux.Handle("GET /v1/events/{eventId}/album", limited(http.HandlerFunc(eventHandler.GetAlbum)))
	mux.Handle("POST /v1/events/{eventId}/photos", limited(http.HandlerFunc(eventHandler.UploadPhoto)))

	// Stored photos
	mux.Handle("GET "+cfg.Media.PublicPrefix+"/",
		http.StripPrefix(cfg.Media.PublicPrefix+"/", http.FileServer(http.Dir(mediaStore.BaseDir()))))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Compress,
	)

	// The websocket route bypasses the middleware chain: the wrapped
	// response writers do not implement http.Hijacker, which the upgrade
	// requires.
	root := http.NewServeMux()
	root.HandleFunc("GET /v1/organizer/ws", gateway.ServeWS)
	root.Handle("/", wrapped)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      root,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
