package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ride-compare-backend/internal/config"
	"ride-compare-backend/internal/database"
	"ride-compare-backend/internal/handlers"
	"ride-compare-backend/internal/metrics"
	"ride-compare-backend/internal/services"
	"ride-compare-backend/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const sessionCleanupInterval = time.Hour

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Select storage backend
	var store storage.Storage
	switch cfg.Storage.Backend {
	case "postgres":
		if err := database.RunMigrations(cfg.Database.URL()); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		db, err := database.Connect(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()
		log.Info().Msg("Database connection established")
		store = storage.NewPostgresStorage(db)
	default:
		log.Info().Msg("Using in-memory storage backend")
		store = storage.NewMemoryStorage()
	}

	// Initialize services
	authService := services.NewAuthService(store, cfg.Session.TTL())
	placeService := services.NewPlaceService(store)
	rideService := services.NewRideService(store)

	var profileService *services.ProfileService
	if cfg.AWS.S3Bucket != "" {
		profileService, err = services.NewProfileService(
			store,
			cfg.AWS.Region,
			cfg.AWS.S3Bucket,
			cfg.AWS.AccessKey,
			cfg.AWS.SecretKey,
			cfg.AWS.Endpoint,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create profile service")
		}
	} else {
		log.Info().Msg("No S3 bucket configured, profile picture uploads disabled")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.Session.CookieName, cfg.Session.Secure)
	placeHandler := handlers.NewPlaceHandler(placeService)
	rideHandler := handlers.NewRideHandler(rideService)
	var profileHandler *handlers.ProfileHandler
	if profileService != nil {
		profileHandler = handlers.NewProfileHandler(profileService)
	}

	// Metrics
	collector := metrics.NewCollector(prometheus.NewRegistry())

	// Setup router
	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:       authHandler,
		Places:     placeHandler,
		Rides:      rideHandler,
		Profile:    profileHandler,
		Sessions:   store.Sessions(),
		CookieName: cfg.Session.CookieName,
		Collector:  collector,
	})

	// Periodic expired-session cleanup
	cleanupDone := make(chan struct{})
	go runSessionCleanup(store.Sessions(), cleanupDone)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Str("backend", cfg.Storage.Backend).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	close(cleanupDone)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// runSessionCleanup prunes expired sessions until done is closed
func runSessionCleanup(sessions storage.SessionStore, done <-chan struct{}) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := sessions.DeleteExpired(context.Background()); err != nil {
				log.Error().Err(err).Msg("Failed to prune expired sessions")
			}
		case <-done:
			return
		}
	}
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
