package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tapdeck/tapdeck/internal/api/handlers"
	"github.com/tapdeck/tapdeck/internal/api/middleware"
	"github.com/tapdeck/tapdeck/internal/config"
	"github.com/tapdeck/tapdeck/internal/controllers"
	"github.com/tapdeck/tapdeck/internal/device"
	"github.com/tapdeck/tapdeck/internal/models"
	"github.com/tapdeck/tapdeck/internal/scheduler"
)

// Server represents the HTTP server
type Server struct {
	server       *http.Server
	db           *models.Database
	playbackCtrl *controllers.PlaybackController
	searchCtrl   *controllers.SearchController
	devices      *device.Registry
	deviceClient *device.Client
	monitor      *scheduler.Scheduler
	logger       *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.Config,
	db *models.Database,
	playbackCtrl *controllers.PlaybackController,
	searchCtrl *controllers.SearchController,
	devices *device.Registry,
	deviceClient *device.Client,
	monitor *scheduler.Scheduler,
	logger *logrus.Logger,
) *Server {
	s := &Server{
		db:           db,
		playbackCtrl: playbackCtrl,
		searchCtrl:   searchCtrl,
		devices:      devices,
		deviceClient: deviceClient,
		monitor:      monitor,
		logger:       logger,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux)

	s.server = &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: middleware.Logging(mux, logger),
		// Playback requests stay open while a multi-step sequence runs
		// against the device, so the write timeout is generous.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux) {
	healthHandler := handlers.NewHealthHandler(s.logger)
	mux.HandleFunc("GET /health", healthHandler.ServeHTTP)

	statusHandler := handlers.NewStatusHandler(s.db, s.monitor, s.logger)
	mux.HandleFunc("GET /status", statusHandler.ServeHTTP)

	// Playback; /play/{mediaId} is the URL written onto NFC tags
	playHandler := handlers.NewPlayHandler(s.db, s.playbackCtrl, s.logger)
	mux.HandleFunc("POST /play/{mediaId}", playHandler.PlayStored)
	mux.HandleFunc("POST /api/play", playHandler.PlayDirect)

	// Search
	searchHandler := handlers.NewSearchHandler(s.searchCtrl, s.logger)
	mux.HandleFunc("GET /api/search", searchHandler.ServeHTTP)

	// Library
	mediaHandler := handlers.NewMediaHandler(s.db, s.logger)
	mux.HandleFunc("GET /api/media", mediaHandler.List)
	mux.HandleFunc("POST /api/media", mediaHandler.Create)
	mux.HandleFunc("GET /api/media/{id}", mediaHandler.Get)
	mux.HandleFunc("PATCH /api/media/{id}", mediaHandler.Update)
	mux.HandleFunc("DELETE /api/media/{id}", mediaHandler.Delete)

	// Devices
	devicesHandler := handlers.NewDevicesHandler(s.devices, s.deviceClient, s.monitor, s.logger)
	mux.HandleFunc("GET /api/devices", devicesHandler.List)
	mux.HandleFunc("GET /api/devices/{id}/info", devicesHandler.Info)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
