package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tapdeck/tapdeck/internal/api"
	"github.com/tapdeck/tapdeck/internal/channels"
	"github.com/tapdeck/tapdeck/internal/config"
	"github.com/tapdeck/tapdeck/internal/controllers"
	"github.com/tapdeck/tapdeck/internal/device"
	"github.com/tapdeck/tapdeck/internal/models"
	"github.com/tapdeck/tapdeck/internal/scheduler"
	"github.com/tapdeck/tapdeck/internal/services/jellyfin"
	"github.com/tapdeck/tapdeck/internal/services/websearch"
	"github.com/tapdeck/tapdeck/internal/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tapdeck",
		Short:         "NFC-triggered streaming playback server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	root.AddCommand(newServeCmd(), newPlayCmd(), newSearchCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the playback and search server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func newPlayCmd() *cobra.Command {
	var (
		deviceID  string
		mediaID   string
		channelID string
		contentID string
		mediaType string
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a library entry or an ad-hoc reference on a device",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}
			defer app.close()

			ref := models.MediaReference{
				ChannelID: channelID,
				ContentID: contentID,
				MediaType: mediaType,
			}
			if mediaID != "" {
				media, err := app.db.GetMediaByID(mediaID)
				if err != nil {
					return fmt.Errorf("failed to load media %q: %w", mediaID, err)
				}
				ref = media.Ref
			} else if channelID == "" || contentID == "" {
				return fmt.Errorf("either --media or both --channel and --content are required")
			}

			return app.playbackCtrl.Play(cmd.Context(), ref, deviceID)
		},
	}
	cmd.Flags().StringVar(&deviceID, "device", "", "target device id (default device when empty)")
	cmd.Flags().StringVar(&mediaID, "media", "", "stored media id")
	cmd.Flags().StringVar(&channelID, "channel", "", "channel id for ad-hoc playback")
	cmd.Flags().StringVar(&contentID, "content", "", "content id for ad-hoc playback")
	cmd.Flags().StringVar(&mediaType, "type", "", "media type (defaults to movie)")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run an aggregated search and print the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(false)
			if err != nil {
				return err
			}
			defer app.close()

			query := ""
			for i, arg := range args {
				if i > 0 {
					query += " "
				}
				query += arg
			}

			results := app.searchCtrl.Search(cmd.Context(), query, limit)
			if len(results) == 0 {
				fmt.Println("No results")
				return nil
			}
			for _, r := range results {
				fmt.Printf("%-12s %-10s %-14s %s\n", r.Source, r.Ref.ChannelID, r.Ref.ContentID, r.Title)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results")
	return cmd
}

// app holds the wired components shared by the subcommands.
type app struct {
	cfg          *config.Config
	logger       *logrus.Logger
	db           *models.Database
	registry     *channels.Registry
	devices      *device.Registry
	deviceClient *device.Client
	playbackCtrl *controllers.PlaybackController
	searchCtrl   *controllers.SearchController
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}

func newApp(openDB bool) (*app, error) {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)

	a := &app{cfg: cfg, logger: logger}

	// 3. Initialize database
	if openDB {
		db, err := models.NewDatabase(cfg.DatabaseFile)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.db = db
	}

	// 4. Build the channel registry. Registration order is also web-hit
	// extraction order.
	postLaunchWait := time.Duration(cfg.PostLaunchWaitMS) * time.Millisecond
	streaming := []*channels.Streaming{
		channels.NewNetflix(),
		channels.NewDisneyPlus(),
		channels.NewPrimeVideo(),
		channels.NewYouTube(),
		channels.NewHulu(),
		channels.NewAppleTV(),
		channels.NewMax(),
	}
	chans := make([]channels.Channel, 0, len(streaming)+1)
	for _, s := range streaming {
		s.PostLaunchWait = postLaunchWait
		chans = append(chans, s)
	}

	if cfg.JellyfinURL != "" && cfg.JellyfinToken != "" {
		jellyfinClient, err := jellyfin.NewClient(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Jellyfin client: %w", err)
		}
		chans = append(chans, channels.NewJellyfin(jellyfinClient))
		logger.Info("Jellyfin channel registered")
	} else {
		logger.Info("Jellyfin not configured, skipping private server channel")
	}

	registry, err := channels.NewRegistry(chans...)
	if err != nil {
		return nil, fmt.Errorf("failed to build channel registry: %w", err)
	}
	logger.WithField("channels", registry.Len()).Info("Channel registry initialized")

	// 5. Device side
	a.devices = device.NewRegistry(cfg.Devices, cfg.DefaultDevice)
	a.deviceClient = device.NewClient(logger)

	executor := device.NewExecutor(a.deviceClient, logger)
	executor.KeyDelay = time.Duration(cfg.KeyDelayMS) * time.Millisecond
	executor.TypeDelay = time.Duration(cfg.TypeDelayMS) * time.Millisecond

	theater, err := controllers.NewTheaterController(cfg.TheaterFile, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load theater hooks: %w", err)
	}

	// 6. Search side
	blacklist, err := utils.LoadBlacklist(cfg.BlacklistFile)
	if err != nil {
		logger.WithError(err).Warn("Failed to load blacklist, continuing without it")
		blacklist = &utils.Blacklist{}
	}

	var web controllers.WebSearcher
	if cfg.SearchURL != "" {
		webClient, err := websearch.NewClient(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize web-search client: %w", err)
		}
		web = webClient
	} else {
		logger.Warn("SEARCH_URL not set, web search disabled")
	}

	// 7. Controllers
	a.registry = registry
	a.playbackCtrl = controllers.NewPlaybackController(registry, a.devices, executor, theater, logger)
	a.searchCtrl = controllers.NewSearchController(registry, web, blacklist, cfg, logger)

	return a, nil
}

func runServe() error {
	app, err := newApp(true)
	if err != nil {
		return err
	}
	defer app.close()

	logger := app.logger
	logger.Info("Starting tapdeck")

	// Scheduler: periodic device reachability probe
	monitor := scheduler.NewScheduler(app.deviceClient, app.devices, logger)
	if err := monitor.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer monitor.Stop()

	// HTTP server
	server := api.NewServer(app.cfg, app.db, app.playbackCtrl, app.searchCtrl, app.devices, app.deviceClient, monitor, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("tapdeck is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("tapdeck stopped")
	return nil
}
