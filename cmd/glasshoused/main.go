package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/wheelibin/glasshouse/internal/aggregate"
	"github.com/wheelibin/glasshouse/internal/api"
	"github.com/wheelibin/glasshouse/internal/config"
	"github.com/wheelibin/glasshouse/internal/constants"
	"github.com/wheelibin/glasshouse/internal/events"
	"github.com/wheelibin/glasshouse/internal/fetch"
	"github.com/wheelibin/glasshouse/internal/glasshouse"
	"github.com/wheelibin/glasshouse/internal/imageproc"
	"github.com/wheelibin/glasshouse/internal/ingest"
	"github.com/wheelibin/glasshouse/internal/repos"
	"github.com/wheelibin/glasshouse/internal/schedule"
	"github.com/wheelibin/glasshouse/internal/settings"
	"golang.org/x/sync/errgroup"
)

func main() {

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: true,
		ReportCaller:    true,
	})

	var (
		configFile string
		debug      bool
	)
	cmd := &cobra.Command{
		Use:          "glasshoused",
		Short:        "Glasshouse dashboard daemon",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if debug {
				logger.SetLevel(log.DebugLevel)
			}
			return run(logger, configFile)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default: search /etc/glasshouse, ~/.config/glasshouse, .)")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	if err := cmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func run(logger *log.Logger, configFile string) error {
	logger.Info("glasshoused starting")

	// read the config file
	cfg, err := config.InitialiseConfig(configFile)
	if err != nil {
		return err
	}
	formatPolicy, _ := schedule.ParseFormatPolicy(cfg.FormatPolicy)
	averaging, _ := aggregate.ParseMissingPolicy(cfg.AveragingPolicy)

	db, err := repos.OpenDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("Error opening database (%s): %w", cfg.DatabasePath, err)
	}
	defer db.Close()
	if err := repos.CreateSessionTable(db); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// create/wire up services
	documents, err := repos.NewDocumentRepo(logger, db)
	if err != nil {
		return err
	}
	snapshots := repos.NewSnapshotRepo(logger, cfg.SnapshotDir, cfg.SnapshotPublicURL)
	broker := events.NewBroker(logger)
	defer broker.Close()

	mqttClient := ingest.NewMQTTClient(logger, cfg.MQTT)
	if err := mqttClient.Connect(ctx); err != nil {
		return err
	}
	defer mqttClient.Close()

	schedules := schedule.NewScheduleService(logger, documents, broker, formatPolicy)
	settingsService := settings.NewSettingsService(logger, documents, broker, mqttClient)
	readingHandler := ingest.NewReadingHandler(logger, documents, broker)
	fetcher := fetch.NewCombinedFetcher(logger, documents,
		fetch.NewSnapshotFetcher(logger, snapshots, cfg.Workers),
		fetch.NewReadingFetcher(logger, documents))
	images := imageproc.NewImageService(logger, cfg.ImageServiceURL, cfg.ImageServiceTimeout)

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.New(db)
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Cookie.Secure = cfg.SecureCookies

	server := api.NewServer(logger, sessionManager, schedules, settingsService, fetcher, images, snapshots, broker, api.Options{
		Operator:       cfg.Operator,
		GeoLocation:    cfg.GeoLocation,
		Averaging:      averaging,
		SnapshotDir:    cfg.SnapshotDir,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      server.Routes(),
		ErrorLog:     logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	gh := glasshouse.NewGlasshouse(logger, schedules, mqttClient, readingHandler, settingsService, constants.ConfigBroadcastInterval)
	if err := gh.Initialise(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return gh.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		// cleanup before exit
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		broker.Close()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("glasshoused is closing")
	return err
}
