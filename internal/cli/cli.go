package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/wheelibin/glasshouse/internal/aggregate"
	"github.com/wheelibin/glasshouse/internal/config"
	"github.com/wheelibin/glasshouse/internal/fetch"
	"github.com/wheelibin/glasshouse/internal/repos"
	"github.com/wheelibin/glasshouse/internal/schedule"
	"github.com/wheelibin/glasshouse/internal/settings"
)

var (
	// Version is set at build time
	Version = "dev"
)

// App is the operator command line, working directly against the glasshouse database
type App struct {
	logger     *log.Logger
	root       *cobra.Command
	configFile string

	cfg       *config.Config
	db        *sql.DB
	schedules *schedule.ScheduleService
	settings  *settings.SettingsService
	fetcher   *fetch.CombinedFetcher
	averaging aggregate.MissingPolicy
}

func NewApp(logger *log.Logger) *App {
	a := &App{logger: logger}

	a.root = &cobra.Command{
		Use:           "glasshouse",
		Short:         "Manage the glasshouse light schedules and sensor data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	a.root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: search /etc/glasshouse, ~/.config/glasshouse, .)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.scheduleCmd())
	a.root.AddCommand(a.intervalCmd())
	a.root.AddCommand(a.dataCmd())
	a.root.AddCommand(a.readingsCmd())
	a.root.AddCommand(a.watchCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "glasshouse %s\n", Version)
		},
	}
}

func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

func (a *App) SetOut(out io.Writer) {
	a.root.SetOut(out)
}

func (a *App) Execute() error {
	return a.root.Execute()
}

func (a *App) loadConfig() error {
	if a.cfg != nil {
		return nil
	}
	cfg, err := config.InitialiseConfig(a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// open wires the services used by the store backed commands
func (a *App) open(ctx context.Context) error {
	if a.db != nil {
		return nil
	}
	if err := a.loadConfig(); err != nil {
		return err
	}

	db, err := repos.OpenDB(a.cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("Error opening database (%s): %w", a.cfg.DatabasePath, err)
	}
	repo, err := repos.NewDocumentRepo(a.logger, db)
	if err != nil {
		db.Close()
		return err
	}

	policy, err := schedule.ParseFormatPolicy(a.cfg.FormatPolicy)
	if err != nil {
		db.Close()
		return err
	}
	a.averaging, err = aggregate.ParseMissingPolicy(a.cfg.AveragingPolicy)
	if err != nil {
		db.Close()
		return err
	}

	// the daemon sends changes to the devices on its next broadcast
	a.schedules = schedule.NewScheduleService(a.logger, repo, nil, policy)
	if err := a.schedules.Load(ctx); err != nil {
		db.Close()
		return err
	}
	a.settings = settings.NewSettingsService(a.logger, repo, nil, nil)

	snapshots := repos.NewSnapshotRepo(a.logger, a.cfg.SnapshotDir, a.cfg.SnapshotPublicURL)
	a.fetcher = fetch.NewCombinedFetcher(a.logger, repo,
		fetch.NewSnapshotFetcher(a.logger, snapshots, a.cfg.Workers),
		fetch.NewReadingFetcher(a.logger, repo))

	a.db = db
	return nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
