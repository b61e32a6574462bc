package api

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/charmbracelet/log"
	"github.com/go-playground/form/v4"
	"github.com/wheelibin/glasshouse/internal/aggregate"
	"github.com/wheelibin/glasshouse/internal/config"
	"github.com/wheelibin/glasshouse/internal/imageproc"
	"github.com/wheelibin/glasshouse/internal/models"
	"github.com/wheelibin/glasshouse/internal/schedule"
)

type scheduleService interface {
	Lights() []models.LightDevice
	HasDevice(device string) bool
	View(device string) []models.ScheduleView
	ViewRecord(device string, r schedule.ScheduleRecord) models.ScheduleView
	Add(ctx context.Context, device string, interval schedule.Interval) (schedule.ScheduleRecord, error)
	Edit(ctx context.Context, device string, id string, interval schedule.Interval) (schedule.ScheduleRecord, error)
	Delete(ctx context.Context, device string, id string) (schedule.ScheduleRecord, error)
}

type settingsService interface {
	Get(ctx context.Context) ([]int, error)
	Set(ctx context.Context, hours []int) error
}

type dataFetcher interface {
	Fetch(ctx context.Context, set string, from time.Time, to time.Time) ([]aggregate.Item, error)
	Sets(ctx context.Context) ([]string, error)
	Devices(ctx context.Context, kind string) ([]models.Device, error)
	DeviceReadings(ctx context.Context, source aggregate.Source, device string, from time.Time, to time.Time) ([]aggregate.Reading, error)
}

type snapshotStore interface {
	ListAll(ctx context.Context) ([]models.ObjectRef, error)
	ResolveURL(ctx context.Context, ref models.ObjectRef) (string, error)
	Metadata(ctx context.Context, ref models.ObjectRef) (models.ObjectMetadata, error)
	Read(ctx context.Context, ref models.ObjectRef) ([]byte, error)
}

type imageProcessor interface {
	ProcessImage(ctx context.Context, upload imageproc.Upload, params imageproc.Params) ([]byte, string, error)
	Analyze(ctx context.Context, uploads []imageproc.Upload) (*models.AnalysisResult, error)
}

// Options carries the settings the handlers need from the config file
type Options struct {
	Operator       config.Operator
	GeoLocation    string
	Averaging      aggregate.MissingPolicy
	SnapshotDir    string
	AllowedOrigins []string
	Location       *time.Location
}

type Server struct {
	logger      *log.Logger
	sessions    *scs.SessionManager
	formDecoder *form.Decoder
	schedules   scheduleService
	settings    settingsService
	fetcher     dataFetcher
	images      imageProcessor
	snapshots   snapshotStore
	events      http.Handler
	opts        Options
}

func NewServer(
	logger *log.Logger,
	sessions *scs.SessionManager,
	schedules scheduleService,
	settings settingsService,
	fetcher dataFetcher,
	images imageProcessor,
	snapshots snapshotStore,
	events http.Handler,
	opts Options,
) *Server {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Server{
		logger:      logger,
		sessions:    sessions,
		formDecoder: form.NewDecoder(),
		schedules:   schedules,
		settings:    settings,
		fetcher:     fetcher,
		images:      images,
		snapshots:   snapshots,
		events:      events,
		opts:        opts,
	}
}
