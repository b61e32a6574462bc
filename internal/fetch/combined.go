package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/glasshouse/internal/aggregate"
	"github.com/wheelibin/glasshouse/internal/constants"
	"github.com/wheelibin/glasshouse/internal/models"
	"golang.org/x/sync/errgroup"
)

// DeviceKinds are the collections holding device status documents
var DeviceKinds = []string{constants.CollectionCamera, constants.CollectionDHT22, constants.CollectionSoil}

type CombinedFetcher struct {
	logger    *log.Logger
	store     documentLister
	snapshots *SnapshotFetcher
	readings  *ReadingFetcher
}

func NewCombinedFetcher(logger *log.Logger, store documentLister, snapshots *SnapshotFetcher, readings *ReadingFetcher) *CombinedFetcher {
	return &CombinedFetcher{logger: logger, store: store, snapshots: snapshots, readings: readings}
}

// Fetch gathers the snapshots and sensor readings of a set concurrently and
// returns them as one list: images first, then soil, then dht22 readings
func (f *CombinedFetcher) Fetch(ctx context.Context, set string, from time.Time, to time.Time) ([]aggregate.Item, error) {
	soilDevice, dhtDevice := DeviceIDsForSet(set)

	var (
		images []aggregate.Image
		soil   []aggregate.Reading
		dht    []aggregate.Reading
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		images, err = f.snapshots.Images(ctx, set, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		soil, err = f.readings.Readings(ctx, aggregate.SourceSoil, soilDevice, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		dht, err = f.readings.Readings(ctx, aggregate.SourceDHT22, dhtDevice, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]aggregate.Item, 0, len(images)+len(soil)+len(dht))
	for _, i := range images {
		items = append(items, i)
	}
	for _, r := range soil {
		items = append(items, r)
	}
	for _, r := range dht {
		items = append(items, r)
	}

	f.logger.Info("Fetched set data", "set", set, "images", len(images), "soil", len(soil), "dht22", len(dht))
	return items, nil
}

// DeviceReadings returns the raw readings of one sensor within [from, to], oldest first
func (f *CombinedFetcher) DeviceReadings(ctx context.Context, source aggregate.Source, device string, from time.Time, to time.Time) ([]aggregate.Reading, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("range end %s is before range start %s: %w", to, from, models.ErrInvalidConfiguration)
	}
	return f.readings.Readings(ctx, source, device, from, to)
}

// Sets returns the camera set ids, the part of each camera id after its last '.'
func (f *CombinedFetcher) Sets(ctx context.Context) ([]string, error) {
	docs, err := f.store.List(ctx, constants.CollectionCamera)
	if err != nil {
		return nil, err
	}
	sets := lo.FilterMap(docs, func(doc models.Document, _ int) (string, bool) {
		set := doc.ID[strings.LastIndex(doc.ID, ".")+1:]
		return set, set != ""
	})
	return lo.Uniq(sets), nil
}

// Devices returns the status of every device of a kind. A device document
// without an id field is reported under its document id.
func (f *CombinedFetcher) Devices(ctx context.Context, kind string) ([]models.Device, error) {
	if !lo.Contains(DeviceKinds, kind) {
		return nil, fmt.Errorf("device kind %q: %w", kind, models.ErrNotFound)
	}
	docs, err := f.store.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	return lo.Map(docs, func(doc models.Document, _ int) models.Device {
		id, _ := doc.Fields["id"].(string)
		active, _ := doc.Fields[constants.FieldActive].(bool)
		return models.Device{
			ID:     lo.Ternary(id != "", id, doc.ID),
			Kind:   kind,
			Active: active,
		}
	}), nil
}

var rangeTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// ParseRangeTime reads a range bound given as RFC3339, a datetime-local value
// or a plain date. Values without an offset are taken in loc.
func ParseRangeTime(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range rangeTimeLayouts {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(s), loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q: %w", s, models.ErrInvalidConfiguration)
}
