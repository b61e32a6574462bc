package fetch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/glasshouse/internal/aggregate"
	"github.com/wheelibin/glasshouse/internal/constants"
	"github.com/wheelibin/glasshouse/internal/models"
)

type documentLister interface {
	List(ctx context.Context, collectionPath string) ([]models.Document, error)
}

type ReadingFetcher struct {
	logger *log.Logger
	store  documentLister
}

func NewReadingFetcher(logger *log.Logger, store documentLister) *ReadingFetcher {
	return &ReadingFetcher{logger: logger, store: store}
}

// DeviceIDsForSet returns the soil probe and dht22 sensor that belong to a
// camera set, e.g. set "40" has soil_40 and dht22_0
func DeviceIDsForSet(set string) (soil string, dht string) {
	soilSuffix := set
	if len(soilSuffix) > 2 {
		soilSuffix = soilSuffix[len(soilSuffix)-2:]
	}
	soilSuffix = strings.Repeat("0", 2-len(soilSuffix)) + soilSuffix

	dhtSuffix := set
	if len(dhtSuffix) > 1 {
		dhtSuffix = dhtSuffix[len(dhtSuffix)-1:]
	}
	return "soil_" + soilSuffix, "dht22_" + dhtSuffix
}

// Readings returns the readings of one device taken within [from, to], oldest
// first. Only the metrics present on each document are copied.
func (f *ReadingFetcher) Readings(ctx context.Context, source aggregate.Source, device string, from time.Time, to time.Time) ([]aggregate.Reading, error) {
	path := strings.Join([]string{string(source), device, constants.SubCollectionData}, "/")
	docs, err := f.store.List(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("Error fetching %s readings for %s: %w", source, device, err)
	}

	readings := []aggregate.Reading{}
	for _, doc := range docs {
		at, ok := models.Time(doc.Fields, constants.FieldDateTime)
		if !ok {
			f.logger.Warn("Skipping reading without a date_time", "path", path, "id", doc.ID)
			continue
		}
		if at.Before(from) || at.After(to) {
			continue
		}

		fields := map[string]float64{}
		for _, metric := range source.Metrics() {
			if v, ok := models.Float(doc.Fields, metric); ok {
				fields[metric] = v
			}
		}
		readings = append(readings, aggregate.Reading{Source: source, Fields: fields, At: at})
	}

	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].At.Before(readings[j].At)
	})

	f.logger.Debug("Readings fetched", "path", path, "count", len(readings))
	return readings, nil
}
