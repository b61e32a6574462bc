package aggregate

import (
	"fmt"
	"strings"
	"time"

	"github.com/wheelibin/glasshouse/internal/models"
)

// Source is a kind of sensor, each with a fixed set of metrics
type Source string

const (
	SourceSoil  Source = "Soil"
	SourceDHT22 Source = "DHT22"
)

var sourceMetrics = map[Source][]string{
	SourceSoil:  {"EC", "Humidity", "Moisture", "Nitrogen", "pH", "Phosphorus", "Potassium", "Temperature"},
	SourceDHT22: {"Humidity", "Temperature"},
}

// Sources lists every known source in display order
func Sources() []Source {
	return []Source{SourceSoil, SourceDHT22}
}

func (s Source) Metrics() []string {
	return sourceMetrics[s]
}

func (s Source) Known() bool {
	_, ok := sourceMetrics[s]
	return ok
}

func ParseSource(s string) (Source, error) {
	for _, source := range Sources() {
		if strings.EqualFold(s, string(source)) {
			return source, nil
		}
	}
	return "", fmt.Errorf("unknown sensor source %q: %w", s, models.ErrInvalidConfiguration)
}

// Item is either an Image or a Reading
type Item interface {
	Timestamp() time.Time
	item()
}

type Image struct {
	URL string    `json:"url"`
	At  time.Time `json:"timestamp"`
}

func (i Image) Timestamp() time.Time { return i.At }
func (Image) item() {}

// Reading holds the metrics a sensor reported. A metric the device did not
// report is absent from Fields.
type Reading struct {
	Source Source             `json:"source"`
	Fields map[string]float64 `json:"fields"`
	At     time.Time          `json:"timestamp"`
}

func (r Reading) Timestamp() time.Time { return r.At }
func (Reading) item() {}
