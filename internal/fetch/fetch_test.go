package fetch_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wheelibin/glasshouse/internal/aggregate"
	"github.com/wheelibin/glasshouse/internal/fetch"
	"github.com/wheelibin/glasshouse/internal/models"
	"github.com/wheelibin/glasshouse/mocks"
)

var (
	from = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
)

func testLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
}

func Test_ParseSnapshotName(t *testing.T) {
	tests := []struct {
		name       string
		expectedIP string
		expectedAt time.Time
		ok         bool
	}{
		{name: "192_168_1_40_20240101_120000.jpg", expectedIP: "192_168_1_40", expectedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), ok: true},
		{name: "192_168_1_7_20241231_235959.png", expectedIP: "192_168_1_7", expectedAt: time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), ok: true},
		{name: "192_168_1_40_snapshot.jpg", expectedIP: "192_168_1_40"},
		{name: "192_168_1_40_20241301_000000.jpg", expectedIP: "192_168_1_40"},
		{name: "notes.txt"},
	}

	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			ip, at, ok := fetch.ParseSnapshotName(c.name, time.UTC)
			assert.Equal(t, c.expectedIP, ip)
			assert.Equal(t, c.ok, ok)
			if c.ok {
				assert.True(t, c.expectedAt.Equal(at))
			}
		})
	}
}

func Test_DeviceIDsForSet(t *testing.T) {
	tests := []struct {
		set  string
		soil string
		dht  string
	}{
		{set: "40", soil: "soil_40", dht: "dht22_0"},
		{set: "5", soil: "soil_05", dht: "dht22_5"},
		{set: "123", soil: "soil_23", dht: "dht22_3"},
	}

	for _, c := range tests {
		t.Run(c.set, func(t *testing.T) {
			soil, dht := fetch.DeviceIDsForSet(c.set)
			assert.Equal(t, c.soil, soil)
			assert.Equal(t, c.dht, dht)
		})
	}
}

func Test_SnapshotFetcher_Images(t *testing.T) {
	store := mocks.NewMockFetchObjectStore(t)
	store.On("ListAll", mock.Anything).Return([]models.ObjectRef{
		{Name: "192_168_1_40_20240101_120000.jpg"},
		{Name: "192_168_1_41_20240101_120000.jpg"},
		{Name: "192_168_1_40_20231231_235959.jpg"},
		{Name: "192_168_1_40_snapshot.jpg"},
		{Name: "192_168_1_40_20240102_000000.jpg"},
		{Name: "notes.txt"},
	}, nil)
	store.On("Metadata", mock.Anything, models.ObjectRef{Name: "192_168_1_40_snapshot.jpg"}).
		Return(models.ObjectMetadata{CreatedTime: time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC)}, nil)
	store.On("ResolveURL", mock.Anything, mock.Anything).Return(func(ctx context.Context, ref models.ObjectRef) (string, error) {
		return "/snapshots/" + ref.Name, nil
	})

	f := fetch.NewSnapshotFetcher(testLogger(), store, 4)
	images, err := f.Images(context.Background(), "40", from, to)

	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, "/snapshots/192_168_1_40_20240101_120000.jpg", images[0].URL)
	assert.Equal(t, "/snapshots/192_168_1_40_snapshot.jpg", images[1].URL)
	assert.True(t, images[1].At.Equal(time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC)))
	// range end is inclusive
	assert.Equal(t, "/snapshots/192_168_1_40_20240102_000000.jpg", images[2].URL)
}

func Test_SnapshotFetcher_ResolveError(t *testing.T) {
	store := mocks.NewMockFetchObjectStore(t)
	store.On("ListAll", mock.Anything).Return([]models.ObjectRef{{Name: "192_168_1_40_20240101_120000.jpg"}}, nil)
	store.On("ResolveURL", mock.Anything, mock.Anything).Return("", fmt.Errorf("gone"))

	f := fetch.NewSnapshotFetcher(testLogger(), store, 1)
	_, err := f.Images(context.Background(), "40", from, to)

	assert.Error(t, err)
}

func Test_ReadingFetcher_Readings(t *testing.T) {
	store := mocks.NewMockFetchDocumentLister(t)
	store.On("List", mock.Anything, "Soil/soil_40/Data").Return([]models.Document{
		{ID: "a", Fields: map[string]any{"date_time": "2024-01-01T06:00:00Z", "pH": 6.5, "Moisture": 31.0, "Unrelated": 1.0}},
		{ID: "b", Fields: map[string]any{"pH": 7.0}},
		{ID: "c", Fields: map[string]any{"date_time": "2024-01-03T06:00:00Z", "pH": 7.0}},
		{ID: "d", Fields: map[string]any{"date_time": float64(time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC).UnixMilli()), "EC": 2.0}},
	}, nil)

	f := fetch.NewReadingFetcher(testLogger(), store)
	readings, err := f.Readings(context.Background(), aggregate.SourceSoil, "soil_40", from, to)

	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, map[string]float64{"pH": 6.5, "Moisture": 31}, readings[0].Fields)
	assert.Equal(t, aggregate.SourceSoil, readings[0].Source)
	assert.Equal(t, map[string]float64{"EC": 2}, readings[1].Fields)
	assert.True(t, readings[1].At.Equal(time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC)))
}

func Test_ReadingFetcher_ReadingsOldestFirst(t *testing.T) {
	store := mocks.NewMockFetchDocumentLister(t)
	store.On("List", mock.Anything, "DHT22/dht22_0/Data").Return([]models.Document{
		{ID: "x", Fields: map[string]any{"date_time": "2024-01-01T18:00:00Z", "Temperature": 19.0}},
		{ID: "y", Fields: map[string]any{"date_time": "2024-01-01T06:00:00Z", "Temperature": 14.0}},
		{ID: "z", Fields: map[string]any{"date_time": "2024-01-01T12:00:00Z", "Temperature": 22.0}},
	}, nil)

	f := fetch.NewReadingFetcher(testLogger(), store)
	readings, err := f.Readings(context.Background(), aggregate.SourceDHT22, "dht22_0", from, to)

	require.NoError(t, err)
	temps := []float64{}
	for _, r := range readings {
		temps = append(temps, r.Fields["Temperature"])
	}
	assert.Equal(t, []float64{14, 22, 19}, temps)
}

func Test_CombinedFetcher_DeviceReadings(t *testing.T) {
	docs := mocks.NewMockFetchDocumentLister(t)
	docs.On("List", mock.Anything, "Soil/soil_07/Data").Return([]models.Document{
		{ID: "1", Fields: map[string]any{"date_time": "2024-01-01T09:00:00Z", "pH": 6.8}},
	}, nil).Once()

	logger := testLogger()
	f := fetch.NewCombinedFetcher(logger, docs, nil, fetch.NewReadingFetcher(logger, docs))

	readings, err := f.DeviceReadings(context.Background(), aggregate.SourceSoil, "soil_07", from, to)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, map[string]float64{"pH": 6.8}, readings[0].Fields)

	_, err = f.DeviceReadings(context.Background(), aggregate.SourceSoil, "soil_07", to, from)
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
}

func Test_CombinedFetcher_Fetch(t *testing.T) {
	objects := mocks.NewMockFetchObjectStore(t)
	objects.On("ListAll", mock.Anything).Return([]models.ObjectRef{{Name: "192_168_1_40_20240101_120000.jpg"}}, nil)
	objects.On("ResolveURL", mock.Anything, mock.Anything).Return("/snapshots/a.jpg", nil)

	docs := mocks.NewMockFetchDocumentLister(t)
	docs.On("List", mock.Anything, "Soil/soil_40/Data").Return([]models.Document{
		{ID: "1", Fields: map[string]any{"date_time": "2024-01-01T06:00:00Z", "pH": 6.5}},
	}, nil)
	docs.On("List", mock.Anything, "DHT22/dht22_0/Data").Return([]models.Document{
		{ID: "1", Fields: map[string]any{"date_time": "2024-01-01T06:30:00Z", "Temperature": 21.0}},
	}, nil)

	logger := testLogger()
	f := fetch.NewCombinedFetcher(logger, docs, fetch.NewSnapshotFetcher(logger, objects, 2), fetch.NewReadingFetcher(logger, docs))

	items, err := f.Fetch(context.Background(), "40", from, to)

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.IsType(t, aggregate.Image{}, items[0])
	assert.Equal(t, aggregate.SourceSoil, items[1].(aggregate.Reading).Source)
	assert.Equal(t, aggregate.SourceDHT22, items[2].(aggregate.Reading).Source)
}

func Test_CombinedFetcher_FetchError(t *testing.T) {
	objects := mocks.NewMockFetchObjectStore(t)
	objects.On("ListAll", mock.Anything).Return(nil, fmt.Errorf("bucket unavailable"))

	docs := mocks.NewMockFetchDocumentLister(t)
	docs.On("List", mock.Anything, mock.Anything).Return([]models.Document{}, nil).Maybe()

	logger := testLogger()
	f := fetch.NewCombinedFetcher(logger, docs, fetch.NewSnapshotFetcher(logger, objects, 2), fetch.NewReadingFetcher(logger, docs))

	_, err := f.Fetch(context.Background(), "40", from, to)

	assert.ErrorContains(t, err, "bucket unavailable")
}

func Test_CombinedFetcher_Sets(t *testing.T) {
	docs := mocks.NewMockFetchDocumentLister(t)
	docs.On("List", mock.Anything, "Camera").Return([]models.Document{
		{ID: "192.168.1.40"}, {ID: "192.168.1.41"}, {ID: "cam"}, {ID: "192.168.1.40"}, {ID: "trailing."},
	}, nil)

	f := fetch.NewCombinedFetcher(testLogger(), docs, nil, nil)
	sets, err := f.Sets(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"40", "41", "cam"}, sets)
}

func Test_CombinedFetcher_Devices(t *testing.T) {
	docs := mocks.NewMockFetchDocumentLister(t)
	docs.On("List", mock.Anything, "Camera").Return([]models.Document{
		{ID: "doc1", Fields: map[string]any{"id": "cam40", "active": true}},
		{ID: "doc2", Fields: map[string]any{}},
	}, nil)

	f := fetch.NewCombinedFetcher(testLogger(), docs, nil, nil)

	devices, err := f.Devices(context.Background(), "Camera")
	require.NoError(t, err)
	assert.Equal(t, []models.Device{
		{ID: "cam40", Kind: "Camera", Active: true},
		{ID: "doc2", Kind: "Camera", Active: false},
	}, devices)

	_, err = f.Devices(context.Background(), "Lighting")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func Test_ParseRangeTime(t *testing.T) {
	loc := time.FixedZone("site", 2*60*60)

	tests := []struct {
		in       string
		expected time.Time
	}{
		{in: "2024-03-05T06:30", expected: time.Date(2024, 3, 5, 6, 30, 0, 0, loc)},
		{in: "2024-03-05T06:30:15", expected: time.Date(2024, 3, 5, 6, 30, 15, 0, loc)},
		{in: "2024-03-05", expected: time.Date(2024, 3, 5, 0, 0, 0, 0, loc)},
		{in: "2024-03-05T06:30:00Z", expected: time.Date(2024, 3, 5, 6, 30, 0, 0, time.UTC)},
	}
	for _, c := range tests {
		got, err := fetch.ParseRangeTime(c.in, loc)
		require.NoError(t, err, c.in)
		assert.True(t, c.expected.Equal(got), "%s: expected %s, got %s", c.in, c.expected, got)
	}

	_, err := fetch.ParseRangeTime("yesterday", loc)
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
}
