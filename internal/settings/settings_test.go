package settings_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wheelibin/glasshouse/internal/models"
	"github.com/wheelibin/glasshouse/internal/settings"
	"github.com/wheelibin/glasshouse/mocks"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
}

func Test_ParsePollingInterval(t *testing.T) {
	tests := []struct {
		input    string
		expected []int
		err      bool
	}{
		{input: "6", expected: []int{6}},
		{input: "1", expected: []int{1}},
		{input: "24", expected: []int{24}},
		{input: "1, 6,12", expected: []int{1, 6, 12}},
		{input: "", err: true},
		{input: "0", err: true},
		{input: "25", err: true},
		{input: "1.5", err: true},
		{input: "a", err: true},
		{input: "1,,2", err: true},
		{input: "3,30", err: true},
	}

	for _, c := range tests {
		t.Run(c.input, func(t *testing.T) {
			hours, err := settings.ParsePollingInterval(c.input)
			if c.err {
				assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.expected, hours)
		})
	}
}

func Test_FormatPollingInterval(t *testing.T) {
	assert.Equal(t, "6", settings.FormatPollingInterval([]int{6}))
	assert.Equal(t, "1,6,12", settings.FormatPollingInterval([]int{1, 6, 12}))
}

func Test_SettingsService_Get(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]any
		expected []int
		err      error
	}{
		{name: "single number", fields: map[string]any{"collectionIntervalHour": float64(6)}, expected: []int{6}},
		{name: "list", fields: map[string]any{"collectionIntervalHour": "1,12"}, expected: []int{1, 12}},
		{name: "missing field", fields: map[string]any{}, err: models.ErrNotFound},
		{name: "out of range", fields: map[string]any{"collectionIntervalHour": float64(30)}, err: models.ErrInvalidConfiguration},
		{name: "fractional", fields: map[string]any{"collectionIntervalHour": 6.5}, err: models.ErrInvalidConfiguration},
		{name: "not a number", fields: map[string]any{"collectionIntervalHour": true}, err: models.ErrInvalidConfiguration},
	}

	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			store := mocks.NewMockSettingsSettingsStore(t)
			store.On("Get", mock.Anything, "Global/settings").Return(models.Document{ID: "settings", Fields: c.fields}, nil)

			srv := settings.NewSettingsService(testLogger(), store, nil, nil)
			hours, err := srv.Get(context.Background())

			if c.err != nil {
				assert.ErrorIs(t, err, c.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.expected, hours)
		})
	}
}

func Test_SettingsService_GetNoDocument(t *testing.T) {
	store := mocks.NewMockSettingsSettingsStore(t)
	store.On("Get", mock.Anything, "Global/settings").Return(models.Document{}, fmt.Errorf("document: %w", models.ErrNotFound))

	srv := settings.NewSettingsService(testLogger(), store, nil, nil)
	_, err := srv.Get(context.Background())

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func Test_SettingsService_Set(t *testing.T) {

	t.Run("stores a single value as a number and broadcasts it", func(t *testing.T) {
		store := mocks.NewMockSettingsSettingsStore(t)
		publisher := mocks.NewMockSettingsEventPublisher(t)
		broadcaster := mocks.NewMockSettingsIntervalBroadcaster(t)
		store.On("Merge", mock.Anything, "Global/settings", map[string]any{"collectionIntervalHour": 6}).Return(nil)
		broadcaster.On("PublishInterval", mock.Anything, []int{6}).Return(nil)
		publisher.On("Publish", mock.MatchedBy(func(e models.Event) bool { return e.Type == "interval_changed" })).Return()

		srv := settings.NewSettingsService(testLogger(), store, publisher, broadcaster)

		assert.NoError(t, srv.Set(context.Background(), []int{6}))
	})

	t.Run("stores a list as text", func(t *testing.T) {
		store := mocks.NewMockSettingsSettingsStore(t)
		store.On("Merge", mock.Anything, "Global/settings", map[string]any{"collectionIntervalHour": "1,12"}).Return(nil)

		srv := settings.NewSettingsService(testLogger(), store, nil, nil)

		assert.NoError(t, srv.Set(context.Background(), []int{1, 12}))
	})

	t.Run("rejects out of range values without writing", func(t *testing.T) {
		store := mocks.NewMockSettingsSettingsStore(t)
		srv := settings.NewSettingsService(testLogger(), store, nil, nil)

		err := srv.Set(context.Background(), []int{0})

		assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
	})

	t.Run("a failed broadcast does not fail the update", func(t *testing.T) {
		store := mocks.NewMockSettingsSettingsStore(t)
		broadcaster := mocks.NewMockSettingsIntervalBroadcaster(t)
		store.On("Merge", mock.Anything, "Global/settings", mock.Anything).Return(nil)
		broadcaster.On("PublishInterval", mock.Anything, []int{3}).Return(fmt.Errorf("broker down"))

		srv := settings.NewSettingsService(testLogger(), store, nil, broadcaster)

		assert.NoError(t, srv.Set(context.Background(), []int{3}))
	})

	t.Run("store failure", func(t *testing.T) {
		store := mocks.NewMockSettingsSettingsStore(t)
		store.On("Merge", mock.Anything, "Global/settings", mock.Anything).Return(fmt.Errorf("readonly"))

		srv := settings.NewSettingsService(testLogger(), store, nil, nil)

		assert.Error(t, srv.Set(context.Background(), []int{3}))
	})
}

func Test_SettingsService_Broadcast(t *testing.T) {
	store := mocks.NewMockSettingsSettingsStore(t)
	broadcaster := mocks.NewMockSettingsIntervalBroadcaster(t)
	store.On("Get", mock.Anything, "Global/settings").Return(models.Document{Fields: map[string]any{"collectionIntervalHour": float64(4)}}, nil)
	broadcaster.On("PublishInterval", mock.Anything, []int{4}).Return(nil)

	srv := settings.NewSettingsService(testLogger(), store, nil, broadcaster)

	assert.NoError(t, srv.Broadcast(context.Background()))
}
