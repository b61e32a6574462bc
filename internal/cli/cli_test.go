package cli_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelibin/glasshouse/internal/cli"
	"github.com/wheelibin/glasshouse/internal/models"
	"github.com/wheelibin/glasshouse/internal/repos"
)

type testEnv struct {
	configPath string
	dbPath     string
}

func newTestEnv(t *testing.T) testEnv {
	color.NoColor = true

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "glasshouse.db")
	configPath := filepath.Join(dir, "config.json")
	contents := fmt.Sprintf(`{"databasePath": %q, "snapshotDir": %q}`, dbPath, filepath.Join(dir, "snapshots"))
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0o600))

	return testEnv{configPath: configPath, dbPath: dbPath}
}

func (e testEnv) run(args ...string) (string, error) {
	app := cli.NewApp(log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel}))
	defer app.Close()

	out := &bytes.Buffer{}
	app.SetOut(out)
	app.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := app.Execute()
	return out.String(), err
}

func Test_Version(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("version")

	require.NoError(t, err)
	assert.Equal(t, "glasshouse dev\n", out)
}

func Test_Schedule(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("schedule", "add", "led1", "0800", "14:30")
	require.NoError(t, err)
	assert.Equal(t, "Added schedule #1 to led1: 8:00 AM - 2:30 PM (6h 30m)\n", out)

	out, err = env.run("schedule", "add", "led1", "1400", "1500")
	assert.ErrorIs(t, err, models.ErrScheduleConflict)
	assert.Contains(t, out, "overlaps")

	_, err = env.run("schedule", "add", "led1", "2500", "2600")
	assert.ErrorIs(t, err, models.ErrInvalidTimeEncoding)

	out, err = env.run("schedule", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "led1")
	assert.Contains(t, out, "8:00 AM")
	assert.Contains(t, out, "6h 30m")

	out, err = env.run("schedule", "edit", "led1", "1", "0700", "0900")
	require.NoError(t, err)
	assert.Equal(t, "Updated schedule #1 on led1: 7:00 AM - 9:00 AM (2h 0m)\n", out)

	_, err = env.run("schedule", "list", "led2")
	assert.ErrorIs(t, err, models.ErrNotFound)

	out, err = env.run("schedule", "delete", "led1", "1")
	require.NoError(t, err)
	assert.Equal(t, "Deleted schedule #1 from led1 (7:00 AM - 9:00 AM)\n", out)

	out, err = env.run("schedule", "list", "led1")
	require.NoError(t, err)
	assert.Contains(t, out, "no schedules")
}

func Test_Interval(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("interval", "get")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = env.run("interval", "set", "0")
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)

	out, err := env.run("interval", "set", "1,6")
	require.NoError(t, err)
	assert.Contains(t, out, "Collection interval set to 1,6")

	out, err = env.run("interval", "get")
	require.NoError(t, err)
	assert.Equal(t, "1,6\n", out)
}

func Test_Data(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("data", "--set=40", "--start=2024-01-01T00:00:00Z", "--end=2024-01-02T00:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "No Data")

	db, err := repos.OpenDB(env.dbPath)
	require.NoError(t, err)
	repo, err := repos.NewDocumentRepo(log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel}), db)
	require.NoError(t, err)
	require.NoError(t, repo.Put(context.Background(), "Soil/soil_40/Data/r1", map[string]any{"date_time": "2024-01-01T07:00:00Z", "pH": 6}))
	require.NoError(t, db.Close())

	out, err = env.run("data", "--set=40", "--start=2024-01-01T00:00:00Z", "--end=2024-01-02T00:00:00Z", "--policy=exclude")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-01 00:00")
	assert.Contains(t, out, "Soil: pH=6.00")
	assert.Contains(t, out, "DHT22: No Data")

	_, err = env.run("data", "--set=40", "--start=2024-01-01", "--end=2024-01-02", "--groups=0")
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
}

func Test_DataRejectsGroupsBeforeOpeningTheStore(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	// the database path sits under a regular file, so opening the store fails
	contents := fmt.Sprintf(`{"databasePath": %q}`, filepath.Join(configPath, "glasshouse.db"))
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0o600))
	env := testEnv{configPath: configPath}

	_, err := env.run("data", "--set=40", "--start=2024-01-01", "--end=2024-01-02", "--groups=0")
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)

	_, err = env.run("data", "--set=40", "--start=2024-01-02", "--end=2024-01-01")
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)

	_, err = env.run("data", "--set=40", "--start=2024-01-01", "--end=2024-01-02")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrInvalidConfiguration)
}

func Test_Readings(t *testing.T) {
	env := newTestEnv(t)

	db, err := repos.OpenDB(env.dbPath)
	require.NoError(t, err)
	repo, err := repos.NewDocumentRepo(log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel}), db)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, "Soil/soil_40/Data/b", map[string]any{"date_time": "2024-01-01T12:00:00Z", "pH": 6.5}))
	require.NoError(t, repo.Put(ctx, "Soil/soil_40/Data/a", map[string]any{"date_time": "2024-01-01T08:00:00Z", "pH": 6.1, "EC": 1.2}))
	require.NoError(t, db.Close())

	out, err := env.run("readings", "soil", "soil_40", "--start=2024-01-01T00:00:00Z", "--end=2024-01-02T00:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "Soil soil_40")
	assert.Contains(t, out, "6.10")
	assert.Less(t, strings.Index(out, "6.10"), strings.Index(out, "6.50"))

	out, err = env.run("readings", "dht22", "dht22_0", "--start=2024-01-01T00:00:00Z", "--end=2024-01-02T00:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "No Data")

	_, err = env.run("readings", "rain", "gauge", "--start=2024-01-01", "--end=2024-01-02")
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
}
