package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wheelibin/glasshouse/internal/models"
	"github.com/wheelibin/glasshouse/internal/schedule"
)

func Test_DurationMinutes(t *testing.T) {
	assert.Equal(t, 360, schedule.DurationMinutes(800, 1400))
	// callers must reject this one
	assert.Equal(t, -360, schedule.DurationMinutes(1400, 800))
	assert.Equal(t, 90, schedule.Interval{Start: 830, End: 1000}.DurationMinutes())
	assert.Equal(t, 0, schedule.DurationMinutes(1200, 1200))
}

func Test_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        schedule.Interval
		b        schedule.Interval
		expected bool
	}{
		{name: "partial overlap", a: schedule.Interval{Start: 800, End: 1000}, b: schedule.Interval{Start: 900, End: 1100}, expected: true},
		{name: "touching boundary", a: schedule.Interval{Start: 800, End: 1000}, b: schedule.Interval{Start: 1000, End: 1200}, expected: false},
		{name: "disjoint", a: schedule.Interval{Start: 800, End: 1000}, b: schedule.Interval{Start: 1100, End: 1200}, expected: false},
		{name: "contained", a: schedule.Interval{Start: 800, End: 1800}, b: schedule.Interval{Start: 1200, End: 1230}, expected: true},
		{name: "identical", a: schedule.Interval{Start: 800, End: 1000}, b: schedule.Interval{Start: 800, End: 1000}, expected: true},
	}

	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, schedule.Overlaps(c.a, c.b))
			assert.Equal(t, c.expected, c.b.Overlaps(c.a), "overlap is symmetric")
		})
	}
}

func Test_Validate(t *testing.T) {
	tests := []struct {
		name     string
		interval schedule.Interval
		errs     []error
	}{
		{name: "valid", interval: schedule.Interval{Start: 800, End: 1400}},
		{name: "start after end", interval: schedule.Interval{Start: 1400, End: 800}, errs: []error{models.ErrInvalidInterval}},
		{name: "zero length", interval: schedule.Interval{Start: 800, End: 800}, errs: []error{models.ErrInvalidInterval}},
		{name: "malformed start", interval: schedule.Interval{Start: 1075, End: 1200}, errs: []error{models.ErrInvalidInterval, models.ErrInvalidTimeEncoding}},
		{name: "malformed end", interval: schedule.Interval{Start: 800, End: 2400}, errs: []error{models.ErrInvalidInterval, models.ErrInvalidTimeEncoding}},
	}

	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			err := c.interval.Validate()
			if len(c.errs) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, expected := range c.errs {
				assert.ErrorIs(t, err, expected)
			}
		})
	}
}

func Test_FormatDuration(t *testing.T) {
	assert.Equal(t, "6h 0m", schedule.FormatDuration(360))
	assert.Equal(t, "2h 30m", schedule.FormatDuration(150))
	assert.Equal(t, "45m", schedule.FormatDuration(45))
	assert.Equal(t, "0m", schedule.FormatDuration(0))
}
