package schedule

import (
	"fmt"

	"github.com/wheelibin/glasshouse/internal/models"
)

// Interval is a half open time of day range [Start, End)
type Interval struct {
	Start HHMM `json:"start_time"`
	End   HHMM `json:"end_time"`
}

// DurationMinutes may be negative when end precedes start, callers must reject
// non-positive durations before using them
func DurationMinutes(start HHMM, end HHMM) int {
	return end.MinutesSinceMidnight() - start.MinutesSinceMidnight()
}

func (i Interval) DurationMinutes() int {
	return DurationMinutes(i.Start, i.End)
}

// Overlaps compares the raw HHMM integers rather than minutes since midnight.
// This only holds for valid HHMM values, where the encoding is monotonic with
// the time of day; validate both intervals before relying on it.
func Overlaps(a Interval, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i, other)
}

func (i Interval) Validate() error {
	if !IsValid(i.Start) {
		return fmt.Errorf("%w: start time %d: %w", models.ErrInvalidInterval, i.Start, models.ErrInvalidTimeEncoding)
	}
	if !IsValid(i.End) {
		return fmt.Errorf("%w: end time %d: %w", models.ErrInvalidInterval, i.End, models.ErrInvalidTimeEncoding)
	}
	if i.Start >= i.End {
		return fmt.Errorf("%w: start time must be less than end time", models.ErrInvalidInterval)
	}
	return nil
}

// FormatDuration renders a number of minutes as "2h 30m" or "45m"
func FormatDuration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
