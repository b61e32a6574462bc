package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/wheelibin/glasshouse/internal/constants"
	"github.com/wheelibin/glasshouse/internal/models"
)

// ParsePollingInterval reads operator input for the collection interval, a
// single hour count ("6") or a comma separated list ("1,6,12"). Each value
// must be within 1..24.
func ParsePollingInterval(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty polling interval: %w", models.ErrInvalidConfiguration)
	}

	hours := []int{}
	for _, part := range strings.Split(s, ",") {
		h, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("polling interval %q is not a whole number: %w", part, models.ErrInvalidConfiguration)
		}
		hours = append(hours, h)
	}
	if err := ValidatePollingInterval(hours); err != nil {
		return nil, err
	}
	return hours, nil
}

func ValidatePollingInterval(hours []int) error {
	if len(hours) == 0 {
		return fmt.Errorf("no polling interval given: %w", models.ErrInvalidConfiguration)
	}
	for _, h := range hours {
		if h < constants.MinPollingIntervalHours || h > constants.MaxPollingIntervalHours {
			return fmt.Errorf("polling interval %d must be between %d and %d: %w",
				h, constants.MinPollingIntervalHours, constants.MaxPollingIntervalHours, models.ErrInvalidConfiguration)
		}
	}
	return nil
}

func FormatPollingInterval(hours []int) string {
	return strings.Join(lo.Map(hours, func(h int, _ int) string { return strconv.Itoa(h) }), ",")
}

// decodeStoredInterval reads collectionIntervalHour, stored as a number when
// there is a single value and as text otherwise
func decodeStoredInterval(fields map[string]any) ([]int, error) {
	if h, ok := models.Int(fields, constants.FieldCollectionIntervalHour); ok {
		return []int{h}, ValidatePollingInterval([]int{h})
	}
	v, ok := fields[constants.FieldCollectionIntervalHour]
	if !ok || v == nil {
		return nil, fmt.Errorf("%s is missing: %w", constants.FieldCollectionIntervalHour, models.ErrNotFound)
	}
	if s, ok := v.(string); ok {
		return ParsePollingInterval(s)
	}
	return nil, fmt.Errorf("stored %s %v is not a whole number of hours: %w", constants.FieldCollectionIntervalHour, v, models.ErrInvalidConfiguration)
}

func encodeStoredInterval(hours []int) any {
	if len(hours) == 1 {
		return hours[0]
	}
	return FormatPollingInterval(hours)
}
