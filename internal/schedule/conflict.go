package schedule

import (
	"strconv"

	"github.com/samber/lo"
)

type ScheduleRecord struct {
	ID string `json:"id"`
	Interval
}

// HasConflict reports whether candidate overlaps any of the existing records.
// The record with id excludeID (if not empty) is skipped, so an edited record
// is never compared against itself. The candidate must already be validated.
func HasConflict(existing []ScheduleRecord, candidate Interval, excludeID string) bool {
	_, found := FirstConflict(existing, candidate, excludeID)
	return found
}

// FirstConflict walks existing in order and returns the first overlapping record
func FirstConflict(existing []ScheduleRecord, candidate Interval, excludeID string) (ScheduleRecord, bool) {
	for _, record := range existing {
		if excludeID != "" && record.ID == excludeID {
			continue
		}
		if Overlaps(record.Interval, candidate) {
			return record, true
		}
	}
	return ScheduleRecord{}, false
}

// NextID returns max(numeric ids) + 1, or "1" when there are none
func NextID(existing []ScheduleRecord) string {
	ids := lo.FilterMap(existing, func(r ScheduleRecord, _ int) (int, bool) {
		id, err := strconv.Atoi(r.ID)
		return id, err == nil
	})
	if len(ids) == 0 {
		return "1"
	}
	return strconv.Itoa(lo.Max(ids) + 1)
}
