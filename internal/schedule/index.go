package schedule

import (
	"sort"

	"github.com/samber/lo"
)

// Index holds the schedule records of every light device in memory.
// Records keep the order they were inserted in. Not safe for concurrent use,
// the ScheduleService guards it.
type Index struct {
	devices map[string]*deviceRecords
}

type deviceRecords struct {
	order     []string
	intervals map[string]Interval
	// ids of stored documents that could not be read as records
	reserved map[string]struct{}
}

func NewIndex() *Index {
	return &Index{devices: map[string]*deviceRecords{}}
}

func (idx *Index) EnsureDevice(device string) {
	if _, ok := idx.devices[device]; !ok {
		idx.devices[device] = &deviceRecords{intervals: map[string]Interval{}, reserved: map[string]struct{}{}}
	}
}

func (idx *Index) HasDevice(device string) bool {
	_, ok := idx.devices[device]
	return ok
}

// Devices returns the device ids sorted alphabetically
func (idx *Index) Devices() []string {
	devices := lo.Keys(idx.devices)
	sort.Strings(devices)
	return devices
}

func (idx *Index) Records(device string) []ScheduleRecord {
	d, ok := idx.devices[device]
	if !ok {
		return nil
	}
	return lo.Map(d.order, func(id string, _ int) ScheduleRecord {
		return ScheduleRecord{ID: id, Interval: d.intervals[id]}
	})
}

func (idx *Index) Get(device string, id string) (ScheduleRecord, bool) {
	d, ok := idx.devices[device]
	if !ok {
		return ScheduleRecord{}, false
	}
	interval, ok := d.intervals[id]
	if !ok {
		return ScheduleRecord{}, false
	}
	return ScheduleRecord{ID: id, Interval: interval}, true
}

// Set inserts the record, or replaces it in place when the id already exists
func (idx *Index) Set(device string, record ScheduleRecord) {
	idx.EnsureDevice(device)
	d := idx.devices[device]
	if _, exists := d.intervals[record.ID]; !exists {
		d.order = append(d.order, record.ID)
	}
	d.intervals[record.ID] = record.Interval
}

func (idx *Index) Remove(device string, id string) (ScheduleRecord, bool) {
	record, ok := idx.Get(device, id)
	if !ok {
		return ScheduleRecord{}, false
	}
	d := idx.devices[device]
	delete(d.intervals, id)
	d.order = lo.Without(d.order, id)
	return record, true
}

// Reserve keeps id from being handed out again without adding a record for it
func (idx *Index) Reserve(device string, id string) {
	idx.EnsureDevice(device)
	idx.devices[device].reserved[id] = struct{}{}
}

// NextID returns the next free id for the device, counting reserved ids
func (idx *Index) NextID(device string) string {
	taken := idx.Records(device)
	if d, ok := idx.devices[device]; ok {
		for id := range d.reserved {
			taken = append(taken, ScheduleRecord{ID: id})
		}
	}
	return NextID(taken)
}
