package schedule

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/glasshouse/internal/constants"
	"github.com/wheelibin/glasshouse/internal/models"
)

type scheduleStore interface {
	List(ctx context.Context, collectionPath string) ([]models.Document, error)
	Put(ctx context.Context, docPath string, fields map[string]any) error
	Delete(ctx context.Context, docPath string) error
}

type eventPublisher interface {
	Publish(event models.Event)
}

type ScheduleService struct {
	logger    *log.Logger
	store     scheduleStore
	publisher eventPublisher
	policy    FormatPolicy

	mu    sync.RWMutex
	index *Index
}

func NewScheduleService(logger *log.Logger, store scheduleStore, publisher eventPublisher, policy FormatPolicy) *ScheduleService {
	return &ScheduleService{
		logger:    logger,
		store:     store,
		publisher: publisher,
		policy:    policy,
		index:     NewIndex(),
	}
}

func devicePath(device string) string {
	return strings.Join([]string{constants.CollectionLighting, device}, "/")
}

func recordsPath(device string) string {
	return strings.Join([]string{constants.CollectionLighting, device, constants.SubCollectionData}, "/")
}

func recordPath(device string, id string) string {
	return strings.Join([]string{recordsPath(device), id}, "/")
}

// Load reads every light device and its schedule records into the index,
// replacing whatever was held before
func (s *ScheduleService) Load(ctx context.Context) error {
	devices, err := s.store.List(ctx, constants.CollectionLighting)
	if err != nil {
		return fmt.Errorf("Error listing light devices: %w", err)
	}

	index := NewIndex()
	for _, device := range devices {
		index.EnsureDevice(device.ID)

		docs, err := s.store.List(ctx, recordsPath(device.ID))
		if err != nil {
			return fmt.Errorf("Error listing schedules for %s: %w", device.ID, err)
		}
		for _, doc := range docs {
			record, ok := recordFromDocument(doc)
			if !ok {
				s.logger.Warn("Skipping malformed schedule record", "device", device.ID, "id", doc.ID, "fields", doc.Fields)
				index.Reserve(device.ID, doc.ID)
				continue
			}
			index.Set(device.ID, record)
		}
	}

	s.mu.Lock()
	s.index = index
	s.mu.Unlock()

	s.logger.Info("Loaded light schedules", "devices", len(devices))
	return nil
}

func recordFromDocument(doc models.Document) (ScheduleRecord, bool) {
	start, okStart := models.Int(doc.Fields, constants.FieldStartTime)
	end, okEnd := models.Int(doc.Fields, constants.FieldEndTime)
	if !okStart || !okEnd {
		return ScheduleRecord{}, false
	}
	return ScheduleRecord{ID: doc.ID, Interval: Interval{Start: HHMM(start), End: HHMM(end)}}, true
}

func (s *ScheduleService) Devices() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Devices()
}

func (s *ScheduleService) HasDevice(device string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.HasDevice(device)
}

func (s *ScheduleService) List(device string) []ScheduleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Records(device)
}

// Add validates the interval, checks it against the device's other records and
// stores it under the next free id. The stored record is returned.
func (s *ScheduleService) Add(ctx context.Context, device string, interval Interval) (ScheduleRecord, error) {
	if err := interval.Validate(); err != nil {
		return ScheduleRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.index.Records(device)
	if conflict, found := FirstConflict(existing, interval, ""); found {
		return ScheduleRecord{}, fmt.Errorf("%w (record %s, %s - %s)", models.ErrScheduleConflict, conflict.ID, conflict.Start, conflict.End)
	}

	if !s.index.HasDevice(device) {
		if err := s.store.Put(ctx, devicePath(device), map[string]any{}); err != nil {
			return ScheduleRecord{}, fmt.Errorf("Error creating light device %s: %w", device, err)
		}
		s.index.EnsureDevice(device)
	}

	record := ScheduleRecord{ID: s.index.NextID(device), Interval: interval}
	if err := s.store.Put(ctx, recordPath(device, record.ID), recordFields(interval)); err != nil {
		return ScheduleRecord{}, fmt.Errorf("Error storing schedule: %w", err)
	}
	s.index.Set(device, record)

	s.logger.Info("Schedule added", "device", device, "id", record.ID, "start", record.Start, "end", record.End)
	s.publish(constants.EventTypeScheduleAdded, device, record)
	return record, nil
}

// Edit replaces the interval of an existing record. The record is not compared
// against itself when checking for conflicts.
func (s *ScheduleService) Edit(ctx context.Context, device string, id string, interval Interval) (ScheduleRecord, error) {
	if err := interval.Validate(); err != nil {
		return ScheduleRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index.Get(device, id); !ok {
		return ScheduleRecord{}, fmt.Errorf("schedule %s for %s: %w", id, device, models.ErrNotFound)
	}

	if conflict, found := FirstConflict(s.index.Records(device), interval, id); found {
		return ScheduleRecord{}, fmt.Errorf("%w (record %s, %s - %s)", models.ErrScheduleConflict, conflict.ID, conflict.Start, conflict.End)
	}

	record := ScheduleRecord{ID: id, Interval: interval}
	if err := s.store.Put(ctx, recordPath(device, id), recordFields(interval)); err != nil {
		return ScheduleRecord{}, fmt.Errorf("Error updating schedule: %w", err)
	}
	s.index.Set(device, record)

	s.logger.Info("Schedule edited", "device", device, "id", id, "start", record.Start, "end", record.End)
	s.publish(constants.EventTypeScheduleEdited, device, record)
	return record, nil
}

// Delete removes the record and returns it as it was before removal
func (s *ScheduleService) Delete(ctx context.Context, device string, id string) (ScheduleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.index.Get(device, id)
	if !ok {
		return ScheduleRecord{}, fmt.Errorf("schedule %s for %s: %w", id, device, models.ErrNotFound)
	}

	if err := s.store.Delete(ctx, recordPath(device, id)); err != nil {
		return ScheduleRecord{}, fmt.Errorf("Error deleting schedule: %w", err)
	}
	s.index.Remove(device, id)

	s.logger.Info("Schedule deleted", "device", device, "id", id)
	s.publish(constants.EventTypeScheduleDeleted, device, record)
	return record, nil
}

// View builds the display rows for a device, formatting times with the
// configured policy. Values that cannot be formatted are shown raw and logged.
func (s *ScheduleService) View(device string) []models.ScheduleView {
	return lo.Map(s.List(device), func(r ScheduleRecord, _ int) models.ScheduleView {
		return s.ViewRecord(device, r)
	})
}

func (s *ScheduleService) ViewRecord(device string, r ScheduleRecord) models.ScheduleView {
	duration := r.DurationMinutes()
	return models.ScheduleView{
		ID:              r.ID,
		StartTime:       int(r.Start),
		EndTime:         int(r.End),
		Start:           s.format(device, r.ID, r.Start),
		End:             s.format(device, r.ID, r.End),
		DurationMinutes: duration,
		Duration:        FormatDuration(duration),
	}
}

func (s *ScheduleService) Lights() []models.LightDevice {
	return lo.Map(s.Devices(), func(device string, _ int) models.LightDevice {
		return models.LightDevice{ID: device, Schedules: s.View(device)}
	})
}

func (s *ScheduleService) format(device string, id string, v HHMM) string {
	formatted, err := FormatWithPolicy(v, s.policy)
	if err != nil {
		s.logger.Warn("Unable to format stored schedule time", "device", device, "id", id, "value", int(v), "err", err)
		return fmt.Sprintf("%d", int(v))
	}
	if !IsValid(v) {
		s.logger.Warn("Stored schedule time is malformed", "device", device, "id", id, "value", int(v))
	}
	return formatted
}

func (s *ScheduleService) publish(eventType string, device string, record ScheduleRecord) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(models.Event{
		Type:     eventType,
		DeviceID: device,
		RecordID: record.ID,
		Payload:  record,
		Time:     time.Now(),
	})
}

func recordFields(interval Interval) map[string]any {
	return map[string]any{
		constants.FieldStartTime: int(interval.Start),
		constants.FieldEndTime:   int(interval.End),
	}
}
