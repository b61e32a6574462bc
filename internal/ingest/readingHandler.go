package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/wheelibin/glasshouse/internal/aggregate"
	"github.com/wheelibin/glasshouse/internal/constants"
	"github.com/wheelibin/glasshouse/internal/models"
)

type readingStore interface {
	Put(ctx context.Context, docPath string, fields map[string]any) error
	Merge(ctx context.Context, docPath string, fields map[string]any) error
}

type eventPublisher interface {
	Publish(event models.Event)
}

// ReadingHandler stores readings published by the sensor devices
type ReadingHandler struct {
	logger    *log.Logger
	store     readingStore
	publisher eventPublisher
	now       func() time.Time
}

func NewReadingHandler(logger *log.Logger, store readingStore, publisher eventPublisher) *ReadingHandler {
	return &ReadingHandler{logger: logger, store: store, publisher: publisher, now: time.Now}
}

// ParseReadingTopic reads the source and device from a topic of the form
// <prefix>/<source>/<device>/readings
func ParseReadingTopic(topic string) (source string, device string, ok bool) {
	parts := strings.Split(topic, "/")
	if len(parts) < 3 || parts[len(parts)-1] != constants.TopicReadingsSuffix {
		return "", "", false
	}
	return parts[len(parts)-3], parts[len(parts)-2], true
}

func (h *ReadingHandler) HandleMessage(ctx context.Context, msg Message) error {
	var reading models.ReadingMessage
	if err := json.Unmarshal(msg.Payload, &reading); err != nil {
		return fmt.Errorf("Error decoding reading on (%s): %w", msg.Topic, err)
	}

	if topicSource, topicDevice, ok := ParseReadingTopic(msg.Topic); ok {
		if reading.Source == "" {
			reading.Source = topicSource
		}
		if reading.DeviceID == "" {
			reading.DeviceID = topicDevice
		}
	}

	source, err := aggregate.ParseSource(reading.Source)
	if err != nil {
		return err
	}
	if reading.DeviceID == "" || strings.Contains(reading.DeviceID, "/") {
		return fmt.Errorf("invalid device id %q on (%s)", reading.DeviceID, msg.Topic)
	}
	if reading.DateTime.IsZero() {
		reading.DateTime = h.now()
	}

	fields := map[string]any{
		constants.FieldDateTime: reading.DateTime.UTC().Format(time.RFC3339Nano),
	}
	for _, metric := range source.Metrics() {
		if v, ok := reading.Fields[metric]; ok {
			fields[metric] = v
		}
	}

	id := uuid.NewString()
	devicePath := strings.Join([]string{string(source), reading.DeviceID}, "/")
	if err := h.store.Put(ctx, strings.Join([]string{devicePath, constants.SubCollectionData, id}, "/"), fields); err != nil {
		return fmt.Errorf("Error storing reading from %s: %w", reading.DeviceID, err)
	}
	err = h.store.Merge(ctx, devicePath, map[string]any{
		"id":                    reading.DeviceID,
		constants.FieldActive:   true,
		constants.FieldLastSeen: h.now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		h.logger.Warn("Unable to update device status", "device", reading.DeviceID, "err", err)
	}

	h.logger.Debug("Reading stored", "source", source, "device", reading.DeviceID, "id", id)
	if h.publisher != nil {
		h.publisher.Publish(models.Event{
			Type:     constants.EventTypeReadingStored,
			DeviceID: reading.DeviceID,
			RecordID: id,
			Payload:  fields,
			Time:     h.now(),
		})
	}
	return nil
}
