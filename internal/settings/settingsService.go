package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/glasshouse/internal/constants"
	"github.com/wheelibin/glasshouse/internal/models"
)

type settingsStore interface {
	Get(ctx context.Context, docPath string) (models.Document, error)
	Merge(ctx context.Context, docPath string, fields map[string]any) error
}

type eventPublisher interface {
	Publish(event models.Event)
}

type intervalBroadcaster interface {
	PublishInterval(ctx context.Context, hours []int) error
}

type SettingsService struct {
	logger      *log.Logger
	store       settingsStore
	publisher   eventPublisher
	broadcaster intervalBroadcaster
}

func NewSettingsService(logger *log.Logger, store settingsStore, publisher eventPublisher, broadcaster intervalBroadcaster) *SettingsService {
	return &SettingsService{logger: logger, store: store, publisher: publisher, broadcaster: broadcaster}
}

func settingsPath() string {
	return strings.Join([]string{constants.CollectionGlobal, constants.GlobalSettingsDocID}, "/")
}

// Get returns the configured collection interval in hours
func (s *SettingsService) Get(ctx context.Context) ([]int, error) {
	doc, err := s.store.Get(ctx, settingsPath())
	if err != nil {
		return nil, err
	}
	return decodeStoredInterval(doc.Fields)
}

// Set validates and stores a new collection interval, then tells the devices
func (s *SettingsService) Set(ctx context.Context, hours []int) error {
	if err := ValidatePollingInterval(hours); err != nil {
		return err
	}

	err := s.store.Merge(ctx, settingsPath(), map[string]any{
		constants.FieldCollectionIntervalHour: encodeStoredInterval(hours),
	})
	if err != nil {
		return fmt.Errorf("Error storing polling interval: %w", err)
	}
	s.logger.Info("Polling interval updated", "hours", FormatPollingInterval(hours))

	// the stored value is what counts, devices pick it up on the next broadcast
	if err := s.broadcast(ctx, hours); err != nil {
		s.logger.Warn("Unable to broadcast polling interval", "err", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(models.Event{
			Type:    constants.EventTypeIntervalChanged,
			Payload: hours,
			Time:    time.Now(),
		})
	}
	return nil
}

// Broadcast resends the stored interval to the devices
func (s *SettingsService) Broadcast(ctx context.Context) error {
	hours, err := s.Get(ctx)
	if err != nil {
		return err
	}
	return s.broadcast(ctx, hours)
}

func (s *SettingsService) broadcast(ctx context.Context, hours []int) error {
	if s.broadcaster == nil {
		return nil
	}
	return s.broadcaster.PublishInterval(ctx, hours)
}
