package glasshouse

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/glasshouse/internal/ingest"
	"github.com/wheelibin/glasshouse/internal/models"
)

type ScheduleLoader interface {
	Load(ctx context.Context) error
}

type ReadingSource interface {
	// forwards device readings to the channel until unsubscribed
	SubscribeReadings(messages chan<- ingest.Message) error
	UnsubscribeReadings()
}

type ReadingHandler interface {
	HandleMessage(ctx context.Context, msg ingest.Message) error
}

type SettingsBroadcaster interface {
	// resends the stored polling interval to the devices
	Broadcast(ctx context.Context) error
}

type Glasshouse struct {
	logger            *log.Logger
	schedules         ScheduleLoader
	source            ReadingSource
	handler           ReadingHandler
	settings          SettingsBroadcaster
	broadcastInterval time.Duration
}

func NewGlasshouse(
	logger *log.Logger,
	schedules ScheduleLoader,
	source ReadingSource,
	handler ReadingHandler,
	settings SettingsBroadcaster,
	broadcastInterval time.Duration,
) *Glasshouse {
	return &Glasshouse{
		logger:            logger,
		schedules:         schedules,
		source:            source,
		handler:           handler,
		settings:          settings,
		broadcastInterval: broadcastInterval,
	}
}

// Initialise builds the schedule index from the document store
func (g *Glasshouse) Initialise(ctx context.Context) error {
	g.logger.Debug("Glasshouse.Initialise")
	return g.schedules.Load(ctx)
}

func (g *Glasshouse) Run(ctx context.Context) error {
	g.logger.Debug("Glasshouse.Run")

	// start listening to device readings
	messages := make(chan ingest.Message, 64)
	if err := g.source.SubscribeReadings(messages); err != nil {
		return err
	}
	defer g.source.UnsubscribeReadings()

	broadcastTimer := time.NewTicker(g.broadcastInterval)
	defer broadcastTimer.Stop()

	// devices that connected while we were down get the interval straight away
	go g.broadcast(ctx)

	// start the main application loop
	for {
		select {
		case <-ctx.Done():
			g.logger.Info("Glasshouse.Run: stop signal received")
			return nil

		case msg := <-messages:
			g.logger.Debug("Glasshouse.Run: Received reading", "topic", msg.Topic)
			if err := g.handler.HandleMessage(ctx, msg); err != nil {
				g.logger.Warn("Unable to store reading", "topic", msg.Topic, "err", err)
			}

		case t := <-broadcastTimer.C:
			g.logger.Debug("Glasshouse.Run: broadcasting polling interval...", "t", t)
			go g.broadcast(ctx)
		}
	}
}

func (g *Glasshouse) broadcast(ctx context.Context) {
	err := g.settings.Broadcast(ctx)
	switch {
	case errors.Is(err, models.ErrNotFound):
		g.logger.Debug("No polling interval stored yet, nothing to broadcast")
	case err != nil:
		g.logger.Error(err)
	}
}
