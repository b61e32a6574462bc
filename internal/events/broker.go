package events

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	sse "github.com/r3labs/sse/v2"
	"github.com/wheelibin/glasshouse/internal/constants"
	"github.com/wheelibin/glasshouse/internal/models"
)

// Broker fans change events out to every connected dashboard over server
// sent events
type Broker struct {
	logger *log.Logger
	server *sse.Server
}

func NewBroker(logger *log.Logger) *Broker {
	server := sse.New()
	server.AutoReplay = false
	server.CreateStream(constants.EventStream)
	return &Broker{logger: logger, server: server}
}

func (b *Broker) Publish(event models.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Unable to encode event", "type", event.Type, "err", err)
		return
	}
	b.logger.Debug("Publishing event", "type", event.Type, "device", event.DeviceID)
	b.server.Publish(constants.EventStream, &sse.Event{
		Event: []byte(event.Type),
		Data:  data,
	})
}

// ServeHTTP streams events until the client goes away. Every client gets the
// single updates stream whatever it asks for.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	q.Set("stream", constants.EventStream)
	r.URL.RawQuery = q.Encode()
	b.server.ServeHTTP(w, r)
}

func (b *Broker) Close() {
	b.server.Close()
}
