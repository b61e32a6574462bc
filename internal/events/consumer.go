package events

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	sse "github.com/r3labs/sse/v2"
	"github.com/wheelibin/glasshouse/internal/constants"
	"github.com/wheelibin/glasshouse/internal/models"
)

// Consumer follows the event stream of a running daemon
type Consumer struct {
	Logger *log.Logger

	client       *sse.Client
	eventChannel chan *sse.Event
}

func NewConsumer(logger *log.Logger) *Consumer {
	return &Consumer{Logger: logger}
}

// Subscribe connects to url using httpClient (which carries the session
// cookie) and sends every received event to eventChannel
func (c *Consumer) Subscribe(url string, httpClient *http.Client, eventChannel chan *sse.Event) error {

	c.eventChannel = eventChannel
	c.client = sse.NewClient(url)
	if httpClient != nil {
		c.client.Connection = httpClient
	}

	c.client.OnConnect(func(_ *sse.Client) {
		c.Logger.Info("Connected to glasshouse, listening for events...")
	})
	c.client.OnDisconnect(func(_ *sse.Client) {
		c.Logger.Info("Disconnected from glasshouse")
	})

	return c.client.SubscribeChan(constants.EventStream, c.eventChannel)
}

func (c *Consumer) Unsubscribe() {
	c.Logger.Debug("Unsubscribe events")
	if c.client != nil {
		c.client.Unsubscribe(c.eventChannel)
	}
}

// Decode reads the event carried by a stream message
func Decode(msg *sse.Event) (models.Event, error) {
	var event models.Event
	err := json.Unmarshal(msg.Data, &event)
	return event, err
}
