package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/wheelibin/glasshouse/internal/constants"
	"github.com/wheelibin/glasshouse/internal/settings"
)

type MQTTConfig struct {
	BrokerURL     string        `mapstructure:"brokerUrl"`
	ClientID      string        `mapstructure:"clientId"`
	Username      string        `mapstructure:"username"`
	Password      string        `mapstructure:"password"`
	TopicPrefix   string        `mapstructure:"topicPrefix"`
	QoS           byte          `mapstructure:"qos"`
	MaxRetries    int           `mapstructure:"maxRetries"`
	RetryInterval time.Duration `mapstructure:"retryInterval"`
}

// Message is a payload received on a readings topic
type Message struct {
	Topic   string
	Payload []byte
}

type MQTTClient struct {
	logger *log.Logger
	cfg    MQTTConfig
	client mqtt.Client
}

func NewMQTTClient(logger *log.Logger, cfg MQTTConfig) *MQTTClient {
	opts := mqtt.NewClientOptions().AddBroker(cfg.BrokerURL)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		logger.Info("Connected to MQTT broker", "broker", cfg.BrokerURL)
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("Lost connection to MQTT broker", "err", err)
	})

	return &MQTTClient{logger: logger, cfg: cfg, client: mqtt.NewClient(opts)}
}

// Connect retries until the broker accepts the connection, MaxRetries is
// reached or ctx is done
func (c *MQTTClient) Connect(ctx context.Context) error {
	retries := 0
	for {
		token := c.client.Connect()
		if token.WaitTimeout(c.cfg.RetryInterval) && token.Error() == nil {
			return nil
		}

		retries++
		c.logger.Warn("Failed to connect to MQTT broker",
			"attempt", retries, "maxRetries", c.cfg.MaxRetries, "err", token.Error(), "retryIn", c.cfg.RetryInterval)
		if retries >= c.cfg.MaxRetries {
			return fmt.Errorf("Error connecting to MQTT broker (%s) after %d attempts: %w", c.cfg.BrokerURL, retries, token.Error())
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.cfg.RetryInterval):
		}
	}
}

func (c *MQTTClient) readingsTopic() string {
	return strings.Join([]string{c.cfg.TopicPrefix, "+", "+", constants.TopicReadingsSuffix}, "/")
}

func (c *MQTTClient) intervalTopic() string {
	return strings.Join([]string{c.cfg.TopicPrefix, constants.TopicSettingsSuffix}, "/")
}

// SubscribeReadings forwards every reading message to messages. Messages are
// dropped with a warning when the channel is full.
func (c *MQTTClient) SubscribeReadings(messages chan<- Message) error {
	token := c.client.Subscribe(c.readingsTopic(), c.cfg.QoS, func(_ mqtt.Client, msg mqtt.Message) {
		select {
		case messages <- Message{Topic: msg.Topic(), Payload: msg.Payload()}:
		default:
			c.logger.Warn("Reading channel full, dropping message", "topic", msg.Topic())
		}
	})
	if token.WaitTimeout(c.cfg.RetryInterval) && token.Error() != nil {
		return fmt.Errorf("Error subscribing to (%s): %w", c.readingsTopic(), token.Error())
	}
	c.logger.Info("Subscribed to readings", "topic", c.readingsTopic())
	return nil
}

// PublishInterval sends the collection interval to the devices as a retained
// message, so a device connecting later still receives it
func (c *MQTTClient) PublishInterval(ctx context.Context, hours []int) error {
	if !c.client.IsConnected() {
		return fmt.Errorf("MQTT client not connected, cannot publish to (%s)", c.intervalTopic())
	}

	payload, err := json.Marshal(map[string]any{
		constants.FieldCollectionIntervalHour: settings.FormatPollingInterval(hours),
		"hours":                               hours,
	})
	if err != nil {
		return err
	}

	token := c.client.Publish(c.intervalTopic(), c.cfg.QoS, true, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if token.Error() != nil {
		return fmt.Errorf("Error publishing to (%s): %w", c.intervalTopic(), token.Error())
	}
	c.logger.Debug("Published polling interval", "topic", c.intervalTopic(), "payload", string(payload))
	return nil
}

// Close waits up to 250ms for in flight messages
func (c *MQTTClient) Close() {
	if c.client.IsConnected() {
		c.logger.Info("Disconnecting from MQTT broker")
		c.client.Disconnect(250)
	}
}

func (c *MQTTClient) UnsubscribeReadings() {
	token := c.client.Unsubscribe(c.readingsTopic())
	if token.WaitTimeout(c.cfg.RetryInterval) && token.Error() != nil {
		c.logger.Warn("Unable to unsubscribe from readings", "topic", c.readingsTopic(), "err", token.Error())
	}
}
