package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/wheelibin/glasshouse/internal/aggregate"
	"github.com/wheelibin/glasshouse/internal/ingest"
	"github.com/wheelibin/glasshouse/internal/models"
	"github.com/wheelibin/glasshouse/internal/schedule"
)

type Operator struct {
	Username string `mapstructure:"username"`
	// bcrypt hash of the operator password
	PasswordHash string `mapstructure:"passwordHash"`
}

type Config struct {
	HTTPAddr            string            `mapstructure:"httpAddr"`
	DatabasePath        string            `mapstructure:"databasePath"`
	SnapshotDir         string            `mapstructure:"snapshotDir"`
	SnapshotPublicURL   string            `mapstructure:"snapshotPublicUrl"`
	MQTT                ingest.MQTTConfig `mapstructure:"mqtt"`
	GeoLocation         string            `mapstructure:"geoLocation"`
	Operator            Operator          `mapstructure:"operator"`
	ImageServiceURL     string            `mapstructure:"imageServiceUrl"`
	ImageServiceTimeout time.Duration     `mapstructure:"imageServiceTimeout"`
	FormatPolicy        string            `mapstructure:"formatPolicy"`
	AveragingPolicy     string            `mapstructure:"averagingPolicy"`
	Workers             int               `mapstructure:"workers"`
	SessionLifetime     time.Duration     `mapstructure:"sessionLifetime"`
	SecureCookies       bool              `mapstructure:"secureCookies"`
	AllowedOrigins      []string          `mapstructure:"allowedOrigins"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("httpAddr", ":4000")
	v.SetDefault("databasePath", "glasshouse.db")
	v.SetDefault("snapshotDir", "snapshots")
	v.SetDefault("snapshotPublicUrl", "/snapshots")
	v.SetDefault("mqtt.brokerUrl", "tcp://localhost:1883")
	v.SetDefault("mqtt.clientId", "glasshoused")
	v.SetDefault("mqtt.topicPrefix", "glasshouse")
	v.SetDefault("mqtt.qos", 1)
	v.SetDefault("mqtt.maxRetries", 10)
	v.SetDefault("mqtt.retryInterval", "5s")
	v.SetDefault("imageServiceUrl", "http://localhost:5000")
	v.SetDefault("imageServiceTimeout", "30s")
	v.SetDefault("formatPolicy", "degrade")
	v.SetDefault("averagingPolicy", "zero")
	v.SetDefault("workers", 8)
	v.SetDefault("sessionLifetime", "12h")
	v.SetDefault("secureCookies", true)
}

// InitialiseConfig reads config.json from configFile when given, otherwise
// from the usual search paths. Every key can be overridden from the
// environment, e.g. GLASSHOUSE_MQTT_BROKERURL.
func InitialiseConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("glasshouse")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")                    // name of config file (without extension)
		v.SetConfigType("json")                      // REQUIRED if the config file does not have the extension in the name
		v.AddConfigPath("/etc/glasshouse/")          // path to look for the config file in
		v.AddConfigPath("$HOME/.config/glasshouse/") // call multiple times to add many search paths
		v.AddConfigPath(".")                         // optionally look for config in the working directory
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// running on defaults and environment is fine
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("Error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("Error decoding config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", models.ErrInvalidConfiguration, fmt.Sprintf(format, args...))
	}

	if c.HTTPAddr == "" {
		return invalid("httpAddr is required")
	}
	if c.DatabasePath == "" {
		return invalid("databasePath is required")
	}
	if _, err := schedule.ParseFormatPolicy(c.FormatPolicy); err != nil {
		return err
	}
	if _, err := aggregate.ParseMissingPolicy(c.AveragingPolicy); err != nil {
		return err
	}
	if c.Workers <= 0 {
		return invalid("workers must be positive, got %d", c.Workers)
	}
	if c.SessionLifetime <= 0 {
		return invalid("sessionLifetime must be positive")
	}
	if c.MQTT.QoS > 2 {
		return invalid("mqtt.qos must be 0, 1 or 2, got %d", c.MQTT.QoS)
	}
	if c.GeoLocation != "" {
		if _, _, err := schedule.ParseGeoLocation(c.GeoLocation); err != nil {
			return err
		}
	}
	if c.ImageServiceURL != "" {
		if _, err := url.ParseRequestURI(c.ImageServiceURL); err != nil {
			return invalid("imageServiceUrl: %s", err)
		}
	}
	return nil
}
