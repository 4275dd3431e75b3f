// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultBusURL         = "mem://default"
	DefaultWorkers        = 4
	DefaultQueueSize      = 256
	DefaultPublishTimeout = 5 * time.Second
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "text"
	DefaultRedisPrefix    = "hermes:"
	DefaultKafkaTopic     = "hermes"
	DefaultDBusPath       = "/ai/snips/Hermes"
	DefaultDBusInterface  = "ai.snips.Hermes"
)

// Supported file formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Schemes accepted in bus.url.
var KnownSchemes = []string{"mem", "dbus", "redis", "rediss", "kafka"}

// Config represents the hermes configuration.
type Config struct {
	Bus   BusConfig   `toml:"bus" yaml:"bus"`
	Log   LogConfig   `toml:"log" yaml:"log"`
	Redis RedisConfig `toml:"redis" yaml:"redis"`
	Kafka KafkaConfig `toml:"kafka" yaml:"kafka"`
	DBus  DBusConfig  `toml:"dbus" yaml:"dbus"`
}

// BusConfig selects the transport and sizes the dispatcher.
type BusConfig struct {
	URL            string   `toml:"url" yaml:"url"`                         // mem://name, dbus://session, redis://host:port/db, kafka://brokers/topic
	Workers        int      `toml:"workers" yaml:"workers"`                 // Callback worker goroutines
	QueueSize      int      `toml:"queue_size" yaml:"queue_size"`           // Dispatch backlog that triggers a warning
	PublishTimeout Duration `toml:"publish_timeout" yaml:"publish_timeout"` // 0 = wait forever
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn, error
	Format string `toml:"format" yaml:"format"` // text, json
}

// RedisConfig holds settings for the redis:// transport.
type RedisConfig struct {
	Prefix string `toml:"prefix" yaml:"prefix"` // Prepended to every channel name
}

// KafkaConfig holds settings for the kafka:// transport.
type KafkaConfig struct {
	Topic   string `toml:"topic" yaml:"topic"`       // Used when the URL has no path
	GroupID string `toml:"group_id" yaml:"group_id"` // Empty = no group, each bus reads every partition from its end
}

// DBusConfig holds settings for the dbus:// transport.
type DBusConfig struct {
	Path      string `toml:"path" yaml:"path"`
	Interface string `toml:"interface" yaml:"interface"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Bus: BusConfig{
			URL:            DefaultBusURL,
			Workers:        DefaultWorkers,
			QueueSize:      DefaultQueueSize,
			PublishTimeout: Duration(DefaultPublishTimeout),
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Redis: RedisConfig{
			Prefix: DefaultRedisPrefix,
		},
		Kafka: KafkaConfig{
			Topic: DefaultKafkaTopic,
		},
		DBus: DBusConfig{
			Path:      DefaultDBusPath,
			Interface: DefaultDBusInterface,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "hermes", "hermes.toml")
}

// FormatFromPath returns the file format implied by the path extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data on top of the defaults and validates the result.
func Parse(data []byte, format string) (*Config, error) {
	cfg := DefaultConfig()

	switch format {
	case FormatTOML, "":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case FormatYAML, "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if !isKnownScheme(c.Bus.Scheme()) {
		return fmt.Errorf("invalid bus.url %q: scheme must be one of %s", c.Bus.URL, strings.Join(KnownSchemes, ", "))
	}
	if c.Bus.Workers <= 0 {
		return fmt.Errorf("bus.workers must be positive, got %d", c.Bus.Workers)
	}
	if c.Bus.QueueSize <= 0 {
		return fmt.Errorf("bus.queue_size must be positive, got %d", c.Bus.QueueSize)
	}
	if c.Bus.PublishTimeout < 0 {
		return errors.New("bus.publish_timeout cannot be negative")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if FormatFromPath(path) == FormatYAML {
		data, err = yaml.Marshal(c)
	} else {
		data, err = toml.Marshal(c)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Scheme returns the scheme of the bus URL, or "" when it has none.
func (b BusConfig) Scheme() string {
	scheme, _, ok := strings.Cut(b.URL, "://")
	if !ok {
		return ""
	}
	return strings.ToLower(scheme)
}

func isKnownScheme(scheme string) bool {
	for _, s := range KnownSchemes {
		if s == scheme {
			return true
		}
	}
	return false
}
