// Package config loads service configuration from an optional YAML file
// with environment overrides. A .env file is honored when present.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"discogswatch/internal/sensors"
)

const (
	DefaultName         = "Discogs"
	DefaultPollInterval = 10 * time.Minute
	DefaultListenAddr   = ":8080"
)

type Config struct {
	// Token is the Discogs personal access token. Required, secret:
	// never logged.
	Token string

	// Name is the display prefix for sensor names.
	Name string

	// Sensors is the subset of sensor keys to expose. Defaults to the
	// full catalog.
	Sensors []string

	PollInterval time.Duration
	ListenAddr   string
	CORSOrigins  []string

	LogLevel  string
	LogFormat string
}

type fileConfig struct {
	Token        string   `yaml:"token"`
	Name         string   `yaml:"name"`
	Sensors      []string `yaml:"sensors"`
	PollInterval string   `yaml:"poll_interval"`
	ListenAddr   string   `yaml:"listen_addr"`
	CORSOrigins  []string `yaml:"cors_origins"`
	Log          struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load builds the configuration: defaults, then the YAML file (path
// argument or DISCOGSWATCH_CONFIG), then environment variables.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Name:         DefaultName,
		Sensors:      sensors.Keys(),
		PollInterval: DefaultPollInterval,
		ListenAddr:   DefaultListenAddr,
		LogLevel:     "info",
		LogFormat:    "text",
	}

	if path == "" {
		path = os.Getenv("DISCOGSWATCH_CONFIG")
	}
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fc.Token != "" {
		c.Token = fc.Token
	}
	if fc.Name != "" {
		c.Name = fc.Name
	}
	if len(fc.Sensors) > 0 {
		c.Sensors = fc.Sensors
	}
	if fc.PollInterval != "" {
		interval, err := time.ParseDuration(fc.PollInterval)
		if err != nil {
			return fmt.Errorf("invalid poll_interval %q: %w", fc.PollInterval, err)
		}
		c.PollInterval = interval
	}
	if fc.ListenAddr != "" {
		c.ListenAddr = fc.ListenAddr
	}
	if len(fc.CORSOrigins) > 0 {
		c.CORSOrigins = fc.CORSOrigins
	}
	if fc.Log.Level != "" {
		c.LogLevel = fc.Log.Level
	}
	if fc.Log.Format != "" {
		c.LogFormat = fc.Log.Format
	}
	return nil
}

func (c *Config) applyEnv() error {
	if token := os.Getenv("DISCOGS_TOKEN"); token != "" {
		c.Token = token
	}
	if name := os.Getenv("DISCOGSWATCH_NAME"); name != "" {
		c.Name = name
	}
	if list := os.Getenv("DISCOGSWATCH_SENSORS"); list != "" {
		var keys []string
		for _, key := range strings.Split(list, ",") {
			if key = strings.TrimSpace(key); key != "" {
				keys = append(keys, key)
			}
		}
		c.Sensors = keys
	}
	if raw := os.Getenv("DISCOGSWATCH_POLL_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid DISCOGSWATCH_POLL_INTERVAL %q: %w", raw, err)
		}
		c.PollInterval = interval
	}
	if port := os.Getenv("PORT"); port != "" {
		c.ListenAddr = ":" + port
	}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.CORSOrigins = strings.Split(origins, ",")
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		c.LogFormat = format
	}
	return nil
}

func (c *Config) validate() error {
	if c.Token == "" {
		return fmt.Errorf("discogs token is required (set DISCOGS_TOKEN or token in the config file)")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if len(c.Sensors) == 0 {
		return fmt.Errorf("at least one sensor must be enabled")
	}
	for _, key := range c.Sensors {
		if _, ok := sensors.Lookup(key); !ok {
			return fmt.Errorf("unknown sensor key %q (known keys: %s)", key, strings.Join(sensors.Keys(), ", "))
		}
	}
	return nil
}

// EnabledSensors resolves the configured keys into descriptors, in
// catalog order regardless of configuration order.
func (c *Config) EnabledSensors() []sensors.Descriptor {
	enabled := make(map[string]bool, len(c.Sensors))
	for _, key := range c.Sensors {
		enabled[key] = true
	}

	var descriptors []sensors.Descriptor
	for _, d := range sensors.All {
		if enabled[d.Key] {
			descriptors = append(descriptors, d)
		}
	}
	return descriptors
}
