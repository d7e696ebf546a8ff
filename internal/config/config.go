package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServiceName     string        `envconfig:"SERVICE_NAME" default:"customer-events"`
	Env             string        `envconfig:"ENV" default:"dev"`
	Debug           bool          `envconfig:"DEBUG" default:"false"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogFile         string        `envconfig:"LOG_FILE"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	// Demo replays the listener walkthrough on stdout before serving.
	Demo bool `envconfig:"DEMO" default:"false"`

	Bus   BusConfig   `envconfig:"BUS"`
	Redis RedisConfig `envconfig:"REDIS"`
}

type BusConfig struct {
	QueueSize      int           `envconfig:"QUEUE_SIZE" default:"1024"`
	Concurrency    int           `envconfig:"CONCURRENCY" default:"8"`
	HandlerTimeout time.Duration `envconfig:"HANDLER_TIMEOUT" default:"30s"`
	PublishTimeout time.Duration `envconfig:"PUBLISH_TIMEOUT" default:"300ms"`
}

type RedisConfig struct {
	// Addr enables the redis relay when set.
	Addr          string `envconfig:"ADDR"`
	Password      string `envconfig:"PASSWORD"`
	DB            int    `envconfig:"DB" default:"0"`
	ChannelPrefix string `envconfig:"CHANNEL_PREFIX" default:"customers"`
}

func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Bus.QueueSize <= 0 {
		return fmt.Errorf("config: BUS_QUEUE_SIZE must be positive, got %d", c.Bus.QueueSize)
	}
	if c.Bus.Concurrency <= 0 {
		return fmt.Errorf("config: BUS_CONCURRENCY must be positive, got %d", c.Bus.Concurrency)
	}
	return nil
}
