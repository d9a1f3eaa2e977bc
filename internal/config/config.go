package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cvelab/collatzmgr/internal/logger"
)

// Config represents the application configuration
type Config struct {
	Pool    PoolConfig       `yaml:"pool" validate:"required"`
	Backend BackendConfig    `yaml:"backend" validate:"required"`
	Server  ServerConfig     `yaml:"server" validate:"required"`
	Logging logger.LogConfig `yaml:"logging"`
}

// PoolConfig represents worker pool configuration
type PoolConfig struct {
	// MaxNumber is the upper bound of the range 1..MaxNumber to process
	MaxNumber int `yaml:"max_number" validate:"min=0"`
	// Workers is the number of concurrent workers draining the queue
	Workers int `yaml:"workers" validate:"min=1"`
	// BatchSize groups several numbers per queue entry to amortize
	// dequeue overhead; 1 means one number per entry
	BatchSize int `yaml:"batch_size" validate:"min=1"`
	// QueueCapacity bounds the shared queue; producers block when full
	QueueCapacity int `yaml:"queue_capacity" validate:"min=1"`
}

// BackendConfig represents compute backend configuration
type BackendConfig struct {
	// Local switches to in-process computation instead of the HTTP service
	Local bool `yaml:"local"`
	// BaseURL is the base address of the remote compute service
	BaseURL string `yaml:"base_url" validate:"required_if=Local false,omitempty,url"`
	// Timeout bounds a single compute round trip
	Timeout time.Duration `yaml:"timeout" validate:"min=0"`
}

// ServerConfig represents the compute service configuration
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"min=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"min=0"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" validate:"min=0"`
	EnableCORS   bool          `yaml:"enable_cors"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Pool: PoolConfig{
			MaxNumber:     10000,
			Workers:       5,
			BatchSize:     1,
			QueueCapacity: 1024,
		},
		Backend: BackendConfig{
			Local:   false,
			BaseURL: "http://localhost:9090",
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         9090,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
			EnableCORS:   true,
		},
		Logging: logger.LogConfig{
			Level:      "info",
			Format:     "console",
			Output:     "stderr",
			TimeFormat: time.RFC3339,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// COLLATZMGR_* environment variable overrides, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("COLLATZMGR_MAX_NUMBER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Pool.MaxNumber = n
		}
	}
	if v := os.Getenv("COLLATZMGR_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Pool.Workers = n
		}
	}
	if v := os.Getenv("COLLATZMGR_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Pool.BatchSize = n
		}
	}
	if v := os.Getenv("COLLATZMGR_BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("COLLATZMGR_SERVER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Server.Port = n
		}
	}
	if v := os.Getenv("COLLATZMGR_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Addr returns the host:port address the compute service listens on
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
