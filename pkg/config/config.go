package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Storage struct {
		Backend    string `yaml:"backend"` // csv or clickhouse
		MasterPath string `yaml:"master_path"`
	} `yaml:"storage"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Models struct {
		Dir   string  `yaml:"dir"`
		Alpha float64 `yaml:"alpha"`
	} `yaml:"models"`
	Cache struct {
		Enabled bool          `yaml:"enabled"`
		TTL     time.Duration `yaml:"ttl"`
		Redis   struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Sources []Source `yaml:"sources"`
	Bounds  []Bound  `yaml:"bounds"`
}

// Source declares one raw per-source CSV and how to consolidate it.
type Source struct {
	Name            string `yaml:"name"`
	Path            string `yaml:"path"`
	Indicator       string `yaml:"indicator"`
	Frequency       string `yaml:"frequency"`
	TimestampColumn string `yaml:"timestamp_column"`
	ValueColumn     string `yaml:"value_column"`
	TimestampLayout string `yaml:"timestamp_layout"`
	Downsample      string `yaml:"downsample"`
}

// Bound declares the plausibility interval of one target. Changing these
// changes observable behavior; they version alongside the model artifacts.
type Bound struct {
	Target string  `yaml:"target"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("MASTER_PATH"); v != "" {
		c.Storage.MasterPath = v
	}
	if v := os.Getenv("MODELS_DIR"); v != "" {
		c.Models.Dir = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Storage.Backend == "" {
		return fmt.Errorf("storage.backend is required")
	}
	if c.Storage.Backend != "csv" && c.Storage.Backend != "clickhouse" {
		return fmt.Errorf("storage.backend must be 'csv' or 'clickhouse', got '%s'", c.Storage.Backend)
	}
	if c.Storage.Backend == "csv" && c.Storage.MasterPath == "" {
		return fmt.Errorf("storage.master_path is required for the csv backend")
	}
	if c.Storage.Backend == "clickhouse" && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required for the clickhouse backend")
	}
	if c.Models.Dir == "" {
		return fmt.Errorf("models.dir is required")
	}
	if c.Models.Alpha < 0 {
		return fmt.Errorf("models.alpha must be >= 0, got %v", c.Models.Alpha)
	}
	for i, s := range c.Sources {
		if s.Name == "" || s.Path == "" {
			return fmt.Errorf("sources[%d]: name and path are required", i)
		}
		if s.Indicator == "" {
			return fmt.Errorf("source %s: indicator is required", s.Name)
		}
		if s.Frequency == "" {
			return fmt.Errorf("source %s: frequency is required", s.Name)
		}
		if s.TimestampColumn == "" || s.ValueColumn == "" {
			return fmt.Errorf("source %s: timestamp_column and value_column are required", s.Name)
		}
	}
	for _, b := range c.Bounds {
		if b.Min >= b.Max {
			return fmt.Errorf("bounds for %s: min %v must be below max %v", b.Target, b.Min, b.Max)
		}
	}
	return nil
}
