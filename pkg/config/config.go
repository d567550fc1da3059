package config

import (
	"fmt"
	"os"
	"strings"
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
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Backend struct {
		Type string `yaml:"type"` // kafka or clickhouse
	} `yaml:"backend"`
	Kafka struct {
		Brokers          []string      `yaml:"brokers"`
		PredictionsTopic string        `yaml:"predictions_topic"`
		RunsTopic        string        `yaml:"runs_topic"`
		RequiredAcks     int           `yaml:"required_acks"`
		Compression      string        `yaml:"compression"`
		MaxAttempts      int           `yaml:"max_attempts"`
		BatchSize        int           `yaml:"batch_size"`
		BatchBytes       int           `yaml:"batch_bytes"`
		Linger           time.Duration `yaml:"linger"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Sportsfeed struct {
		APIKey         string        `yaml:"api_key"`
		BaseURL        string        `yaml:"base_url"`
		RateLimit      int           `yaml:"rate_limit"`      // calls per minute
		RequestSpacing time.Duration `yaml:"request_spacing"` // delay between calls
		Timeout        time.Duration `yaml:"timeout"`
	} `yaml:"sportsfeed"`
	Weather struct {
		APIKey         string        `yaml:"api_key"`
		BaseURL        string        `yaml:"base_url"`
		RateLimit      int           `yaml:"rate_limit"`
		RequestSpacing time.Duration `yaml:"request_spacing"`
		Timeout        time.Duration `yaml:"timeout"`
		BatchWorkers   int           `yaml:"batch_workers"` // concurrent venue lookups per run
		CacheTTL       time.Duration `yaml:"cache_ttl"`
	} `yaml:"weather"`
	Cache struct {
		TeamsTTL time.Duration `yaml:"teams_ttl"`
		Redis    struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
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
	c.applyDefaults()

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

	if v := os.Getenv("SPORTSFEED_API_KEY"); v != "" {
		c.Sportsfeed.APIKey = v
	}
	if v := os.Getenv("WEATHER_API_KEY"); v != "" {
		c.Weather.APIKey = v
	}
	if v := os.Getenv("BACKEND"); v != "" {
		c.Backend.Type = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Sportsfeed.RateLimit == 0 {
		c.Sportsfeed.RateLimit = 60
	}
	if c.Sportsfeed.RequestSpacing == 0 {
		c.Sportsfeed.RequestSpacing = 100 * time.Millisecond
	}
	if c.Weather.RateLimit == 0 {
		c.Weather.RateLimit = 50
	}
	if c.Weather.RequestSpacing == 0 {
		c.Weather.RequestSpacing = 200 * time.Millisecond
	}
	if c.Weather.BatchWorkers == 0 {
		c.Weather.BatchWorkers = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
}

// Validate checks if the configuration is valid. Missing provider
// credentials are the one unrecoverable startup failure.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Backend.Type == "" {
		return fmt.Errorf("backend.type is required")
	}
	if c.Backend.Type != "kafka" && c.Backend.Type != "clickhouse" {
		return fmt.Errorf("backend.type must be 'kafka' or 'clickhouse', got '%s'", c.Backend.Type)
	}
	if c.Sportsfeed.APIKey == "" {
		return fmt.Errorf("sportsfeed.api_key is required")
	}
	if c.Weather.APIKey == "" {
		return fmt.Errorf("weather.api_key is required")
	}
	return nil
}
