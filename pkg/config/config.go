package config

import (
	"fmt"
	"os"
	"time"

	"SentiDash/pkg/util"

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
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	ModelAPI struct {
		BaseURL          string        `yaml:"base_url"`
		PredictTimeout   time.Duration `yaml:"predict_timeout"`
		HealthTimeout    time.Duration `yaml:"health_timeout"`
		IncludeSentiment bool          `yaml:"include_sentiment"`
		MaxConcurrency   int           `yaml:"max_concurrency"`
		MaxRPS           int           `yaml:"max_rps"`
	} `yaml:"model_api"`
	Cache struct {
		Backend string        `yaml:"backend"` // memory or redis
		TTL     time.Duration `yaml:"ttl"`     // 0 = session-lived, no expiry
		Memory  struct {
			MaxSize         int           `yaml:"max_size"`
			CleanupInterval time.Duration `yaml:"cleanup_interval"`
		} `yaml:"memory"`
		Redis struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			PoolSize int    `yaml:"pool_size"`
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

	if v := os.Getenv("MODEL_API_URL"); v != "" {
		c.ModelAPI.BaseURL = v
	}
	if v := os.Getenv("MODEL_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.ModelAPI.PredictTimeout = d
		}
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("MODEL_API_INCLUDE_SENTIMENT"); v != "" {
		c.ModelAPI.IncludeSentiment = util.ParseBoolDefault(v, c.ModelAPI.IncludeSentiment)
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.ModelAPI.BaseURL == "" {
		c.ModelAPI.BaseURL = "https://daylong-datalab-reddit.hf.space"
	}
	if c.ModelAPI.PredictTimeout <= 0 {
		c.ModelAPI.PredictTimeout = 10 * time.Second
	}
	if c.ModelAPI.HealthTimeout <= 0 {
		c.ModelAPI.HealthTimeout = 10 * time.Second
	}
	if c.ModelAPI.MaxConcurrency <= 0 {
		c.ModelAPI.MaxConcurrency = 4
	}
	if c.ModelAPI.MaxRPS <= 0 {
		c.ModelAPI.MaxRPS = 5
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.ModelAPI.BaseURL == "" {
		return fmt.Errorf("model_api.base_url is required")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Host == "" {
		return fmt.Errorf("cache.redis.host is required for redis backend")
	}
	return nil
}
