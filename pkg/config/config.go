package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "IREV"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	API       APIConfig       `mapstructure:"api"`
	Data      DataConfig      `mapstructure:"data"`
	Display   DisplayConfig   `mapstructure:"display"`
	Animation AnimationConfig `mapstructure:"animation"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr is the listen address of the API server
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DataConfig struct {
	Dir        string `mapstructure:"dir"`
	Source     string `mapstructure:"source"`
	Workbook   string `mapstructure:"workbook"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type DisplayConfig struct {
	Locale string `mapstructure:"locale"`
}

type AnimationConfig struct {
	Interval  time.Duration `mapstructure:"interval"`
	Steps     int           `mapstructure:"steps"`
	Threshold float64       `mapstructure:"threshold"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("api.base_url", "http://127.0.0.1:5000")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.source", "https://docs.google.com/spreadsheets/d/1p1ZWaYcEuFl5UNFcmNvpkXi3JnoHamut/export?format=xlsx")
	v.SetDefault("data.workbook", "apple_products.xlsx")
	v.SetDefault("data.sqlite_path", "")
	v.SetDefault("display.locale", "en-IN")
	v.SetDefault("animation.interval", "30ms")
	v.SetDefault("animation.steps", 40)
	v.SetDefault("animation.threshold", 0.3)
}

// Load reads the YAML file at path, if any, on top of the defaults.
// IREV_* environment variables override both, e.g. IREV_SERVER_PORT.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Animation.Steps <= 0 {
		return fmt.Errorf("animation.steps must be positive, got %d", c.Animation.Steps)
	}
	if c.Animation.Threshold <= 0 || c.Animation.Threshold > 1 {
		return fmt.Errorf("animation.threshold must be in (0, 1], got %v", c.Animation.Threshold)
	}
	return nil
}
