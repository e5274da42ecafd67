package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Keys shared between config files, environment variables and command flags
const (
	KeyBaseURL            = "base_url"
	KeyTimeout            = "timeout"
	KeyRate               = "rate"
	KeyStoreDir           = "store_dir"
	KeyLogLevel           = "log.level"
	KeyLogFormat          = "log.format"
	KeySampleFormats      = "sample.formats"
	KeySampleRequiredOnly = "sample.required_only"
	KeySampleMaxDepth     = "sample.max_depth"
)

const envPrefix = "OASTESTER"

// Config holds the resolved runtime settings
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Rate     float64
	StoreDir string
	Log      LogConfig
	Sample   SampleConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// SampleConfig controls request body synthesis
type SampleConfig struct {
	Formats      bool
	RequiredOnly bool
	MaxDepth     int
}

// New returns a viper instance with defaults and environment binding applied
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyBaseURL, "")
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyRate, 0.0)
	v.SetDefault(KeyStoreDir, defaultStoreDir())
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeySampleFormats, true)
	v.SetDefault(KeySampleRequiredOnly, false)
	v.SetDefault(KeySampleMaxDepth, 16)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Read loads the config file into v. An explicit file must exist; when file is empty the
// default locations are searched and a missing config.toml is not an error.
func Read(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "oastester"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// FromViper resolves a Config from v
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		BaseURL:  strings.TrimSpace(v.GetString(KeyBaseURL)),
		Timeout:  v.GetDuration(KeyTimeout),
		Rate:     v.GetFloat64(KeyRate),
		StoreDir: v.GetString(KeyStoreDir),
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		Sample: SampleConfig{
			Formats:      v.GetBool(KeySampleFormats),
			RequiredOnly: v.GetBool(KeySampleRequiredOnly),
			MaxDepth:     v.GetInt(KeySampleMaxDepth),
		},
	}

	if cfg.Timeout <= 0 {
		return cfg, fmt.Errorf("invalid %s: must be positive, got %v", KeyTimeout, cfg.Timeout)
	}
	if cfg.Rate < 0 {
		return cfg, fmt.Errorf("invalid %s: must not be negative, got %v", KeyRate, cfg.Rate)
	}
	if strings.TrimSpace(cfg.StoreDir) == "" {
		return cfg, fmt.Errorf("invalid %s: must not be empty", KeyStoreDir)
	}
	return cfg, nil
}

func defaultStoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".oastester"
	}
	return filepath.Join(home, ".local", "share", "oastester")
}
