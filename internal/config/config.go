// Package config loads tzclock settings from a YAML file, TZCLOCK_ environment
// variables and command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Clock   ClockConfig   `mapstructure:"clock"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Gen     GenConfig     `mapstructure:"gen"`
}

type ClockConfig struct {
	Zone          string `mapstructure:"zone"`
	Use12Hour     bool   `mapstructure:"use_12_hour"`
	DayMonthOrder bool   `mapstructure:"day_month_order"`
}

// CatalogConfig selects the zone table. An empty Path means the embedded table.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type GenConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Out     string        `mapstructure:"out"`
	ETag    string        `mapstructure:"etag"`
}

const envPrefix = "TZCLOCK"

// FlagKeys maps command line flag names to configuration keys.
var FlagKeys = map[string]string{
	"zone":       "clock.zone",
	"12h":        "clock.use_12_hour",
	"dmy":        "clock.day_month_order",
	"catalog":    "catalog.path",
	"log-level":  "logger.level",
	"log-format": "logger.format",
	"timeout":    "gen.timeout",
	"out":        "gen.out",
	"etag":       "gen.etag",
}

// Load reads the configuration. If path is empty, tzclock.yaml is searched in the working
// directory, $HOME/.config/tzclock and /etc/tzclock, and a missing file is not an error.
// Flags in flags that appear in FlagKeys override file and environment when set.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tzclock")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/tzclock")
		v.AddConfigPath("/etc/tzclock")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("clock.zone", "UTC")
	v.SetDefault("clock.use_12_hour", false)
	v.SetDefault("clock.day_month_order", false)

	v.SetDefault("catalog.path", "")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stderr")

	v.SetDefault("gen.timeout", time.Minute)
	v.SetDefault("gen.out", "")
	v.SetDefault("gen.etag", "")
}
