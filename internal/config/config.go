package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"football-fair-odds/internal/market"
)

// Defaults for configuration values.
const (
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultHandicapMin  = -2.0
	DefaultHandicapMax  = 2.0
	DefaultHandicapStep = 0.25

	// EnvPrefix is prepended to every environment override, e.g. FAIRODDS_LOG_LEVEL.
	EnvPrefix = "FAIRODDS"
	// ConfigFileEnv names an optional YAML/TOML/JSON config file.
	ConfigFileEnv = "FAIRODDS_CONFIG"
)

var (
	DefaultTotalsLines     = []float64{0.5, 1.5, 2.5, 3.5, 4.5}
	DefaultHalfTotalsLines = []float64{0.5, 1.5, 2.5}
)

// Config holds all application configuration.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Standard catalogue lines
	TotalsLines     []float64 `mapstructure:"totals_lines"`
	HalfTotalsLines []float64 `mapstructure:"half_totals_lines"`
	HandicapMin     float64   `mapstructure:"handicap_min"`
	HandicapMax     float64   `mapstructure:"handicap_max"`
	HandicapStep    float64   `mapstructure:"handicap_step"`
}

// Load reads configuration from defaults, an optional config file and
// environment variables (and .env file if present). Later sources win.
func Load() (Config, error) {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("totals_lines", DefaultTotalsLines)
	v.SetDefault("half_totals_lines", DefaultHalfTotalsLines)
	v.SetDefault("handicap_min", DefaultHandicapMin)
	v.SetDefault("handicap_max", DefaultHandicapMax)
	v.SetDefault("handicap_step", DefaultHandicapStep)
}

// Validate checks that configuration values are within acceptable ranges.
func Validate(cfg Config) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.LogLevel)] {
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(cfg.LogFormat)] {
		return fmt.Errorf("log_format must be text or json, got %q", cfg.LogFormat)
	}

	for _, line := range append(append([]float64{}, cfg.TotalsLines...), cfg.HalfTotalsLines...) {
		if line <= 0 || math.IsNaN(line) {
			return fmt.Errorf("totals lines must be positive, got %v", line)
		}
	}

	if cfg.HandicapStep <= 0 || !market.ValidLine(cfg.HandicapStep) {
		return fmt.Errorf("handicap_step must be a positive multiple of 0.25, got %v", cfg.HandicapStep)
	}
	if !market.ValidLine(cfg.HandicapMin) || !market.ValidLine(cfg.HandicapMax) {
		return fmt.Errorf("handicap range must use multiples of 0.25, got %v..%v", cfg.HandicapMin, cfg.HandicapMax)
	}
	if cfg.HandicapMin > cfg.HandicapMax {
		return fmt.Errorf("handicap_min %v above handicap_max %v", cfg.HandicapMin, cfg.HandicapMax)
	}
	return nil
}

// Catalogue returns the market catalogue options described by the config.
func (c Config) Catalogue() market.CatalogueOptions {
	return market.CatalogueOptions{
		TotalsLines:     c.TotalsLines,
		HalfTotalsLines: c.HalfTotalsLines,
		HandicapMin:     c.HandicapMin,
		HandicapMax:     c.HandicapMax,
		HandicapStep:    c.HandicapStep,
	}
}
