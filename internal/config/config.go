// Package config resolves run parameters from defaults, an optional config
// file, CLASSEX_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/user/classex_explore_go/internal/analysis"
)

// Configuration keys.
const (
	KeyAmplitudeS    = "a_s"
	KeySpectralIndex = "n_s"
	KeyPivotScale    = "k_pivot"
	KeyHubbleH       = "hubble_h"
	KeySigmaSamples  = "sigma_samples"
	KeyFormat        = "format"
	KeyOutput        = "output"
	KeyLogLevel      = "log_level"

	EnvPrefix = "CLASSEX"
)

// Defaults of the primordial spectrum and the unit conversion.
const (
	DefaultAmplitudeS    = 2.097e-9
	DefaultSpectralIndex = 0.9652
	DefaultPivotScale    = 0.05 // 1/Mpc
	DefaultHubbleH       = 0.67
)

// Config holds the resolved parameters of one invocation.
type Config struct {
	AmplitudeS    float64 `mapstructure:"a_s"`
	SpectralIndex float64 `mapstructure:"n_s"`
	PivotScale    float64 `mapstructure:"k_pivot"`
	HubbleH       float64 `mapstructure:"hubble_h"`
	SigmaSamples  int     `mapstructure:"sigma_samples"`
	Format        string  `mapstructure:"format"`
	Output        string  `mapstructure:"output"`
	LogLevel      string  `mapstructure:"log_level"`
}

// New returns a viper instance carrying the defaults and bound to the
// CLASSEX_ environment prefix.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyAmplitudeS, DefaultAmplitudeS)
	v.SetDefault(KeySpectralIndex, DefaultSpectralIndex)
	v.SetDefault(KeyPivotScale, DefaultPivotScale)
	v.SetDefault(KeyHubbleH, DefaultHubbleH)
	v.SetDefault(KeySigmaSamples, analysis.DefaultSigmaSamples)
	v.SetDefault(KeyFormat, "html")
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configFile when it is not empty and returns the validated
// configuration.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks parameter ranges.
func (c *Config) Validate() error {
	if err := c.Primordial().Validate(); err != nil {
		return err
	}
	if !(c.HubbleH > 0) {
		return fmt.Errorf("%s must be positive, got %g", KeyHubbleH, c.HubbleH)
	}
	if c.SigmaSamples < 2 {
		return fmt.Errorf("%s must be at least 2, got %d", KeySigmaSamples, c.SigmaSamples)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Primordial returns the primordial spectrum parameters.
func (c *Config) Primordial() analysis.Primordial {
	return analysis.Primordial{
		AmplitudeS:    c.AmplitudeS,
		SpectralIndex: c.SpectralIndex,
		PivotScale:    c.PivotScale,
	}
}

// RadiusMpc converts a radius given in Mpc/h to Mpc.
func (c *Config) RadiusMpc(radiusMpcOverH float64) float64 {
	return radiusMpcOverH / c.HubbleH
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid %s '%s': %w", KeyLogLevel, c.LogLevel, err)
	}
	return level, nil
}
