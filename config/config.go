package config

import (
	"github.com/kbukum/querykit/logger"
	"github.com/kbukum/querykit/observability"
	"github.com/kbukum/querykit/validation"
)

// BaseConfig identifies the running program.
type BaseConfig struct {
	Name        string `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// ApplyDefaults applies default values to base configuration.
func (c *BaseConfig) ApplyDefaults(name string) {
	if c.Name == "" {
		c.Name = name
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
}

// QueryDefaults holds the values commands fall back to when a flag is unset.
type QueryDefaults struct {
	ChunkSize  int  `yaml:"chunk_size" mapstructure:"chunk_size" validate:"gte=1"`
	StrictMaps bool `yaml:"strict_maps" mapstructure:"strict_maps"`
}

// Config is the full configuration of the qk command.
type Config struct {
	Base      BaseConfig           `yaml:"base" mapstructure:"base"`
	Logging   logger.Config        `yaml:"logging" mapstructure:"logging"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
	Query     QueryDefaults        `yaml:"query" mapstructure:"query"`
}

// Default returns the configuration used when no file or variable sets a value.
func Default(name string) Config {
	cfg := Config{Telemetry: observability.DefaultConfig(name)}
	cfg.ApplyDefaults(name)
	return cfg
}

// ApplyDefaults fills every unset field. Debug mode forces the debug log level.
func (c *Config) ApplyDefaults(name string) {
	c.Base.ApplyDefaults(name)
	if c.Base.Debug {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
	c.Telemetry.ApplyDefaults(c.Base.Name)
	if c.Telemetry.ServiceVersion == "dev" && c.Base.Version != "" {
		c.Telemetry.ServiceVersion = c.Base.Version
	}
	if c.Query.ChunkSize == 0 {
		c.Query.ChunkSize = 10
	}
}

// Validate checks struct tags first, then the logging settings.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return validation.New().Custom(false, "logging", err.Error()).Validate()
	}
	return nil
}

// Load reads the configuration for the named service over Default, applies
// defaults to anything the sources cleared and validates the result.
func Load(name string, opts ...LoaderOption) (*Config, error) {
	cfg := Default(name)
	if err := LoadConfig(name, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults(name)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
