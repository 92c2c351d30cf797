package observability

import "time"

// Config configures metric and trace export.
// An empty endpoint disables the corresponding exporter.
type Config struct {
	ServiceName     string        `yaml:"service_name" mapstructure:"service_name"`
	ServiceVersion  string        `yaml:"service_version" mapstructure:"service_version"`
	Environment     string        `yaml:"environment" mapstructure:"environment"`
	MetricsEndpoint string        `yaml:"metrics_endpoint" mapstructure:"metrics_endpoint"`
	TracesEndpoint  string        `yaml:"traces_endpoint" mapstructure:"traces_endpoint"`
	Insecure        bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate      float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Interval        time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DefaultConfig returns defaults with exporters disabled.
func DefaultConfig(serviceName string) Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Insecure:       true,
		SampleRate:     1.0,
		Interval:       15 * time.Second,
	}
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults(serviceName string) {
	d := DefaultConfig(serviceName)
	if c.ServiceName == "" {
		c.ServiceName = d.ServiceName
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = d.ServiceVersion
	}
	if c.Environment == "" {
		c.Environment = d.Environment
	}
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
}

// MetricsEnabled reports whether a metrics exporter is configured.
func (c *Config) MetricsEnabled() bool { return c.MetricsEndpoint != "" }

// TracingEnabled reports whether a trace exporter is configured.
func (c *Config) TracingEnabled() bool { return c.TracesEndpoint != "" }
