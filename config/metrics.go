package config

import "fmt"

// MetricsConfig defines the Prometheus exposition settings.
type MetricsConfig struct {
	// Enabled turns the Prometheus sink and HTTP server on.
	Enabled bool `json:"enabled"`
	// PrometheusPort is the listen port of the /metrics server.
	PrometheusPort int `json:"prometheus_port"`
}

// SetDefaults applies sane defaults.
func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusPort == 0 {
		c.PrometheusPort = 2112
	}
}

// Validate checks the port range.
func (c MetricsConfig) Validate() error {
	if c.PrometheusPort < 1 || c.PrometheusPort > 65535 {
		return fmt.Errorf("invalid prometheus port %d", c.PrometheusPort)
	}
	return nil
}
