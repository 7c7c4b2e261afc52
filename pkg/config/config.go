package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ListenAddr    string `env:"BEACON_LISTEN_ADDR" envDefault:":4317"`
	ApplicationID string `env:"BEACON_APPLICATION_ID" envDefault:"beacon-app"`

	SessionSampleRate     float64 `env:"BEACON_SESSION_SAMPLE_RATE" envDefault:"100"`
	DeterministicSampling bool    `env:"BEACON_DETERMINISTIC_SAMPLING" envDefault:"false"`

	SessionInactivityTimeout time.Duration `env:"BEACON_SESSION_INACTIVITY_TIMEOUT" envDefault:"15m"`
	SessionMaxDuration       time.Duration `env:"BEACON_SESSION_MAX_DURATION" envDefault:"4h"`

	ElasticsearchEnabled bool `env:"BEACON_ELASTICSEARCH_ENABLED" envDefault:"true"`
	// OTLPExportAddr enables forwarding to a downstream collector when set.
	OTLPExportAddr string `env:"BEACON_OTLP_EXPORT_ADDR"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
