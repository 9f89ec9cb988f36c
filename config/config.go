// Package config holds the runtime tuning knobs for the translation engine,
// sourced from the environment with sensible defaults. There is no
// persisted configuration file.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Runtime tunes timeouts, throttling, and retry behavior.
type Runtime struct {
	// RequestTimeout bounds a single provider HTTP call.
	RequestTimeout time.Duration `env:"XCKIT_REQUEST_TIMEOUT" envDefault:"10s"`
	// YoudaoTimeout bounds a Youdao call, which tolerates a slower API.
	YoudaoTimeout time.Duration `env:"XCKIT_YOUDAO_TIMEOUT" envDefault:"15s"`
	// ThrottleDefault is the pause after a remote call for most providers.
	ThrottleDefault time.Duration `env:"XCKIT_THROTTLE" envDefault:"300ms"`
	// ThrottleYoudao is the pause after a Youdao call.
	ThrottleYoudao time.Duration `env:"XCKIT_YOUDAO_THROTTLE" envDefault:"500ms"`
	// MaxRetries bounds retry attempts for providers that retry at all.
	MaxRetries int `env:"XCKIT_MAX_RETRIES" envDefault:"3"`
}

// Load reads the runtime configuration from the environment.
func Load() (Runtime, error) {
	var rt Runtime
	if err := env.Parse(&rt); err != nil {
		return Runtime{}, fmt.Errorf("parsing runtime config: %w", err)
	}
	return rt, nil
}

// Default returns the built-in runtime configuration, ignoring the
// environment.
func Default() Runtime {
	return Runtime{
		RequestTimeout:  10 * time.Second,
		YoudaoTimeout:   15 * time.Second,
		ThrottleDefault: 300 * time.Millisecond,
		ThrottleYoudao:  500 * time.Millisecond,
		MaxRetries:      3,
	}
}
