package internal

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rm-hull/label-noise/internal/labelnoise"
)

type NoiseConfig struct {
	Params labelnoise.Params
	Seed   uint64
}

// LoadNoiseConfig starts from the default noise parameters and overrides them
// with any LABELNOISE_* environment variables that are set.
func LoadNoiseConfig() (*NoiseConfig, error) {
	cfg := &NoiseConfig{Params: labelnoise.DefaultParams()}

	floats := []struct {
		key string
		dst *float64
	}{
		{"LABELNOISE_TEM_MEAN", &cfg.Params.TemMean},
		{"LABELNOISE_TEM_VAR", &cfg.Params.TemVar},
		{"LABELNOISE_BRIGHT_MEAN", &cfg.Params.BrightMean},
		{"LABELNOISE_BRIGHT_VAR", &cfg.Params.BrightVar},
		{"LABELNOISE_CONTRAST_MEAN", &cfg.Params.ContrastMean},
		{"LABELNOISE_CONTRAST_VAR", &cfg.Params.ContrastVar},
	}
	for _, f := range floats {
		value := os.Getenv(f.key)
		if value == "" {
			continue
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f.key, err)
		}
		*f.dst = v
	}

	if value := os.Getenv("LABELNOISE_SEED"); value != "" {
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse LABELNOISE_SEED: %w", err)
		}
		cfg.Seed = seed
	}

	return cfg, nil
}
