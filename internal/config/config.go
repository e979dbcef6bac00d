package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds the segmentation policy knobs. The thresholds have no
// principled derivation; they are tuned against real ride data, so every
// one of them is configurable rather than hard-coded.
type Config struct {
	// MergeToleranceFTP is the segment-merge band: how far (as a fraction
	// of FTP) a sample may sit from the open segment's linear trend before
	// the segment is closed and a new one opened.
	MergeToleranceFTP float64 `json:"merge_tolerance_ftp" env:"MERGE_TOLERANCE_FTP"`

	// SteadyToleranceFTP classifies a closed segment as steady when its
	// intensity range stayed under this fraction of FTP; otherwise the
	// segment is a ramp.
	SteadyToleranceFTP float64 `json:"steady_tolerance_ftp" env:"STEADY_TOLERANCE_FTP"`

	// MinViableSeconds is the shortest activity that can be converted.
	// Anything shorter fails with INSUFFICIENT_DATA.
	MinViableSeconds int `json:"min_viable_seconds" env:"MIN_VIABLE_SECONDS"`

	// MinSegmentSeconds merges emitted segments shorter than this into
	// their neighbors (duration-weighted) to avoid rapid target switching
	// on the trainer.
	MinSegmentSeconds int `json:"min_segment_seconds" env:"MIN_SEGMENT_SECONDS"`

	// SmoothingWindow is the median filter width applied to the 1 Hz
	// power series before quantization. Must be odd. 0 disables smoothing.
	SmoothingWindow int `json:"smoothing_window" env:"SMOOTHING_WINDOW"`

	// QuantizeLevels is the number of distinct power levels the smoothed
	// series is collapsed to before segmentation. 0 disables quantization
	// and segments the raw normalized series.
	QuantizeLevels int `json:"quantize_levels" env:"QUANTIZE_LEVELS"`

	// PowerFloorWatts clamps resampled power from below. 0 disables the
	// floor.
	PowerFloorWatts int `json:"power_floor_watts" env:"POWER_FLOOR_WATTS"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MergeToleranceFTP:  0.05,
		SteadyToleranceFTP: 0.02,
		MinViableSeconds:   5,
		MinSegmentSeconds:  30,
		SmoothingWindow:    21,
		QuantizeLevels:     7,
		PowerFloorWatts:    100,
	}
}

// Load loads configuration from baseDir/config.json, merged over defaults,
// then applies ZWOGEN_* environment overrides.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.zwogen.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "ZWOGEN_"}); err != nil {
		return nil, fmt.Errorf("parse environment overrides: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate rejects threshold combinations the segmenter cannot work with.
func (c *Config) Validate() error {
	if c.MergeToleranceFTP <= 0 {
		return fmt.Errorf("merge_tolerance_ftp must be positive, got %v", c.MergeToleranceFTP)
	}
	if c.SteadyToleranceFTP < 0 || c.SteadyToleranceFTP > c.MergeToleranceFTP {
		return fmt.Errorf("steady_tolerance_ftp must be in [0, merge_tolerance_ftp], got %v", c.SteadyToleranceFTP)
	}
	if c.MinViableSeconds < 1 {
		return fmt.Errorf("min_viable_seconds must be at least 1, got %d", c.MinViableSeconds)
	}
	if c.SmoothingWindow < 0 || (c.SmoothingWindow > 0 && c.SmoothingWindow%2 == 0) {
		return fmt.Errorf("smoothing_window must be odd or 0, got %d", c.SmoothingWindow)
	}
	if c.QuantizeLevels < 0 {
		return fmt.Errorf("quantize_levels must be non-negative, got %d", c.QuantizeLevels)
	}
	if c.PowerFloorWatts < 0 {
		return fmt.Errorf("power_floor_watts must be non-negative, got %d", c.PowerFloorWatts)
	}
	return nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs. Overlay values win when set;
// zero values fall back to base. A zero in the file therefore cannot
// disable smoothing/quantization/floor on its own; set the explicit
// disable through the environment override instead.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.MergeToleranceFTP = overlay.MergeToleranceFTP
	if result.MergeToleranceFTP == 0 {
		result.MergeToleranceFTP = base.MergeToleranceFTP
	}

	result.SteadyToleranceFTP = overlay.SteadyToleranceFTP
	if result.SteadyToleranceFTP == 0 {
		result.SteadyToleranceFTP = base.SteadyToleranceFTP
	}

	result.MinViableSeconds = overlay.MinViableSeconds
	if result.MinViableSeconds == 0 {
		result.MinViableSeconds = base.MinViableSeconds
	}

	result.MinSegmentSeconds = overlay.MinSegmentSeconds
	if result.MinSegmentSeconds == 0 {
		result.MinSegmentSeconds = base.MinSegmentSeconds
	}

	result.SmoothingWindow = overlay.SmoothingWindow
	if result.SmoothingWindow == 0 {
		result.SmoothingWindow = base.SmoothingWindow
	}

	result.QuantizeLevels = overlay.QuantizeLevels
	if result.QuantizeLevels == 0 {
		result.QuantizeLevels = base.QuantizeLevels
	}

	result.PowerFloorWatts = overlay.PowerFloorWatts
	if result.PowerFloorWatts == 0 {
		result.PowerFloorWatts = base.PowerFloorWatts
	}

	return result
}
