// Package activity loads recorded ride data from exported activity files
// and resamples it into a one-sample-per-second power series.
package activity

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/hpungsan/zwogen/internal/errors"
)

// Sample is a single power reading: seconds elapsed since the activity
// start, and the recorded power in watts.
type Sample struct {
	Elapsed float64 // seconds, non-negative, strictly increasing
	Watts   float64 // non-negative
}

// Series is the ordered sample sequence for one activity.
type Series struct {
	Samples []Sample
}

// TotalSeconds returns the elapsed span of the series.
func (s *Series) TotalSeconds() float64 {
	if len(s.Samples) == 0 {
		return 0
	}
	return s.Samples[len(s.Samples)-1].Elapsed - s.Samples[0].Elapsed
}

// validate enforces the sample-sequence shape: at least two samples,
// non-negative values, time strictly increasing.
func (s *Series) validate() error {
	if len(s.Samples) < 2 {
		return errors.NewMalformedInput("time", "activity needs at least two samples")
	}
	prev := math.Inf(-1)
	for _, sample := range s.Samples {
		if sample.Elapsed < 0 {
			return errors.NewMalformedInput("time", "negative elapsed time")
		}
		if sample.Elapsed <= prev {
			return errors.NewMalformedInput("time", "time values must be strictly increasing")
		}
		if sample.Watts < 0 {
			return errors.NewMalformedInput("watts", "negative power value")
		}
		prev = sample.Elapsed
	}
	return nil
}

// LoadFile loads an activity from disk, dispatching on file extension:
// .json for exported Strava streams, .fit for FIT activity files.
func LoadFile(path string) (*Series, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadStravaFile(path)
	case ".fit":
		return loadFITFile(path)
	default:
		return nil, errors.NewInvalidRequest("unsupported activity format: " + filepath.Ext(path) + " (want .json or .fit)")
	}
}
