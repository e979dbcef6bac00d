package activity

import (
	"os"

	"github.com/tidwall/gjson"

	"github.com/hpungsan/zwogen/internal/errors"
)

// ParseStravaStreams parses an exported Strava activity into a Series.
// Two export shapes are accepted: the flat form the bulk export produces,
//
//	{"time": [0, 1, ...], "watts": [180, 182, ...]}
//
// and the key_by_type form the streams API produces,
//
//	{"time": {"data": [...]}, "watts": {"data": [...]}}
//
// Null entries are treated as zero watts, matching how dropouts appear in
// Strava exports.
func ParseStravaStreams(data []byte) (*Series, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.NewMalformedInput("", "not valid JSON")
	}

	timeVals, err := streamArray(data, "time")
	if err != nil {
		return nil, err
	}
	wattVals, err := streamArray(data, "watts")
	if err != nil {
		return nil, err
	}

	if len(timeVals) != len(wattVals) {
		return nil, errors.NewMalformedInput("watts", "time and watts arrays have mismatched lengths")
	}

	samples := make([]Sample, len(timeVals))
	for i := range timeVals {
		samples[i] = Sample{Elapsed: timeVals[i], Watts: wattVals[i]}
	}

	series := &Series{Samples: samples}
	if err := series.validate(); err != nil {
		return nil, err
	}
	return series, nil
}

// streamArray extracts one stream as a float slice, trying the flat shape
// first and falling back to key_by_type.
func streamArray(data []byte, field string) ([]float64, error) {
	result := gjson.GetBytes(data, field)
	if !result.Exists() {
		return nil, errors.NewMalformedInput(field, "missing required field "+field)
	}
	if !result.IsArray() {
		// key_by_type shape nests the array under "data"
		result = result.Get("data")
		if !result.IsArray() {
			return nil, errors.NewMalformedInput(field, field+" is not an array")
		}
	}

	var values []float64
	var badType bool
	result.ForEach(func(_, value gjson.Result) bool {
		switch value.Type {
		case gjson.Number:
			values = append(values, value.Float())
		case gjson.Null:
			values = append(values, 0)
		default:
			badType = true
			return false
		}
		return true
	})
	if badType {
		return nil, errors.NewMalformedInput(field, field+" contains a non-numeric value")
	}
	if len(values) == 0 {
		return nil, errors.NewMalformedInput(field, field+" is empty")
	}
	return values, nil
}

// loadStravaFile reads and parses a Strava streams JSON file.
func loadStravaFile(path string) (*Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return ParseStravaStreams(data)
}
