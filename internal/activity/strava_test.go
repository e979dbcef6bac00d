package activity

import (
	"testing"

	"github.com/hpungsan/zwogen/internal/errors"
)

func TestParseStravaStreams_FlatShape(t *testing.T) {
	data := []byte(`{"time": [0, 1, 2, 3], "watts": [100, 110, 120, 130]}`)

	series, err := ParseStravaStreams(data)
	if err != nil {
		t.Fatalf("ParseStravaStreams failed: %v", err)
	}

	if len(series.Samples) != 4 {
		t.Fatalf("len(Samples) = %d, want 4", len(series.Samples))
	}
	if series.Samples[2].Elapsed != 2 || series.Samples[2].Watts != 120 {
		t.Errorf("Samples[2] = %+v, want {2 120}", series.Samples[2])
	}
	if series.TotalSeconds() != 3 {
		t.Errorf("TotalSeconds() = %v, want 3", series.TotalSeconds())
	}
}

func TestParseStravaStreams_KeyByTypeShape(t *testing.T) {
	data := []byte(`{
		"time":  {"data": [0, 5, 10], "series_type": "time"},
		"watts": {"data": [200, 210, 220], "series_type": "time"}
	}`)

	series, err := ParseStravaStreams(data)
	if err != nil {
		t.Fatalf("ParseStravaStreams failed: %v", err)
	}

	if len(series.Samples) != 3 {
		t.Fatalf("len(Samples) = %d, want 3", len(series.Samples))
	}
	if series.Samples[1].Elapsed != 5 || series.Samples[1].Watts != 210 {
		t.Errorf("Samples[1] = %+v, want {5 210}", series.Samples[1])
	}
}

func TestParseStravaStreams_NullWattsBecomeZero(t *testing.T) {
	data := []byte(`{"time": [0, 1, 2], "watts": [100, null, 120]}`)

	series, err := ParseStravaStreams(data)
	if err != nil {
		t.Fatalf("ParseStravaStreams failed: %v", err)
	}

	if series.Samples[1].Watts != 0 {
		t.Errorf("Samples[1].Watts = %v, want 0 (null dropout)", series.Samples[1].Watts)
	}
}

func TestParseStravaStreams_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not JSON", `{not json`},
		{"missing watts", `{"time": [0, 1, 2]}`},
		{"missing time", `{"watts": [100, 110]}`},
		{"mismatched lengths", `{"time": [0, 1, 2], "watts": [100, 110]}`},
		{"non-numeric watts", `{"time": [0, 1], "watts": [100, "boom"]}`},
		{"watts not an array", `{"time": [0, 1], "watts": 100}`},
		{"time not increasing", `{"time": [0, 2, 1], "watts": [100, 110, 120]}`},
		{"duplicate time", `{"time": [0, 1, 1], "watts": [100, 110, 120]}`},
		{"negative time", `{"time": [-1, 0, 1], "watts": [100, 110, 120]}`},
		{"single sample", `{"time": [0], "watts": [100]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStravaStreams([]byte(tt.data))
			if err == nil {
				t.Fatal("ParseStravaStreams should fail")
			}
			if !errors.Is(err, errors.ErrMalformedInput) {
				t.Errorf("error code = %v, want MALFORMED_INPUT", err)
			}
		})
	}
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	_, err := LoadFile("ride.gpx")
	if err == nil {
		t.Fatal("LoadFile should fail on unsupported extension")
	}
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error code = %v, want INVALID_REQUEST", err)
	}
}
