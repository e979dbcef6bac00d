// Package workout turns a per-second intensity series into a structured
// workout: a short list of steady and ramp segments that covers the whole
// recording.
package workout

// Kind tells a steady block apart from a ramp.
type Kind string

const (
	KindSteady Kind = "steady"
	KindRamp   Kind = "ramp"
)

// Segment is one block of the workout. Intensities are fractions of FTP
// (0.75 means 75% of FTP). Steady segments use Target; ramps use
// StartIntensity and EndIntensity.
type Segment struct {
	DurationSeconds int     `json:"duration_seconds"`
	Kind            Kind    `json:"kind"`
	Target          float64 `json:"target,omitempty"`
	StartIntensity  float64 `json:"start_intensity,omitempty"`
	EndIntensity    float64 `json:"end_intensity,omitempty"`
}

// Workout is a named segment list ready for serialization.
type Workout struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	FTPWatts    int       `json:"ftp_watts"`
	Segments    []Segment `json:"segments"`
}

// TotalSeconds sums the segment durations.
func (w *Workout) TotalSeconds() int {
	total := 0
	for _, s := range w.Segments {
		total += s.DurationSeconds
	}
	return total
}
