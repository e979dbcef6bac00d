// Package zwo serializes workouts to the Zwift workout XML format and
// parses them back.
package zwo

import (
	"encoding/xml"
	"strconv"

	"github.com/hpungsan/zwogen/internal/errors"
	"github.com/hpungsan/zwogen/internal/workout"
)

// Element names understood by Zwift. Warmup and Cooldown are ramps with
// positional meaning: Zwift renders the opening and closing ramp of a
// workout differently from a mid-workout Ramp.
const (
	elemSteadyState = "SteadyState"
	elemRamp        = "Ramp"
	elemWarmup      = "Warmup"
	elemCooldown    = "Cooldown"
)

type workoutFile struct {
	XMLName     xml.Name    `xml:"workout_file"`
	Author      string      `xml:"author"`
	Name        string      `xml:"name"`
	Description string      `xml:"description,omitempty"`
	SportType   string      `xml:"sportType"`
	Workout     workoutElem `xml:"workout"`
}

// workoutElem wraps the block list so each block marshals under its own
// element name.
type workoutElem struct {
	Blocks []block
}

// block is one workout child element. Steady blocks carry Power; ramps
// carry PowerLow and PowerHigh. All powers are fractions of FTP.
type block struct {
	XMLName   xml.Name
	Duration  int    `xml:"Duration,attr"`
	Power     string `xml:"Power,attr,omitempty"`
	PowerLow  string `xml:"PowerLow,attr,omitempty"`
	PowerHigh string `xml:"PowerHigh,attr,omitempty"`
}

// Marshal renders the workout as a Zwift workout file. The first and last
// ramp segments become Warmup and Cooldown elements. A workout with no
// segments cannot be serialized.
func Marshal(w *workout.Workout) ([]byte, error) {
	if len(w.Segments) == 0 {
		return nil, errors.NewSerialization("workout has no segments")
	}

	blocks := make([]block, len(w.Segments))
	for i, seg := range w.Segments {
		if seg.DurationSeconds <= 0 {
			return nil, errors.NewSerialization("segment has non-positive duration")
		}
		blocks[i] = segmentBlock(seg, i == 0, i == len(w.Segments)-1)
	}

	doc := workoutFile{
		Author:      "zwogen",
		Name:        w.Name,
		Description: w.Description,
		SportType:   "bike",
		Workout:     workoutElem{Blocks: blocks},
	}

	body, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, errors.NewSerialization("encode workout XML: " + err.Error())
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

func segmentBlock(seg workout.Segment, first, last bool) block {
	if seg.Kind == workout.KindSteady {
		return block{
			XMLName:  xml.Name{Local: elemSteadyState},
			Duration: seg.DurationSeconds,
			Power:    formatPower(seg.Target),
		}
	}

	name := elemRamp
	if first {
		name = elemWarmup
	} else if last {
		name = elemCooldown
	}
	return block{
		XMLName:   xml.Name{Local: name},
		Duration:  seg.DurationSeconds,
		PowerLow:  formatPower(seg.StartIntensity),
		PowerHigh: formatPower(seg.EndIntensity),
	}
}

// formatPower renders an FTP fraction with two decimals, the precision
// Zwift's own workout editor writes.
func formatPower(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
