package zwo

import (
	"encoding/xml"
	"strconv"

	"github.com/hpungsan/zwogen/internal/errors"
	"github.com/hpungsan/zwogen/internal/workout"
)

type parsedFile struct {
	XMLName     xml.Name      `xml:"workout_file"`
	Name        string        `xml:"name"`
	Description string        `xml:"description"`
	Workout     parsedWorkout `xml:"workout"`
}

type parsedWorkout struct {
	Blocks []block `xml:",any"`
}

// Parse reads a Zwift workout file back into a Workout. Warmup, Ramp, and
// Cooldown elements all come back as ramp segments; the positional naming
// carries no extra information.
func Parse(data []byte) (*workout.Workout, error) {
	var doc parsedFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewMalformedInput("", "decode workout XML: "+err.Error())
	}

	if len(doc.Workout.Blocks) == 0 {
		return nil, errors.NewMalformedInput("workout", "workout file has no blocks")
	}

	segments := make([]workout.Segment, len(doc.Workout.Blocks))
	for i, b := range doc.Workout.Blocks {
		seg, err := blockSegment(b)
		if err != nil {
			return nil, err
		}
		segments[i] = seg
	}

	return &workout.Workout{
		Name:        doc.Name,
		Description: doc.Description,
		Segments:    segments,
	}, nil
}

func blockSegment(b block) (workout.Segment, error) {
	if b.Duration <= 0 {
		return workout.Segment{}, errors.NewMalformedInput("Duration", "block has non-positive duration")
	}

	switch b.XMLName.Local {
	case elemSteadyState:
		target, err := parsePower(b.Power, "Power")
		if err != nil {
			return workout.Segment{}, err
		}
		return workout.Segment{
			DurationSeconds: b.Duration,
			Kind:            workout.KindSteady,
			Target:          target,
		}, nil
	case elemRamp, elemWarmup, elemCooldown:
		lo, err := parsePower(b.PowerLow, "PowerLow")
		if err != nil {
			return workout.Segment{}, err
		}
		hi, err := parsePower(b.PowerHigh, "PowerHigh")
		if err != nil {
			return workout.Segment{}, err
		}
		return workout.Segment{
			DurationSeconds: b.Duration,
			Kind:            workout.KindRamp,
			StartIntensity:  lo,
			EndIntensity:    hi,
		}, nil
	default:
		return workout.Segment{}, errors.NewMalformedInput("workout", "unsupported block element "+b.XMLName.Local)
	}
}

func parsePower(raw, attr string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, errors.NewMalformedInput(attr, "invalid "+attr+" value "+strconv.Quote(raw))
	}
	return v, nil
}
