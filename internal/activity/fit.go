package activity

import (
	"math"
	"os"
	"time"

	"github.com/tormoder/fit"

	"github.com/hpungsan/zwogen/internal/errors"
)

// loadFITFile decodes a FIT activity file into a Series. Power comes from
// record messages; records without a power reading (sentinel MaxUint16)
// are skipped, and elapsed time is measured from the first usable record.
func loadFITFile(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer f.Close()

	decoded, err := fit.Decode(f)
	if err != nil {
		return nil, errors.NewMalformedInput("", "decode FIT file: "+err.Error())
	}

	act, err := decoded.Activity()
	if err != nil {
		return nil, errors.NewMalformedInput("", "not an activity FIT file: "+err.Error())
	}

	var samples []Sample
	var start time.Time
	for _, rec := range act.Records {
		if rec == nil {
			continue
		}
		ts := rec.Timestamp
		if ts.IsZero() || fit.IsBaseTime(ts) {
			continue
		}
		if rec.Power == math.MaxUint16 {
			continue
		}
		if start.IsZero() {
			start = ts
		}
		samples = append(samples, Sample{
			Elapsed: ts.Sub(start).Seconds(),
			Watts:   float64(rec.Power),
		})
	}

	if len(samples) == 0 {
		return nil, errors.NewMalformedInput("power", "FIT file has no power records")
	}

	// FIT recordings can repeat a timestamp when two records land in the
	// same second; keep the last reading for each second.
	deduped := samples[:1]
	for _, s := range samples[1:] {
		if s.Elapsed <= deduped[len(deduped)-1].Elapsed {
			deduped[len(deduped)-1].Watts = s.Watts
			continue
		}
		deduped = append(deduped, s)
	}

	series := &Series{Samples: deduped}
	if err := series.validate(); err != nil {
		return nil, err
	}
	return series, nil
}
