package activity

import "math"

// Resample linearly interpolates the series onto a one-second grid and
// returns the per-second power values. The grid runs from the first
// sample's elapsed time for floor(total) ticks, so the returned length is
// the activity's whole-second duration. floorWatts clamps the result from
// below (0 disables the clamp); outdoor recordings drop to zero on
// descents, which would otherwise dominate the trainer file with coasting
// blocks.
func Resample(s *Series, floorWatts int) []float64 {
	if len(s.Samples) == 0 {
		return nil
	}

	t0 := s.Samples[0].Elapsed
	ticks := int(math.Floor(s.TotalSeconds()))
	if ticks <= 0 {
		return nil
	}

	out := make([]float64, ticks)
	idx := 0
	for i := 0; i < ticks; i++ {
		t := t0 + float64(i)

		// Advance to the sample pair bracketing t.
		for idx+1 < len(s.Samples)-1 && s.Samples[idx+1].Elapsed <= t {
			idx++
		}
		a, b := s.Samples[idx], s.Samples[idx+1]

		var w float64
		switch {
		case t <= a.Elapsed:
			w = a.Watts
		case t >= b.Elapsed:
			w = b.Watts
		default:
			frac := (t - a.Elapsed) / (b.Elapsed - a.Elapsed)
			w = a.Watts + frac*(b.Watts-a.Watts)
		}

		if floorWatts > 0 && w < float64(floorWatts) {
			w = float64(floorWatts)
		}
		out[i] = w
	}
	return out
}
