package workout

import (
	"github.com/hpungsan/zwogen/internal/config"
	"github.com/hpungsan/zwogen/internal/errors"
)

// span is a half-open sample index range [start, end).
type span struct {
	start, end int
}

func (s span) len() int { return s.end - s.start }

// Build turns a normalized 1 Hz intensity series into the segment list.
// The series is optionally smoothed and quantized, then split greedily into
// runs whose samples stay within the merge tolerance of the run's linear
// trend, and finally regrouped so no emitted segment is shorter than
// MinSegmentSeconds. Segment durations always sum to len(intensities).
func Build(intensities []float64, cfg *config.Config) ([]Segment, error) {
	if len(intensities) < cfg.MinViableSeconds {
		return nil, errors.NewInsufficientData(len(intensities), cfg.MinViableSeconds)
	}

	series := MedianFilter(intensities, cfg.SmoothingWindow)
	series = Quantize(series, cfg.QuantizeLevels)

	runs := splitRuns(series, cfg.MergeToleranceFTP)
	runs = mergeTrailingSample(runs)
	groups := groupShortRuns(runs, cfg.MinSegmentSeconds)

	segments := make([]Segment, 0, len(groups))
	for _, g := range groups {
		segments = append(segments, classify(series, g, cfg))
	}
	return segments, nil
}

// splitRuns walks the series greedily, extending the current run as long
// as every sample in it stays within tol of the straight line from the
// run's first sample to the candidate. A flat stretch and a constant-slope
// ramp both survive as a single run; a step change breaks the run at the
// step.
func splitRuns(series []float64, tol float64) []span {
	var runs []span
	start := 0
	for i := 1; i < len(series); i++ {
		if !fitsLine(series, start, i, tol) {
			runs = append(runs, span{start, i})
			start = i
		}
	}
	return append(runs, span{start, len(series)})
}

// fitsLine reports whether every sample in [start, end] stays within tol
// of the line through series[start] and series[end].
func fitsLine(series []float64, start, end int, tol float64) bool {
	if end <= start {
		return true
	}
	slope := (series[end] - series[start]) / float64(end-start)
	for k := start + 1; k < end; k++ {
		pred := series[start] + slope*float64(k-start)
		if dist(series[k], pred) > tol {
			return false
		}
	}
	return true
}

// mergeTrailingSample folds a final one-sample run into its predecessor.
// A lone trailing sample is a resampling artifact, not a real block.
func mergeTrailingSample(runs []span) []span {
	n := len(runs)
	if n >= 2 && runs[n-1].len() == 1 {
		runs[n-2].end = runs[n-1].end
		runs = runs[:n-1]
	}
	return runs
}

// groupShortRuns coalesces consecutive runs until each group covers at
// least minSeconds, so the trainer never flips targets every few seconds.
// A short leftover at the tail joins the last full group. If the whole
// series is shorter than minSeconds it comes back as one group.
func groupShortRuns(runs []span, minSeconds int) []span {
	if minSeconds <= 1 {
		return runs
	}

	var groups []span
	open := runs[0]
	for _, r := range runs[1:] {
		if open.len() >= minSeconds {
			groups = append(groups, open)
			open = r
			continue
		}
		open.end = r.end
	}

	if open.len() >= minSeconds || len(groups) == 0 {
		return append(groups, open)
	}
	groups[len(groups)-1].end = open.end
	return groups
}

// classify emits the segment for one sample group. A narrow intensity
// range is a steady block at the mean; a group that tracks a single
// linear trend is a ramp between its endpoints; anything else (typically
// coalesced short runs) flattens to a steady block at the mean.
func classify(series []float64, g span, cfg *config.Config) Segment {
	lo, hi, sum := series[g.start], series[g.start], 0.0
	for _, v := range series[g.start:g.end] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		sum += v
	}

	dur := g.len()
	mean := sum / float64(dur)

	if hi-lo <= cfg.SteadyToleranceFTP {
		return Segment{DurationSeconds: dur, Kind: KindSteady, Target: mean}
	}
	if fitsLine(series, g.start, g.end-1, cfg.MergeToleranceFTP) {
		return Segment{
			DurationSeconds: dur,
			Kind:            KindRamp,
			StartIntensity:  series[g.start],
			EndIntensity:    series[g.end-1],
		}
	}
	return Segment{DurationSeconds: dur, Kind: KindSteady, Target: mean}
}
