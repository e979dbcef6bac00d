package workout

import "sort"

// MedianFilter smooths the series with a sliding median of the given odd
// window size, which knocks out power spikes and dropouts without rounding
// off genuine interval edges the way a moving average would. Edges are
// padded by repeating the first and last values. A window of 0 or 1
// returns the input unchanged.
func MedianFilter(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		return values
	}
	if window%2 == 0 {
		window++
	}
	if window > len(values) {
		window = len(values)
		if window%2 == 0 {
			window--
		}
	}
	if window <= 1 {
		return values
	}

	half := window / 2
	out := make([]float64, len(values))
	buf := make([]float64, window)
	for i := range values {
		for j := 0; j < window; j++ {
			idx := i - half + j
			if idx < 0 {
				idx = 0
			}
			if idx >= len(values) {
				idx = len(values) - 1
			}
			buf[j] = values[idx]
		}
		sort.Float64s(buf)
		out[i] = buf[half]
	}
	return out
}
