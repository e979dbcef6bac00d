package workout

import "sort"

const kmeansMaxIter = 100

// Quantize snaps the series onto at most `levels` intensity levels using
// one-dimensional k-means. Centroids are seeded at evenly spaced quantiles
// of the sorted data, so the result is deterministic for a given input.
// A levels value of 0 (or fewer distinct values than levels) leaves the
// series unchanged where quantization would be a no-op.
func Quantize(values []float64, levels int) []float64 {
	if levels <= 0 || len(values) == 0 {
		return values
	}

	distinct := distinctSorted(values)
	k := levels
	if k >= len(distinct) {
		return values
	}

	centroids := seedQuantiles(distinct, k)
	assign := make([]int, len(values))

	for iter := 0; iter < kmeansMaxIter; iter++ {
		changed := false
		for i, v := range values {
			c := nearest(centroids, v)
			if assign[i] != c {
				assign[i] = c
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}

		sums := make([]float64, k)
		counts := make([]int, k)
		for i, v := range values {
			sums[assign[i]] += v
			counts[assign[i]]++
		}
		for c := range centroids {
			if counts[c] > 0 {
				centroids[c] = sums[c] / float64(counts[c])
			}
		}
	}

	out := make([]float64, len(values))
	for i := range values {
		out[i] = centroids[assign[i]]
	}
	return out
}

func distinctSorted(values []float64) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	distinct := sorted[:1]
	for _, v := range sorted[1:] {
		if v != distinct[len(distinct)-1] {
			distinct = append(distinct, v)
		}
	}
	return distinct
}

func seedQuantiles(distinct []float64, k int) []float64 {
	if k == 1 {
		return []float64{distinct[len(distinct)/2]}
	}
	centroids := make([]float64, k)
	for c := range centroids {
		pos := float64(c) * float64(len(distinct)-1) / float64(k-1)
		centroids[c] = distinct[int(pos)]
	}
	return centroids
}

func nearest(centroids []float64, v float64) int {
	best := 0
	bestDist := dist(centroids[0], v)
	for c := 1; c < len(centroids); c++ {
		if d := dist(centroids[c], v); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func dist(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
