package workout

import "github.com/hpungsan/zwogen/internal/errors"

// Normalize divides each power value by the rider's FTP, producing the
// intensity series the segmenter works in. FTP must be positive.
func Normalize(power []float64, ftpWatts int) ([]float64, error) {
	if ftpWatts <= 0 {
		return nil, errors.NewInvalidProfile(ftpWatts)
	}
	out := make([]float64, len(power))
	ftp := float64(ftpWatts)
	for i, w := range power {
		out[i] = w / ftp
	}
	return out, nil
}
