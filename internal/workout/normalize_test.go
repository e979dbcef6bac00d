package workout

import (
	"math"
	"testing"

	"github.com/hpungsan/zwogen/internal/errors"
)

func TestNormalize(t *testing.T) {
	got, err := Normalize([]float64{150, 300, 450}, 300)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := []float64{0.5, 1.0, 1.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNormalize_InvalidFTP(t *testing.T) {
	for _, ftp := range []int{0, -100} {
		_, err := Normalize([]float64{100}, ftp)
		if err == nil {
			t.Fatalf("Normalize(ftp=%d) should fail", ftp)
		}
		if !errors.Is(err, errors.ErrInvalidProfile) {
			t.Errorf("error code = %v, want INVALID_PROFILE", err)
		}
	}
}
