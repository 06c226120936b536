package wavarray

import (
	"fmt"
	"math"
)

// NormalizePrecision is the number of decimal places kept by Normalize.
const NormalizePrecision = 4

var normalizeScale = math.Pow10(NormalizePrecision)

// MaxAbs returns the peak absolute value of the sequence. It is returned as an
// unsigned value so that math.MinInt64 doesn't overflow.
func MaxAbs(samples []int64) uint64 {
	var peak uint64

	for _, s := range samples {
		peak = max(peak, absInt64(s))
	}

	return peak
}

// Normalize rescales the samples into [-1, 1] by dividing every value by the
// peak absolute value of the whole sequence (all channels share the divisor).
// Results are rounded to NormalizePrecision decimal places, with ties rounded
// away from zero. The peak sample always maps to exactly 1 or -1.
//
// ErrDivideByZero is returned for empty or all-zero input; see
// NormalizeOrSilence for callers that treat silence as valid audio.
func Normalize(samples []int64) ([]float64, error) {
	peak := MaxAbs(samples)
	if peak == 0 {
		return nil, fmt.Errorf("%w: %d sample(s), peak is 0", ErrDivideByZero, len(samples))
	}

	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = roundRatio(s, peak)
	}

	return out, nil
}

// NormalizeOrSilence behaves like Normalize but returns a zero sequence of the
// same length when the input carries no amplitude.
func NormalizeOrSilence(samples []int64) []float64 {
	out, err := Normalize(samples)
	if err != nil {
		return make([]float64, len(samples))
	}

	return out
}

// roundRatio returns round(x/peak) at NormalizePrecision decimals. The value is
// scaled before dividing so that exact decimal ties stay exact in float64.
func roundRatio(x int64, peak uint64) float64 {
	scaled := float64(x) * normalizeScale / float64(peak)

	return math.Round(scaled) / normalizeScale
}

func absInt64(v int64) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}

	return uint64(v)
}
