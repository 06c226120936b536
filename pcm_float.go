package wavarray

import "math"

func clampFloat64(value, min, max float64) float64 {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// sampleRange returns the smallest and largest sample storable at width w.
func sampleRange(w SampleWidth) (int64, int64) {
	if !w.Valid() {
		return 0, 0
	}

	if w == Width64 {
		return math.MinInt64, math.MaxInt64
	}

	hi := int64(1)<<(w.BitDepth()-1) - 1

	return -hi - 1, hi
}

// floatToPCM scales a [-1, 1] value to the full integer range of width w.
// Values outside of [-1, 1] are clamped.
func floatToPCM(value float64, w SampleWidth) int64 {
	lo, hi := sampleRange(w)
	if hi == 0 {
		return 0
	}

	value = clampFloat64(value, -1, 1)

	sample := math.Round(value * -float64(lo))
	if sample >= float64(hi) {
		return hi
	}

	if sample <= float64(lo) {
		return lo
	}

	return int64(sample)
}
