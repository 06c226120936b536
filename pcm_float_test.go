package wavarray

import (
	"math"
	"testing"
)

func TestClampFloat64(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min, max float64
		want     float64
	}{
		{"below min", -2, -1, 1, -1},
		{"at min", -1, -1, 1, -1},
		{"in range", 0.5, -1, 1, 0.5},
		{"at max", 1, -1, 1, 1},
		{"above max", 2, -1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clampFloat64(tt.value, tt.min, tt.max)
			if got != tt.want {
				t.Fatalf("clampFloat64(%f, %f, %f)=%f, want %f", tt.value, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestSampleRange(t *testing.T) {
	tests := []struct {
		width  SampleWidth
		lo, hi int64
	}{
		{Width8, math.MinInt8, math.MaxInt8},
		{Width16, math.MinInt16, math.MaxInt16},
		{Width24, -8388608, 8388607},
		{Width32, math.MinInt32, math.MaxInt32},
		{Width64, math.MinInt64, math.MaxInt64},
		{SampleWidth(5), 0, 0},
	}

	for _, tt := range tests {
		lo, hi := sampleRange(tt.width)
		if lo != tt.lo || hi != tt.hi {
			t.Fatalf("sampleRange(%s)=[%d, %d], want [%d, %d]", tt.width, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestFloatToPCM(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		width SampleWidth
		want  int64
	}{
		{"8bit max", 1, Width8, 127},
		{"8bit min", -1, Width8, -128},
		{"16bit half", 0.5, Width16, 16384},
		{"16bit clamp high", 2, Width16, 32767},
		{"16bit clamp low", -2, Width16, -32768},
		{"24bit half", 0.5, Width24, 4194304},
		{"24bit max", 1, Width24, 8388607},
		{"32bit quarter", 0.25, Width32, 536870912},
		{"64bit max", 1, Width64, math.MaxInt64},
		{"64bit min", -1, Width64, math.MinInt64},
		{"zero", 0, Width16, 0},
		{"unsupported", 0.5, SampleWidth(5), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := floatToPCM(tt.value, tt.width)
			if got != tt.want {
				t.Fatalf("floatToPCM(%f, %s)=%d, want %d", tt.value, tt.width, got, tt.want)
			}
		})
	}
}
