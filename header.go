package wavarray

import (
	"fmt"
	"math"
)

// SampleWidth is the number of bytes used to store one single-channel sample.
type SampleWidth int

// Supported sample widths.
const (
	Width8  SampleWidth = 1
	Width16 SampleWidth = 2
	Width24 SampleWidth = 3
	Width32 SampleWidth = 4
	Width64 SampleWidth = 8
)

// SampleWidthFromBitDepth returns the storage width of samples using the
// passed amount of significant bits. Bits are rounded up to whole bytes.
func SampleWidthFromBitDepth(bitDepth int) SampleWidth {
	if bitDepth <= 0 {
		return 0
	}

	return SampleWidth((bitDepth-1)/8 + 1)
}

// Valid reports whether w is one of the supported widths.
func (w SampleWidth) Valid() bool {
	switch w {
	case Width8, Width16, Width24, Width32, Width64:
		return true
	default:
		return false
	}
}

// BitDepth returns the storage size of a sample in bits.
func (w SampleWidth) BitDepth() int {
	return int(w) * 8
}

func (w SampleWidth) String() string {
	if !w.Valid() {
		return fmt.Sprintf("SampleWidth(%d)", int(w))
	}

	return fmt.Sprintf("int%d", w.BitDepth())
}

// Header describes the layout of an interleaved PCM buffer.
type Header struct {
	NumChans    int
	NumFrames   int
	SampleWidth SampleWidth
}

// Validate checks that the header describes a layout Decode can handle.
func (h Header) Validate() error {
	if h.NumChans < 1 {
		return formatError(fmt.Errorf("%w: %d", errInvalidChannelCount, h.NumChans))
	}

	if h.NumFrames < 0 {
		return formatError(fmt.Errorf("%w: %d", errInvalidFrameCount, h.NumFrames))
	}

	if !h.SampleWidth.Valid() {
		return formatError(fmt.Errorf("%w: %d bytes", ErrUnsupportedSampleWidth, int(h.SampleWidth)))
	}

	// NumSamples, BlockAlign and DataSize must not wrap around
	if h.NumChans > math.MaxInt/int(h.SampleWidth) || h.NumFrames > math.MaxInt/h.BlockAlign() {
		return formatError(fmt.Errorf("%w: %s", errLayoutTooLarge, h))
	}

	return nil
}

// NumSamples returns the amount of single-channel samples, all channels included.
func (h Header) NumSamples() int {
	return h.NumFrames * h.NumChans
}

// BlockAlign returns the size in bytes of one frame.
func (h Header) BlockAlign() int {
	return h.NumChans * int(h.SampleWidth)
}

// DataSize returns the expected size in bytes of the raw sample buffer.
func (h Header) DataSize() int {
	return h.NumFrames * h.BlockAlign()
}

func (h Header) String() string {
	return fmt.Sprintf("%d channel(s), %d frame(s), %s", h.NumChans, h.NumFrames, h.SampleWidth)
}
