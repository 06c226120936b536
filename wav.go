package wavarray

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is wrapped by every error caused by an unsupported or
	// inconsistent sample layout.
	ErrFormat = errors.New("invalid PCM format")
	// ErrUnsupportedSampleWidth is returned for sample widths other than
	// 1, 2, 3, 4 or 8 bytes.
	ErrUnsupportedSampleWidth = errors.New("unsupported sample width")
	// ErrTruncatedData is returned when the raw buffer holds fewer bytes than
	// the header announces.
	ErrTruncatedData = errors.New("truncated PCM data")
	// ErrTrailingData is returned when the raw buffer holds more bytes than
	// the header announces.
	ErrTrailingData = errors.New("unexpected trailing PCM data")
	// ErrDivideByZero is returned when normalizing an empty or silent sequence.
	ErrDivideByZero = errors.New("can't normalize a sequence without amplitude")

	errInvalidChannelCount = errors.New("invalid channel count")
	errInvalidFrameCount   = errors.New("invalid frame count")
	errLayoutTooLarge      = errors.New("layout size overflows int")
)

// formatError tags err as a format fault so callers can match ErrFormat.
func formatError(err error) error {
	if errors.Is(err, ErrFormat) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrFormat, err)
}
