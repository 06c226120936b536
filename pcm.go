package wavarray

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Decode converts raw little-endian PCM bytes into channel-interleaved signed
// samples. Sample i of the output belongs to frame i/NumChans and channel
// i%NumChans. The raw buffer must hold exactly h.DataSize() bytes.
func Decode(h Header, raw []byte) ([]int64, error) {
	err := h.Validate()
	if err != nil {
		return nil, err
	}

	size := h.DataSize()
	if len(raw) < size {
		return nil, formatError(fmt.Errorf("%w: got %d bytes, want %d for %s", ErrTruncatedData, len(raw), size, h))
	}

	if len(raw) > size {
		return nil, formatError(fmt.Errorf("%w: got %d bytes, want %d for %s", ErrTrailingData, len(raw), size, h))
	}

	n := h.NumSamples()

	// NOTE: WAV PCM data is stored using little-endian
	switch h.SampleWidth {
	case Width8:
		return decodeBulk[int8](raw, n)
	case Width16:
		return decodeBulk[int16](raw, n)
	case Width24:
		return decodeInt24(raw, h.NumFrames, h.NumChans), nil
	case Width32:
		return decodeBulk[int32](raw, n)
	case Width64:
		return decodeBulk[int64](raw, n)
	default:
		return nil, formatError(fmt.Errorf("%w: %d bytes", ErrUnsupportedSampleWidth, int(h.SampleWidth)))
	}
}

// decodeBulk reinterprets the whole buffer as n fixed-size little-endian
// integers in a single read.
func decodeBulk[T int8 | int16 | int32 | int64](raw []byte, n int) ([]int64, error) {
	tmp := make([]T, n)

	err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, tmp)
	if err != nil {
		return nil, formatError(fmt.Errorf("failed to read %d samples: %w", n, err))
	}

	out := make([]int64, n)
	for i, v := range tmp {
		out[i] = int64(v)
	}

	return out, nil
}

// decodeInt24 walks the buffer one frame at a time since there is no native
// 24-bit integer type to read into.
func decodeInt24(raw []byte, numFrames, numChans int) []int64 {
	out := make([]int64, 0, numFrames*numChans)

	blockAlign := numChans * int(Width24)
	for f := range numFrames {
		frame := raw[f*blockAlign : (f+1)*blockAlign]
		for c := 0; c < len(frame); c += int(Width24) {
			out = append(out, int64(int24LE(frame[c:c+3])))
		}
	}

	return out
}

// int24LE decodes a 3 byte little-endian signed sample. The bytes are placed in
// the top three bytes of a 32-bit little-endian word and the arithmetic shift
// back down by 8 bits replicates the sign bit.
func int24LE(b []byte) int32 {
	var word [4]byte
	copy(word[1:], b[:3])

	return int32(binary.LittleEndian.Uint32(word[:])) >> 8
}
