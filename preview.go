package wavarray

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultPreviewLen is the amount of values printed by default.
const DefaultPreviewLen = 500

// Preview returns at most the first n values. A non-positive n keeps everything.
// The returned slice shares its backing array with values.
func Preview[T int64 | float64](values []T, n int) []T {
	if n <= 0 || n >= len(values) {
		return values
	}

	return values[:n]
}

// WritePreview renders values as a bracketed, comma separated list.
// Whole numbers keep a trailing ".0" so that 1 renders as 1.0.
func WritePreview(w io.Writer, values []float64) error {
	bw := bufio.NewWriter(w)

	bw.WriteByte('[')

	for i, v := range values {
		if i > 0 {
			bw.WriteString(", ")
		}

		bw.WriteString(formatFloat(v))
	}

	bw.WriteString("]\n")

	err := bw.Flush()
	if err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}

	return nil
}

// WriteIntPreview renders integer samples the same way WritePreview does.
func WriteIntPreview(w io.Writer, values []int64) error {
	bw := bufio.NewWriter(w)

	bw.WriteByte('[')

	for i, v := range values {
		if i > 0 {
			bw.WriteString(", ")
		}

		bw.WriteString(strconv.FormatInt(v, 10))
	}

	bw.WriteString("]\n")

	err := bw.Flush()
	if err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}

	return nil
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}

	return s
}
