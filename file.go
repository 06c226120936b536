package wavarray

import (
	"fmt"
	"os"
)

// DecodeFile opens the wav file at path and decodes all of its samples.
// The file is closed before returning, on success or failure.
func DecodeFile(path string) (Header, []int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return Header{}, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	dec := NewDecoder(file)

	h, raw, err := dec.ReadPCM()
	if err != nil {
		return Header{}, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	samples, err := Decode(h, raw)
	if err != nil {
		return Header{}, nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return h, samples, nil
}
