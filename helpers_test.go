package wavarray

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

// pcmFmtPayload returns a 16 byte fmt chunk payload.
func pcmFmtPayload(formatTag uint16, numChans, sampleRate, bitDepth int) []byte {
	blockAlign := numChans * int(SampleWidthFromBitDepth(bitDepth))

	payload := make([]byte, 16)
	binary.LittleEndian.PutUint16(payload[0:2], formatTag)
	binary.LittleEndian.PutUint16(payload[2:4], uint16(numChans))
	binary.LittleEndian.PutUint32(payload[4:8], uint32(sampleRate))
	binary.LittleEndian.PutUint32(payload[8:12], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(payload[12:14], uint16(blockAlign))
	binary.LittleEndian.PutUint16(payload[14:16], uint16(bitDepth))

	return payload
}

// extensibleFmtPayload returns a 40 byte WAVE_FORMAT_EXTENSIBLE fmt payload.
func extensibleFmtPayload(subFormat uint16, numChans, sampleRate, bitDepth int) []byte {
	payload := pcmFmtPayload(wavFormatExtensible, numChans, sampleRate, bitDepth)

	ext := make([]byte, 24)
	binary.LittleEndian.PutUint16(ext[0:2], 22)
	binary.LittleEndian.PutUint16(ext[2:4], uint16(bitDepth))
	binary.LittleEndian.PutUint32(ext[4:8], 0x3)
	binary.LittleEndian.PutUint16(ext[8:10], subFormat)
	copy(ext[12:], []byte{0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71})

	return append(payload, ext...)
}

// makeWav assembles a RIFF/WAVE container out of the passed chunks, in order.
func makeWav(t *testing.T, chunks ...testChunk) []byte {
	t.Helper()

	var b bytes.Buffer
	b.WriteString("RIFF")

	err := binary.Write(&b, binary.LittleEndian, uint32(0))
	if err != nil {
		t.Fatalf("write riff size placeholder: %v", err)
	}

	b.WriteString("WAVE")

	for _, ch := range chunks {
		writeTestChunk(t, &b, ch)
	}

	out := b.Bytes()
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))

	return out
}

// writeTestChunk writes the chunk, using ch.size as the declared size when set.
func writeTestChunk(t *testing.T, b *bytes.Buffer, ch testChunk) {
	t.Helper()

	if len(ch.id) != 4 {
		t.Fatalf("chunk id must be 4 bytes, got %q", ch.id)
	}

	size := ch.size
	if size == 0 {
		size = uint32(len(ch.data))
	}

	b.WriteString(ch.id)

	err := binary.Write(b, binary.LittleEndian, size)
	if err != nil {
		t.Fatalf("write chunk size for %q: %v", ch.id, err)
	}

	if _, err := b.Write(ch.data); err != nil {
		t.Fatalf("write chunk payload for %q: %v", ch.id, err)
	}

	if len(ch.data)%2 == 1 {
		err := b.WriteByte(0)
		if err != nil {
			t.Fatalf("write chunk pad for %q: %v", ch.id, err)
		}
	}
}

func fmtChunk(payload []byte) testChunk {
	return testChunk{id: "fmt ", data: payload}
}

func dataChunk(payload []byte) testChunk {
	return testChunk{id: "data", data: payload}
}

func parseWavChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errors.New("file too small")
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errors.New("invalid riff/wave header")
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("chunk %q exceeds file size", id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

func findChunk(chunks []testChunk, id string) (*testChunk, int) {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i], i
		}
	}

	return nil, -1
}

// writeFixture encodes samples into a wav file under t.TempDir and returns
// its path.
func writeFixture(t *testing.T, name string, sampleRate int, width SampleWidth, numChans int, samples []int64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)

	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer out.Close()

	enc := NewEncoder(out, sampleRate, width, numChans)

	err = enc.WriteSamples(samples)
	if err != nil {
		t.Fatalf("write samples: %v", err)
	}

	err = enc.Close()
	if err != nil {
		t.Fatalf("close encoder: %v", err)
	}

	return path
}

func assertInt64Slices(t *testing.T, got, want []int64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d\n got=%v\nwant=%v", len(got), len(want), got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample[%d]=%d, want %d\n got=%v\nwant=%v", i, got[i], want[i], got, want)
		}
	}
}

func assertFloat64Slices(t *testing.T, got, want []float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d\n got=%v\nwant=%v", len(got), len(want), got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("value[%d]=%v, want %v\n got=%v\nwant=%v", i, got[i], want[i], got, want)
		}
	}
}
