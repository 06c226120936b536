package wavarray

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var (
	errAlreadyWroteHdr  = errors.New("already wrote header")
	errNilEncoder       = errors.New("can't write a nil encoder")
	errNilWriter        = errors.New("can't write to a nil writer")
	errNilBuffer        = errors.New("can't add a nil buffer")
	errPartialFrame     = errors.New("sample count isn't a multiple of the channel count")
	errChannelMismatch  = errors.New("buffer channel count doesn't match the encoder")
	errSampleOutOfRange = errors.New("sample out of range")
)

// Encoder encodes integer LPCM data into a wav container.
type Encoder struct {
	w   io.WriteSeeker
	buf *bytes.Buffer

	SampleRate  int
	SampleWidth SampleWidth
	NumChans    int

	WrittenBytes    int
	samples         int
	pcmChunkStarted bool
	pcmChunkSizePos int
	wroteHeader     bool // true if we've written the header out
}

// NewEncoder creates a new encoder to create a new wav file.
// Don't forget to Close the encoder once all samples are written.
func NewEncoder(w io.WriteSeeker, sampleRate int, width SampleWidth, numChans int) *Encoder {
	return &Encoder{
		w:           w,
		buf:         &bytes.Buffer{},
		SampleRate:  sampleRate,
		SampleWidth: width,
		NumChans:    numChans,
	}
}

// AddLE serializes and adds the passed value using little endian.
func (e *Encoder) AddLE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.LittleEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	return nil
}

// AddBE serializes and adds the passed value using big endian.
func (e *Encoder) AddBE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.BigEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write big endian: %w", err)
	}

	return nil
}

// WriteSamples encodes channel-interleaved samples. The amount of samples must
// be a multiple of the channel count and each sample must fit the sample width.
func (e *Encoder) WriteSamples(samples []int64) error {
	if e == nil {
		return errNilEncoder
	}

	if len(samples)%max(e.NumChans, 1) != 0 {
		return fmt.Errorf("%w: %d samples, %d channels", errPartialFrame, len(samples), e.NumChans)
	}

	err := e.startPCMChunk()
	if err != nil {
		return err
	}

	lo, hi := sampleRange(e.SampleWidth)
	for i, v := range samples {
		if v < lo || v > hi {
			return fmt.Errorf("%w: sample %d (%d) doesn't fit %s", errSampleOutOfRange, i, v, e.SampleWidth)
		}
	}

	// nothing of a failed batch may reach a later write
	defer e.buf.Reset()

	for _, v := range samples {
		err = e.addSample(v)
		if err != nil {
			return err
		}
	}

	if n, err := e.w.Write(e.buf.Bytes()); err != nil {
		e.WrittenBytes += n
		return fmt.Errorf("failed to write buffer: %w", err)
	}

	e.WrittenBytes += e.buf.Len()
	e.samples += len(samples)

	return nil
}

// Write encodes the passed int buffer.
func (e *Encoder) Write(buf *audio.IntBuffer) error {
	if buf == nil {
		return errNilBuffer
	}

	if buf.Format != nil && buf.Format.NumChannels != e.NumChans {
		return fmt.Errorf("%w: %d != %d", errChannelMismatch, buf.Format.NumChannels, e.NumChans)
	}

	samples := make([]int64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int64(v)
	}

	return e.WriteSamples(samples)
}

// WriteFloats scales [-1, 1] values to the full range of the sample width and
// encodes them. Values outside of [-1, 1] are clamped.
func (e *Encoder) WriteFloats(values []float64) error {
	samples := make([]int64, len(values))
	for i, v := range values {
		samples[i] = floatToPCM(v, e.SampleWidth)
	}

	return e.WriteSamples(samples)
}

func (e *Encoder) addSample(v int64) error {
	var err error

	switch e.SampleWidth {
	case Width8:
		err = e.buf.WriteByte(byte(int8(v)))
	case Width16:
		err = binary.Write(e.buf, binary.LittleEndian, int16(v))
	case Width24:
		_, err = e.buf.Write(audio.Int32toInt24LEBytes(int32(v)))
	case Width32:
		err = binary.Write(e.buf, binary.LittleEndian, int32(v))
	case Width64:
		err = binary.Write(e.buf, binary.LittleEndian, v)
	default:
		return formatError(fmt.Errorf("%w: %d bytes", ErrUnsupportedSampleWidth, int(e.SampleWidth)))
	}

	if err != nil {
		return fmt.Errorf("failed to write %s sample: %w", e.SampleWidth, err)
	}

	return nil
}

func (e *Encoder) startPCMChunk() error {
	if !e.wroteHeader {
		err := e.writeHeader()
		if err != nil {
			return err
		}
	}

	if e.pcmChunkStarted {
		return nil
	}

	// sound header
	err := e.AddLE(riff.DataFormatID)
	if err != nil {
		return fmt.Errorf("error encoding sound header %w", err)
	}

	e.pcmChunkStarted = true

	// write a temporary chunksize
	e.pcmChunkSizePos = e.WrittenBytes

	err = e.AddLE(uint32(4294967295))
	if err != nil {
		return fmt.Errorf("%w when writing wav data chunk size header", err)
	}

	return nil
}

func (e *Encoder) writeHeader() error {
	if e == nil {
		return errNilEncoder
	}

	if e.wroteHeader {
		return errAlreadyWroteHdr
	}

	if e.w == nil {
		return errNilWriter
	}

	header := Header{NumChans: e.NumChans, SampleWidth: e.SampleWidth}

	err := header.Validate()
	if err != nil {
		return fmt.Errorf("can't encode %s: %w", header, err)
	}

	e.wroteHeader = true

	// riff ID
	err = e.AddLE(riff.RiffID)
	if err != nil {
		return err
	}
	// file size uint32, to update later on.
	err = e.AddLE(uint32(4294967295))
	if err != nil {
		return err
	}
	// wave headers
	err = e.AddLE(riff.WavFormatID)
	if err != nil {
		return err
	}
	// form
	err = e.AddLE(riff.FmtID)
	if err != nil {
		return err
	}

	return e.writeFmtChunk(header.BlockAlign())
}

func (e *Encoder) writeFmtChunk(blockAlign int) error {
	chunk := &FmtChunk{
		FormatTag:      wavFormatPCM,
		NumChannels:    uint16(e.NumChans),
		SampleRate:     uint32(e.SampleRate),
		AvgBytesPerSec: uint32(e.SampleRate * blockAlign),
		BlockAlign:     uint16(blockAlign),
		BitsPerSample:  uint16(e.SampleWidth.BitDepth()),
	}

	err := e.AddLE(uint32(16))
	if err != nil {
		return err
	}

	err = e.AddLE(chunk.FormatTag)
	if err != nil {
		return err
	}

	err = e.AddLE(chunk.NumChannels)
	if err != nil {
		return fmt.Errorf("error encoding the number of channels - %w", err)
	}

	err = e.AddLE(chunk.SampleRate)
	if err != nil {
		return fmt.Errorf("error encoding the sample rate - %w", err)
	}

	err = e.AddLE(chunk.AvgBytesPerSec)
	if err != nil {
		return fmt.Errorf("error encoding the avg bytes per sec - %w", err)
	}

	err = e.AddLE(chunk.BlockAlign)
	if err != nil {
		return err
	}

	err = e.AddLE(chunk.BitsPerSample)
	if err != nil {
		return fmt.Errorf("error encoding bits per sample - %w", err)
	}

	return nil
}

// Close flushes the content to disk, make sure the headers are up to date
// Note that the underlying writer is NOT being closed.
func (e *Encoder) Close() error {
	if e == nil || e.w == nil {
		return nil
	}

	// an empty file still gets its headers
	err := e.startPCMChunk()
	if err != nil {
		return err
	}

	dataSize := e.samples * int(e.SampleWidth)
	if dataSize%2 == 1 {
		n, err := e.w.Write([]byte{0})
		e.WrittenBytes += n

		if err != nil {
			return fmt.Errorf("failed to write data chunk padding: %w", err)
		}
	}

	// go back and write total size in header
	if _, err := e.w.Seek(4, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to file size position: %w", err)
	}

	err = e.AddLE(uint32(e.WrittenBytes) - 8)
	if err != nil {
		return fmt.Errorf("%w when writing the total written bytes", err)
	}

	// rewrite the audio chunk length header
	if _, err := e.w.Seek(int64(e.pcmChunkSizePos), io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to PCM chunk size position: %w", err)
	}

	err = e.AddLE(uint32(dataSize))
	if err != nil {
		return fmt.Errorf("%w when writing wav data chunk size header", err)
	}

	// jump back to the end of the file.
	if _, err := e.w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end of file: %w", err)
	}

	if f, ok := e.w.(*os.File); ok {
		return f.Sync()
	}

	return nil
}
