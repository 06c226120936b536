package wavarray

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var (
	// ErrPCMDataNotFound is returned when the container has no data chunk.
	ErrPCMDataNotFound = errors.New("PCM data not found")
	// ErrUnsupportedFormat is returned for containers that don't hold linear
	// integer PCM (IEEE float, A-law, mu-law, compressed codecs...).
	ErrUnsupportedFormat = errors.New("unsupported wav format")
	// ErrDurationNilPointer is returned when calculating duration on a nil decoder.
	ErrDurationNilPointer = errors.New("can't calculate the duration of a nil pointer")

	errNilChunk          = errors.New("nil chunk pointer")
	errFmtChunkNotFound  = errors.New("fmt chunk not found")
	errNotWaveContainer  = errors.New("not a WAVE container")
	errInvalidSampleRate = errors.New("invalid sample rate")
)

// Decoder reads the header fields and the raw sample bytes of a wav file.
// The whole data chunk is held in memory once read.
type Decoder struct {
	r      io.ReadSeeker
	parser *riff.Parser

	NumChans       uint16
	BitDepth       uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	WavAudioFormat uint16
	FmtChunk       *FmtChunk

	err error
	// PCMSize is the size in bytes of the data chunk as declared in the file.
	PCMSize         int
	pcmDataAccessed bool
	// PCMChunk is limited to the declared data size.
	PCMChunk *riff.Chunk
}

// NewDecoder creates a decoder for the passed wav reader.
// Note that the reader doesn't get rewinded as the container is processed.
func NewDecoder(r io.ReadSeeker) *Decoder {
	return &Decoder{
		r:      r,
		parser: riff.New(r),
	}
}

// Err returns the first non-EOF error that was encountered by the Decoder.
func (d *Decoder) Err() error {
	if errors.Is(d.err, io.EOF) {
		return nil
	}

	return d.err
}

// ReadInfo reads the underlying reader until the fmt chunk is parsed.
// This method is safe to call multiple times.
func (d *Decoder) ReadInfo() {
	d.err = d.readHeaders()
}

// IsValidFile verifies that the file is a wav container holding integer PCM
// samples of a supported width.
func (d *Decoder) IsValidFile() bool {
	d.err = d.readHeaders()
	if d.err != nil {
		return false
	}

	if d.NumChans < 1 || !d.FmtChunk.IsPCM() {
		return false
	}

	return d.FmtChunk.SampleWidth().Valid()
}

// FwdToPCM forwards the underlying reader until the start of the PCM chunk.
// If the PCM chunk was already read, no data will be found (you need to rewind).
func (d *Decoder) FwdToPCM() error {
	if d == nil {
		return ErrPCMDataNotFound
	}

	d.err = d.readHeaders()
	if d.err != nil {
		return d.err
	}

	for {
		chunk, err := d.NextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				d.err = ErrPCMDataNotFound
			} else {
				d.err = err
			}

			return d.err
		}

		if chunk.ID == riff.DataFormatID {
			d.PCMSize = chunk.Size
			d.PCMChunk = chunk

			break
		}

		d.skipChunk(chunk)
	}

	d.pcmDataAccessed = true

	return nil
}

// WasPCMAccessed returns positively if the PCM data was previously accessed.
func (d *Decoder) WasPCMAccessed() bool {
	if d == nil {
		return false
	}

	return d.pcmDataAccessed
}

// Header returns the sample layout of the data chunk. The frame count is the
// data size divided by the frame size; a trailing partial frame is ignored.
func (d *Decoder) Header() (Header, error) {
	if !d.WasPCMAccessed() {
		err := d.FwdToPCM()
		if err != nil {
			return Header{}, err
		}
	}

	if !d.FmtChunk.IsPCM() {
		return Header{}, unsupportedFormatError(d.FmtChunk.EffectiveFormatTag())
	}

	h := Header{
		NumChans:    int(d.NumChans),
		SampleWidth: d.FmtChunk.SampleWidth(),
	}

	err := h.Validate()
	if err != nil {
		return Header{}, err
	}

	h.NumFrames = d.PCMSize / h.BlockAlign()

	return h, nil
}

// ReadPCM reads the entire data chunk into memory and returns it along with
// its layout. The returned buffer holds exactly h.DataSize() bytes.
// The buffer grows with the bytes actually read, never with the declared size.
func (d *Decoder) ReadPCM() (Header, []byte, error) {
	h, err := d.Header()
	if err != nil {
		return Header{}, nil, err
	}

	if d.PCMChunk == nil {
		return Header{}, nil, ErrPCMDataNotFound
	}

	raw, err := io.ReadAll(d.PCMChunk)
	if err != nil {
		return Header{}, nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	if len(raw) < h.DataSize() {
		return Header{}, nil, formatError(fmt.Errorf("%w: data chunk declares %d bytes, only %d available",
			ErrTruncatedData, d.PCMSize, len(raw)))
	}

	// partial frame, if any
	return h, raw[:h.DataSize()], nil
}

// Samples reads the data chunk and decodes it into interleaved samples.
func (d *Decoder) Samples() ([]int64, error) {
	h, raw, err := d.ReadPCM()
	if err != nil {
		return nil, err
	}

	samples, err := Decode(h, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", h, err)
	}

	return samples, nil
}

// FullIntBuffer decodes the whole data chunk into an int buffer.
func (d *Decoder) FullIntBuffer() (*audio.IntBuffer, error) {
	samples, err := d.Samples()
	if err != nil {
		return nil, err
	}

	buf := &audio.IntBuffer{
		Format:         d.Format(),
		Data:           make([]int, len(samples)),
		SourceBitDepth: d.FmtChunk.SampleWidth().BitDepth(),
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}

	return buf, nil
}

// NormalizedBuffer decodes the whole data chunk and rescales it by its peak
// amplitude. Silent content yields ErrDivideByZero.
func (d *Decoder) NormalizedBuffer() (*audio.FloatBuffer, error) {
	samples, err := d.Samples()
	if err != nil {
		return nil, err
	}

	data, err := Normalize(samples)
	if err != nil {
		return nil, err
	}

	return &audio.FloatBuffer{
		Format: d.Format(),
		Data:   data,
	}, nil
}

// Format returns the audio format of the decoded content.
func (d *Decoder) Format() *audio.Format {
	if d == nil {
		return nil
	}

	return &audio.Format{
		NumChannels: int(d.NumChans),
		SampleRate:  int(d.SampleRate),
	}
}

// NextChunk returns the next available chunk. The chunk reader is limited to
// the declared chunk size; the word-alignment padding byte isn't included.
func (d *Decoder) NextChunk() (*riff.Chunk, error) {
	id, size, err := d.parser.IDnSize()
	if err != nil {
		return nil, fmt.Errorf("error reading chunk header - %w", err)
	}

	return &riff.Chunk{
		ID:   id,
		Size: int(size),
		R:    io.LimitReader(d.r, int64(size)),
	}, nil
}

// Duration returns the playback duration of the data chunk.
func (d *Decoder) Duration() (time.Duration, error) {
	if d == nil || d.parser == nil {
		return 0, ErrDurationNilPointer
	}

	h, err := d.Header()
	if err != nil {
		return 0, fmt.Errorf("failed to get duration: %w", err)
	}

	if d.SampleRate == 0 {
		return 0, fmt.Errorf("failed to get duration: %w", errInvalidSampleRate)
	}

	return time.Duration(float64(h.NumFrames) / float64(d.SampleRate) * float64(time.Second)), nil
}

// String implements the Stringer interface.
func (d *Decoder) String() string {
	return fmt.Sprintf("Format: %s - %d channels @ %d / %d bits", d.parser.Format, d.NumChans, d.SampleRate, d.BitDepth)
}

// readHeaders is safe to call multiple times.
func (d *Decoder) readHeaders() error {
	if d == nil || d.FmtChunk != nil {
		return nil
	}

	id, size, err := d.parser.IDnSize()
	if err != nil {
		return fmt.Errorf("failed to read chunk ID and size: %w", err)
	}

	d.parser.ID = id
	if d.parser.ID != riff.RiffID {
		return fmt.Errorf("%s - %w", d.parser.ID, riff.ErrFmtNotSupported)
	}

	d.parser.Size = size

	err = binary.Read(d.r, binary.BigEndian, &d.parser.Format)
	if err != nil {
		return fmt.Errorf("failed to read format: %w", err)
	}

	if d.parser.Format != riff.WavFormatID {
		return fmt.Errorf("%s - %w", d.parser.Format, errNotWaveContainer)
	}

	for {
		chunk, err := d.NextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return errFmtChunkNotFound
			}

			return err
		}

		if chunk.ID == riff.FmtID {
			return d.processFmtChunk(chunk)
		}

		// LIST, bext, JUNK... are of no use here
		d.skipChunk(chunk)
	}
}

func (d *Decoder) processFmtChunk(chunk *riff.Chunk) error {
	fmtChunk, err := decodeWavHeaderChunk(chunk)
	if err != nil {
		return fmt.Errorf("failed to decode fmt chunk: %w", err)
	}

	d.skipChunk(chunk)

	d.FmtChunk = fmtChunk
	d.NumChans = fmtChunk.NumChannels
	d.BitDepth = fmtChunk.BitsPerSample
	d.SampleRate = fmtChunk.SampleRate
	d.WavAudioFormat = fmtChunk.EffectiveFormatTag()
	d.AvgBytesPerSec = fmtChunk.AvgBytesPerSec

	d.parser.NumChannels = fmtChunk.NumChannels
	d.parser.SampleRate = fmtChunk.SampleRate
	d.parser.AvgBytesPerSec = fmtChunk.AvgBytesPerSec
	d.parser.BlockAlign = fmtChunk.BlockAlign
	d.parser.BitsPerSample = fmtChunk.BitsPerSample
	d.parser.WavAudioFormat = d.WavAudioFormat

	return nil
}

// skipChunk discards what's left of the chunk and its padding byte.
func (d *Decoder) skipChunk(chunk *riff.Chunk) {
	chunk.Drain()

	// all RIFF chunks (including WAVE "data" chunks) must be word aligned.
	if chunk.Size%2 == 1 {
		io.CopyN(io.Discard, d.r, 1)
	}
}

func decodeWavHeaderChunk(chunk *riff.Chunk) (*FmtChunk, error) {
	if chunk == nil {
		return nil, errNilChunk
	}

	fmtChunk := &FmtChunk{}

	err := chunk.ReadLE(&fmtChunk.FormatTag)
	if err != nil {
		return nil, fmt.Errorf("failed to read wav format: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.NumChannels)
	if err != nil {
		return nil, fmt.Errorf("failed to read channels: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample rate: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.AvgBytesPerSec)
	if err != nil {
		return nil, fmt.Errorf("failed to read avg bytes/sec: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.BlockAlign)
	if err != nil {
		return nil, fmt.Errorf("failed to read block align: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.BitsPerSample)
	if err != nil {
		return nil, fmt.Errorf("failed to read bit depth: %w", err)
	}

	if fmtChunk.FormatTag != wavFormatExtensible || chunk.Size < 40 {
		return fmtChunk, nil
	}

	var extraSize uint16

	err = chunk.ReadLE(&extraSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read fmt extension size: %w", err)
	}

	if extraSize < 22 {
		return fmtChunk, nil
	}

	ext := &FmtExtensible{}

	err = chunk.ReadLE(&ext.ValidBitsPerSample)
	if err != nil {
		return nil, fmt.Errorf("failed to read valid bits per sample: %w", err)
	}

	err = chunk.ReadLE(&ext.ChannelMask)
	if err != nil {
		return nil, fmt.Errorf("failed to read channel mask: %w", err)
	}

	err = chunk.ReadLE(&ext.SubFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to read sub format: %w", err)
	}

	fmtChunk.Extensible = ext

	return fmtChunk, nil
}

func unsupportedFormatError(wavFormat uint16) error {
	var name string

	switch wavFormat {
	case wavFormatIEEEFloat:
		name = "IEEE float"
	case 6:
		name = "A-law"
	case 7:
		name = "mu-law"
	case 49:
		name = "GSM 6.10"
	default:
		name = fmt.Sprintf("format tag %d", wavFormat)
	}

	return fmt.Errorf("%w: %s (format tag %d)", ErrUnsupportedFormat, name, wavFormat)
}
