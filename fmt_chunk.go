package wavarray

import "encoding/binary"

const (
	wavFormatPCM        = 1
	wavFormatIEEEFloat  = 3
	wavFormatExtensible = 0xFFFE
)

// FmtChunk stores the parsed WAV fmt chunk, including extensible metadata.
type FmtChunk struct {
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	Extensible     *FmtExtensible
}

// FmtExtensible stores WAVE_FORMAT_EXTENSIBLE extra fields.
type FmtExtensible struct {
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormat          [16]byte
}

// EffectiveFormatTag returns the format tag, resolving the sub-format of
// WAVE_FORMAT_EXTENSIBLE files.
func (f *FmtChunk) EffectiveFormatTag() uint16 {
	if f == nil {
		return 0
	}

	if f.FormatTag == wavFormatExtensible && f.Extensible != nil {
		return binary.LittleEndian.Uint16(f.Extensible.SubFormat[:2])
	}

	return f.FormatTag
}

// IsPCM reports whether the chunk describes linear integer PCM.
func (f *FmtChunk) IsPCM() bool {
	return f.EffectiveFormatTag() == wavFormatPCM
}

// SampleWidth returns the storage width of one sample.
func (f *FmtChunk) SampleWidth() SampleWidth {
	if f == nil {
		return 0
	}

	return SampleWidthFromBitDepth(int(f.BitsPerSample))
}
