// Package wavarray turns uncompressed PCM WAV content into flat sample arrays.
//
// Decoding happens in two independent steps:
//
//   - Decode reinterprets a raw, channel-interleaved little-endian byte buffer
//     as signed integers. Sample widths of 1, 2, 3, 4 and 8 bytes are
//     supported; 24-bit samples are reassembled and sign-extended one at a time.
//   - Normalize rescales a sample sequence by its peak absolute value into
//     [-1, 1], rounded to four decimal places.
//
// Decoder reads the header fields and the raw data chunk out of a RIFF/WAVE
// container and feeds them to Decode. Encoder writes integer PCM files at the
// same widths.
package wavarray
