// Package block implements the LZ4 block codec: the fast single-table
// compressor, the three HC strategies (LZ4MID, LZ4HC, LZ4OPT) behind a
// level selector, and the safe decompressor shared by all of them.
package block

import "errors"

// Sentinel errors returned by the block codec. Every operation returns
// one of these directly, never wrapped — callers compare with
// errors.Is or ==.
var (
	// ErrOutputTooSmall is returned when dst cannot hold the required
	// bytes for the requested operation.
	ErrOutputTooSmall = errors.New("lz4x: output buffer too small")
	// ErrInputTooLarge is returned when src exceeds MaxInputSize.
	ErrInputTooLarge = errors.New("lz4x: input larger than 0x7E000000 bytes")
	// ErrCorruptedData is returned when a compressed block is malformed:
	// a bad token, a zero offset, an offset pointing outside the
	// dictionary+prefix window, or a truncated sequence.
	ErrCorruptedData = errors.New("lz4x: corrupted block data")
	// ErrInvalidState is returned on streaming API misuse, such as a
	// caller-supplied external state buffer that is too small.
	ErrInvalidState = errors.New("lz4x: invalid streaming state")
)

// MaxInputSize is the largest source length compress_fast/compress_hc
// will accept, per spec (0x7E000000 bytes).
const MaxInputSize = 0x7E000000
