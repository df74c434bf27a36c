// Package frame implements the LZ4 Frame container format (§4.10):
// header encode/decode, block framing, optional per-block and content
// XXH32 checksums, skippable frames, and the end marker.
package frame

import "errors"

var (
	// ErrHeaderVersionWrong is returned when FLG's version bits aren't 0b01.
	ErrHeaderVersionWrong = errors.New("lz4x: frame header version wrong")
	// ErrReservedFlagSet is returned when FLG bit 1 or any of BD's
	// reserved bits (7, 3-0) are set.
	ErrReservedFlagSet = errors.New("lz4x: frame header reserved flag set")
	// ErrMaxBlockSizeInvalid is returned when BD's block-size-id is reserved.
	ErrMaxBlockSizeInvalid = errors.New("lz4x: frame max block size invalid")
	// ErrHeaderChecksumInvalid is returned when the header checksum byte doesn't match.
	ErrHeaderChecksumInvalid = errors.New("lz4x: frame header checksum invalid")
	// ErrBlockChecksumInvalid is returned when a block's XXH32 doesn't match.
	ErrBlockChecksumInvalid = errors.New("lz4x: frame block checksum invalid")
	// ErrContentChecksumInvalid is returned when the trailing content XXH32 doesn't match.
	ErrContentChecksumInvalid = errors.New("lz4x: frame content checksum invalid")
	// ErrFrameHeaderIncomplete is returned when src is too short to contain a full header.
	ErrFrameHeaderIncomplete = errors.New("lz4x: frame header incomplete")
	// ErrFrameTypeUnknown is returned when the magic number matches neither a
	// regular nor a skippable frame.
	ErrFrameTypeUnknown = errors.New("lz4x: frame type unknown")
	// ErrFrameSizeWrong is returned on a truncated block body, block
	// checksum, or content checksum.
	ErrFrameSizeWrong = errors.New("lz4x: frame size wrong")
	// ErrDecompressionFailed wraps a block-level codec failure surfaced
	// through the frame layer.
	ErrDecompressionFailed = errors.New("lz4x: frame block decompression failed")
)
