// Package lz4x is a pure Go implementation of the LZ4 compression
// family: the fast and high-compression block codecs, the safe
// decompressor, streaming compression/decompression contexts, and the
// LZ4 Frame container format.
//
// Block-level operations work on caller-supplied byte slices with no
// hidden allocation beyond what compression itself requires. Frame
// operations wrap those blocks with the container format described in
// the LZ4 Frame specification, including checksums and skippable
// frames.
package lz4x

import (
	"github.com/rs/zerolog"

	"github.com/lz4x/lz4x/block"
	"github.com/lz4x/lz4x/frame"
	"github.com/lz4x/lz4x/internal/logging"
	"github.com/lz4x/lz4x/stream"
)

// SetLogger installs l as the library's diagnostic logger. Diagnostics
// cover non-fatal, non-hot-path events only: stream window rebases,
// the one-time CPU capability report, and frame blocks stored
// uncompressed because compression did not shrink them. The default is a disabled logger,
// so the library stays silent unless a caller opts in.
func SetLogger(l zerolog.Logger) { logging.Set(l) }

// Re-exported sentinel errors, so callers never need to import the
// block or frame packages directly just to compare against them.
var (
	ErrOutputTooSmall         = block.ErrOutputTooSmall
	ErrInputTooLarge          = block.ErrInputTooLarge
	ErrCorruptedData          = block.ErrCorruptedData
	ErrInvalidState           = block.ErrInvalidState
	ErrHeaderVersionWrong     = frame.ErrHeaderVersionWrong
	ErrReservedFlagSet        = frame.ErrReservedFlagSet
	ErrMaxBlockSizeInvalid    = frame.ErrMaxBlockSizeInvalid
	ErrHeaderChecksumInvalid  = frame.ErrHeaderChecksumInvalid
	ErrBlockChecksumInvalid   = frame.ErrBlockChecksumInvalid
	ErrContentChecksumInvalid = frame.ErrContentChecksumInvalid
	ErrFrameHeaderIncomplete  = frame.ErrFrameHeaderIncomplete
	ErrFrameTypeUnknown       = frame.ErrFrameTypeUnknown
	ErrFrameSizeWrong         = frame.ErrFrameSizeWrong
	ErrDecompressionFailed    = frame.ErrDecompressionFailed
)

// MaxInputSize is the largest source length any one-shot block
// operation will accept.
const MaxInputSize = block.MaxInputSize

// CompressBound returns the worst-case compressed size for n bytes.
func CompressBound(n int) (int, error) { return block.CompressBound(n) }

// CompressDefault compresses src into dst at acceleration 1.
func CompressDefault(src, dst []byte) (int, error) { return block.CompressDefault(src, dst) }

// CompressFast compresses src into dst at the given acceleration
// (clamped to [1, 65537]; higher trades ratio for speed).
func CompressFast(src, dst []byte, acceleration int) (int, error) {
	return block.CompressFast(src, dst, acceleration)
}

// CompressDestSize compresses as large a prefix of src as fits in
// dst, shrinking *srcLen to that prefix's length.
func CompressDestSize(src, dst []byte, srcLen *int) (int, error) {
	return block.CompressDestSize(src, dst, srcLen)
}

// CompressHC compresses src into dst using the high-compression
// strategy selected by level (clamped to [2, 12]; level < 2 uses
// block.DefaultHCLevel).
func CompressHC(src, dst []byte, level int) (int, error) {
	return block.CompressHC(src, dst, level)
}

// DecompressSafe decompresses a single LZ4 block.
func DecompressSafe(src, dst []byte) (int, error) { return block.DecompressSafe(src, dst) }

// DecompressSafePartial decompresses only as much of src as needed to
// produce targetLen bytes.
func DecompressSafePartial(src, dst []byte, targetLen int) (int, error) {
	return block.DecompressSafePartial(src, dst, targetLen)
}

// DecompressSafeUsingDict decompresses src into dst, resolving matches
// that reach before dst's start against dict.
func DecompressSafeUsingDict(src, dst, dict []byte) (int, error) {
	return block.DecompressSafeUsingDict(src, dst, dict)
}

// StreamCompressor is the streaming compression context (§4.8).
type StreamCompressor = stream.Compressor

// NewFastStreamCompressor creates a streaming compressor using fast
// mode at the given acceleration.
func NewFastStreamCompressor(acceleration int) *StreamCompressor {
	return stream.NewFastCompressor(acceleration)
}

// NewHCStreamCompressor creates a streaming compressor using the LZ4HC
// chain strategy at the given level (levels 3-9; out of range clamps
// to block.DefaultHCLevel).
func NewHCStreamCompressor(level int) *StreamCompressor {
	return stream.NewLevelCompressor(level)
}

// StreamDecompressor is the streaming decompression context (§4.9).
type StreamDecompressor = stream.Decompressor

// NewStreamDecompressor creates a decompressor context with no history.
func NewStreamDecompressor() *StreamDecompressor { return stream.NewDecompressor() }

// Frame preferences and block-layout types (§4.10).
type (
	FramePreferences = frame.Preferences
	BlockMode        = frame.BlockMode
	BlockSizeID      = frame.BlockSizeID
)

const (
	BlockLinked      = frame.BlockLinked
	BlockIndependent = frame.BlockIndependent

	BlockSize64KB  = frame.BlockSize64KB
	BlockSize256KB = frame.BlockSize256KB
	BlockSize1MB   = frame.BlockSize1MB
	BlockSize4MB   = frame.BlockSize4MB
)

// DefaultFramePreferences mirrors the reference tool's defaults.
func DefaultFramePreferences() FramePreferences { return frame.DefaultPreferences() }

// CompressFrameBound returns the worst-case frame size for n bytes
// under prefs.
func CompressFrameBound(n int, prefs FramePreferences) (int, error) {
	return frame.CompressFrameBound(n, prefs)
}

// CompressFrame compresses src into dst as a complete LZ4 frame.
func CompressFrame(src, dst []byte, prefs FramePreferences) (int, error) {
	return frame.CompressFrame(src, dst, prefs)
}

// CompressFrameParallel compresses src into an independent-blocks LZ4
// frame, compressing blocks concurrently across numWorkers goroutines
// (0 = GOMAXPROCS).
func CompressFrameParallel(src []byte, prefs FramePreferences, numWorkers int) ([]byte, error) {
	return frame.CompressFrameParallel(src, prefs, numWorkers)
}

// DecompressFrame decompresses a single LZ4 frame.
func DecompressFrame(src, dst []byte) (int, error) { return frame.DecompressFrame(src, dst) }

// HeaderSize reports how many bytes the frame header at the start of
// src occupies.
func HeaderSize(src []byte) (int, error) { return frame.HeaderSize(src) }

// Capabilities reports CPU features the running machine supports.
type Capabilities = block.Capabilities

// QueryCapabilities inspects the running CPU.
func QueryCapabilities() Capabilities { return block.QueryCapabilities() }
