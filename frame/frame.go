package frame

import (
	"github.com/lz4x/lz4x/block"
	"github.com/lz4x/lz4x/internal/logging"
	"github.com/lz4x/lz4x/internal/xxhash32"
	"github.com/lz4x/lz4x/stream"
)

const endMarker = 0 // block header value that terminates the body

// CompressFrameBound returns the worst-case size compress_frame needs
// for n bytes of input under prefs (§4.10).
func CompressFrameBound(n int, prefs Preferences) (int, error) {
	blockSize, err := prefs.BlockSizeID.Bytes()
	if err != nil {
		return 0, err
	}
	numBlocks := (n + blockSize - 1) / blockSize
	if n == 0 {
		numBlocks = 0
	}

	perBlockBound, err := block.CompressBound(blockSize)
	if err != nil {
		return 0, err
	}
	blockChecksumBytes := 0
	if prefs.BlockChecksum {
		blockChecksumBytes = 4
	}

	total := 19 // header max
	total += numBlocks * (4 + perBlockBound + blockChecksumBytes)
	total += 4 // end marker
	if prefs.ContentChecksum {
		total += 4
	}
	return total, nil
}

func compressBlockPayload(src, scratch []byte, prefs Preferences) ([]byte, error) {
	if prefs.CompressionLevel <= 0 {
		accel := prefs.CompressionAccel
		if accel < 1 {
			accel = 1
		}
		n, err := block.CompressFast(src, scratch, accel)
		if err != nil {
			return nil, err
		}
		return scratch[:n], nil
	}
	n, err := block.CompressHC(src, scratch, prefs.CompressionLevel)
	if err != nil {
		return nil, err
	}
	return scratch[:n], nil
}

// CompressFrame compresses src into dst as a complete LZ4 frame under
// prefs, returning the number of bytes written.
func CompressFrame(src, dst []byte, prefs Preferences) (int, error) {
	block.QueryCapabilities()
	blockSize, err := prefs.BlockSizeID.Bytes()
	if err != nil {
		return 0, err
	}
	if prefs.ContentSize == 0 && len(src) > 0 {
		prefs.ContentSize = uint64(len(src))
	}

	hdr := encodeHeader(prefs)
	op := copy(dst, hdr)

	var contentHash *xxHasher
	if prefs.ContentChecksum {
		contentHash = newXXHasher()
	}

	perBlockBound, err := block.CompressBound(blockSize)
	if err != nil {
		return 0, err
	}
	scratch := make([]byte, perBlockBound)

	var sc *stream.Compressor
	if prefs.BlockMode == BlockLinked {
		if prefs.CompressionLevel <= 0 {
			sc = stream.NewFastCompressor(prefs.CompressionAccel)
		} else {
			sc = stream.NewLevelCompressor(prefs.CompressionLevel)
		}
	}

	for start := 0; start < len(src); start += blockSize {
		end := start + blockSize
		if end > len(src) {
			end = len(src)
		}
		chunk := src[start:end]
		if contentHash != nil {
			contentHash.Write(chunk)
		}

		var payload []byte
		uncompressed := false
		if sc != nil {
			n, err := sc.CompressContinue(chunk, scratch)
			if err != nil {
				return 0, err
			}
			payload = scratch[:n]
		} else {
			payload, err = compressBlockPayload(chunk, scratch, prefs)
			if err != nil {
				return 0, err
			}
		}
		if len(payload) >= len(chunk) {
			payload = chunk
			uncompressed = true
			logging.Get().Debug().
				Int("block_offset", start).
				Int("chunk_len", len(chunk)).
				Msg("storing block uncompressed, compression did not shrink it")
		}

		blockHeader := uint32(len(payload))
		if uncompressed {
			blockHeader |= 1 << 31
		}
		if op+4 > len(dst) {
			return 0, block.ErrOutputTooSmall
		}
		dst[op] = byte(blockHeader)
		dst[op+1] = byte(blockHeader >> 8)
		dst[op+2] = byte(blockHeader >> 16)
		dst[op+3] = byte(blockHeader >> 24)
		op += 4

		if op+len(payload) > len(dst) {
			return 0, block.ErrOutputTooSmall
		}
		copy(dst[op:op+len(payload)], payload)
		op += len(payload)

		if prefs.BlockChecksum {
			sum := xxhash32.Sum(payload)
			if op+4 > len(dst) {
				return 0, block.ErrOutputTooSmall
			}
			dst[op] = byte(sum)
			dst[op+1] = byte(sum >> 8)
			dst[op+2] = byte(sum >> 16)
			dst[op+3] = byte(sum >> 24)
			op += 4
		}
	}

	if op+4 > len(dst) {
		return 0, block.ErrOutputTooSmall
	}
	dst[op], dst[op+1], dst[op+2], dst[op+3] = 0, 0, 0, 0
	op += 4

	if contentHash != nil {
		sum := contentHash.Sum32()
		if op+4 > len(dst) {
			return 0, block.ErrOutputTooSmall
		}
		dst[op] = byte(sum)
		dst[op+1] = byte(sum >> 8)
		dst[op+2] = byte(sum >> 16)
		dst[op+3] = byte(sum >> 24)
		op += 4
	}

	return op, nil
}

// DecompressFrame decompresses a single LZ4 frame from src into dst,
// skipping any skippable frames encountered before it, and returns the
// number of bytes written.
func DecompressFrame(src, dst []byte) (int, error) {
	ip := 0
	for {
		n, err := skipIfSkippable(src[ip:])
		if err != nil {
			return 0, err
		}
		if n == 0 {
			break
		}
		ip += n
	}

	if len(src[ip:]) < 4 {
		return 0, ErrFrameHeaderIncomplete
	}
	magic := readLE32(src[ip : ip+4])
	if magic != Magic {
		return 0, ErrFrameTypeUnknown
	}

	h, consumed, err := decodeHeader(src[ip:])
	if err != nil {
		return 0, err
	}
	ip += consumed
	if _, err := h.blockSizeID.Bytes(); err != nil {
		return 0, err
	}

	var contentHash *xxHasher
	if h.contentChecksum {
		contentHash = newXXHasher()
	}

	var sd *stream.Decompressor
	if !h.blockIndependence {
		sd = stream.NewDecompressor()
	}

	op := 0
	for {
		if len(src)-ip < 4 {
			return 0, ErrFrameSizeWrong
		}
		blockHeader := readLE32(src[ip : ip+4])
		ip += 4
		length := int(blockHeader & 0x7FFFFFFF)
		isUncompressed := blockHeader&(1<<31) != 0
		if length == 0 {
			break
		}
		if len(src)-ip < length {
			return 0, ErrFrameSizeWrong
		}
		payload := src[ip : ip+length]
		ip += length

		if h.blockChecksum {
			if len(src)-ip < 4 {
				return 0, ErrFrameSizeWrong
			}
			want := readLE32(src[ip : ip+4])
			ip += 4
			if xxhash32.Sum(payload) != want {
				return 0, ErrBlockChecksumInvalid
			}
		}

		var n int
		if isUncompressed {
			if op+length > len(dst) {
				return 0, block.ErrOutputTooSmall
			}
			copy(dst[op:op+length], payload)
			n = length
		} else if sd != nil {
			written, err := sd.DecompressContinue(payload, dst[op:])
			if err != nil {
				return 0, ErrDecompressionFailed
			}
			n = written
		} else {
			written, err := block.DecompressSafe(payload, dst[op:])
			if err != nil {
				return 0, ErrDecompressionFailed
			}
			n = written
		}
		if contentHash != nil {
			contentHash.Write(dst[op : op+n])
		}
		op += n
	}

	if contentHash != nil {
		if len(src)-ip < 4 {
			return 0, ErrFrameSizeWrong
		}
		want := readLE32(src[ip : ip+4])
		ip += 4
		if contentHash.Sum32() != want {
			return 0, ErrContentChecksumInvalid
		}
	}

	return op, nil
}

// skipIfSkippable recognizes a skippable frame at the start of src and
// returns the number of bytes it occupies, or 0 if src doesn't start
// with one (§4.10 "Skippable frames").
func skipIfSkippable(src []byte) (int, error) {
	if len(src) < 4 {
		return 0, nil
	}
	magic := readLE32(src[:4])
	if magic < SkippableMagicMin || magic > SkippableMagicMax {
		return 0, nil
	}
	if len(src) < 8 {
		return 0, ErrFrameHeaderIncomplete
	}
	length := readLE32(src[4:8])
	total := 8 + int(length)
	if len(src) < total {
		return 0, ErrFrameSizeWrong
	}
	return total, nil
}

// xxHasher is a thin wrapper matching hash.Hash32's Write/Sum32 shape
// around the internal xxhash32 package, kept local so frame.go doesn't
// need to import "hash" just for this.
type xxHasher struct {
	h interface {
		Write([]byte) (int, error)
		Sum32() uint32
	}
}

func newXXHasher() *xxHasher {
	return &xxHasher{h: xxhash32.New()}
}

func (x *xxHasher) Write(p []byte) { _, _ = x.h.Write(p) }
func (x *xxHasher) Sum32() uint32  { return x.h.Sum32() }
