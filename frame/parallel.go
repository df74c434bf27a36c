package frame

import (
	"github.com/lz4x/lz4x/block"
	"github.com/lz4x/lz4x/internal/xxhash32"
	"github.com/lz4x/lz4x/parallel"
)

// CompressFrameParallel compresses src into an independent-blocks LZ4
// frame, compressing blocks concurrently across numWorkers goroutines
// (0 = GOMAXPROCS). prefs.BlockMode is forced to BlockIndependent:
// linked blocks depend on each other's output and cannot be compressed
// out of order (§4.10 non-goals: "multi-threaded block pipelines...
// callers may parallelize independent-block frames externally").
func CompressFrameParallel(src []byte, prefs Preferences, numWorkers int) ([]byte, error) {
	prefs.BlockMode = BlockIndependent
	if prefs.ContentSize == 0 && len(src) > 0 {
		prefs.ContentSize = uint64(len(src))
	}
	blockSize, err := prefs.BlockSizeID.Bytes()
	if err != nil {
		return nil, err
	}

	hdr := encodeHeader(prefs)

	d := parallel.NewDispatcher(numWorkers, blockSize)
	results, err := d.CompressBlocks(src, func(chunk []byte) ([]byte, error) {
		bound, err := block.CompressBound(len(chunk))
		if err != nil {
			return nil, err
		}
		scratch := make([]byte, bound)
		payload, err := compressBlockPayload(chunk, scratch, prefs)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(hdr)+len(src)+64)
	out = append(out, hdr...)

	var contentHash *xxHasher
	if prefs.ContentChecksum {
		contentHash = newXXHasher()
	}

	pos := 0
	for _, r := range results {
		payload := r.Data
		uncompressed := false
		raw := src[pos : pos+r.OriginalSize]
		if contentHash != nil {
			contentHash.Write(raw)
		}
		if len(payload) >= r.OriginalSize {
			payload = raw
			uncompressed = true
		}
		pos += r.OriginalSize

		blockHeader := uint32(len(payload))
		if uncompressed {
			blockHeader |= 1 << 31
		}
		out = append(out, byte(blockHeader), byte(blockHeader>>8), byte(blockHeader>>16), byte(blockHeader>>24))
		out = append(out, payload...)
		if prefs.BlockChecksum {
			sum := xxhash32.Sum(payload)
			out = append(out, byte(sum), byte(sum>>8), byte(sum>>16), byte(sum>>24))
		}
	}

	out = append(out, 0, 0, 0, 0)
	if contentHash != nil {
		sum := contentHash.Sum32()
		out = append(out, byte(sum), byte(sum>>8), byte(sum>>16), byte(sum>>24))
	}
	return out, nil
}
