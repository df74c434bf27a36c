package bench

import (
	"math/rand"
	"testing"

	"github.com/lz4x/lz4x/frame"
)

func BenchmarkCompressFrameLinked(b *testing.B) {
	r := rand.New(rand.NewSource(2))
	src := corpus(4<<20, r)
	prefs := frame.DefaultPreferences()
	prefs.BlockSizeID = frame.BlockSize1MB

	bound, _ := frame.CompressFrameBound(len(src), prefs)
	dst := make([]byte, bound)

	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := frame.CompressFrame(src, dst, prefs); err != nil {
			b.Fatalf("CompressFrame: %v", err)
		}
	}
}

func BenchmarkCompressFrameParallel(b *testing.B) {
	r := rand.New(rand.NewSource(2))
	src := corpus(4<<20, r)
	prefs := frame.DefaultPreferences()
	prefs.BlockSizeID = frame.BlockSize1MB
	prefs.CompressionLevel = 6

	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := frame.CompressFrameParallel(src, prefs, 0); err != nil {
			b.Fatalf("CompressFrameParallel: %v", err)
		}
	}
}
