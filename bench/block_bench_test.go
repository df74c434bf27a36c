package bench

import (
	"math/rand"
	"testing"

	"github.com/lz4x/lz4x/block"
)

func corpus(n int, r *rand.Rand) []byte {
	data := make([]byte, n)
	pattern := make([]byte, 256)
	r.Read(pattern)
	for i := 0; i < n; i += len(pattern) {
		end := i + len(pattern)
		if end > n {
			end = n
		}
		copy(data[i:end], pattern[:end-i])
	}
	return data
}

func BenchmarkCompressFast(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	src := corpus(1<<20, r)
	bound, _ := block.CompressBound(len(src))
	dst := make([]byte, bound)

	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := block.CompressFast(src, dst, 1); err != nil {
			b.Fatalf("CompressFast: %v", err)
		}
	}
}

func BenchmarkCompressHC(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	src := corpus(1<<20, r)
	bound, _ := block.CompressBound(len(src))
	dst := make([]byte, bound)

	for _, level := range []int{3, 6, 9, 12} {
		b.Run(levelName(level), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(src)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := block.CompressHC(src, dst, level); err != nil {
					b.Fatalf("CompressHC: %v", err)
				}
			}
		})
	}
}

func BenchmarkDecompressSafe(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	src := corpus(1<<20, r)
	bound, _ := block.CompressBound(len(src))
	compressed := make([]byte, bound)
	n, err := block.CompressDefault(src, compressed)
	if err != nil {
		b.Fatalf("CompressDefault: %v", err)
	}
	compressed = compressed[:n]
	dst := make([]byte, len(src))

	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := block.DecompressSafe(compressed, dst); err != nil {
			b.Fatalf("DecompressSafe: %v", err)
		}
	}
}

func levelName(level int) string {
	switch level {
	case 3:
		return "level-3"
	case 6:
		return "level-6"
	case 9:
		return "level-9"
	case 12:
		return "level-12"
	}
	return "level-other"
}
