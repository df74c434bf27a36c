package parallel

import (
	"bytes"
	"math/rand"
	"runtime"
	"testing"

	"github.com/lz4x/lz4x/block"
)

func generateTestData(size int, compressibility float32) []byte {
	r := rand.New(rand.NewSource(1))
	data := make([]byte, size)

	patternSize := 4 * 1024
	if compressibility < 0.5 {
		patternSize = 256
	}
	pattern := make([]byte, patternSize)
	for i := range pattern {
		pattern[i] = byte(r.Intn(256))
	}

	for i := 0; i < size; i += patternSize {
		end := i + patternSize
		if end > size {
			end = size
		}
		copy(data[i:end], pattern)
		randomRate := 1.0 - compressibility
		for j := i; j < end; j++ {
			if r.Float32() < randomRate {
				data[j] = byte(r.Intn(256))
			}
		}
	}
	return data
}

func TestDispatcherConstruction(t *testing.T) {
	d1 := NewDispatcher(0, 0)
	if d1.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("expected NumWorkers %d, got %d", runtime.GOMAXPROCS(0), d1.NumWorkers())
	}
	if d1.ChunkSize() != DefaultChunkSize {
		t.Errorf("expected ChunkSize %d, got %d", DefaultChunkSize, d1.ChunkSize())
	}

	d2 := NewDispatcher(4, 512*1024)
	if d2.NumWorkers() != 4 {
		t.Errorf("expected NumWorkers 4, got %d", d2.NumWorkers())
	}
	if err := d2.SetChunkSize(1024 * 1024); err != nil {
		t.Fatalf("SetChunkSize: %v", err)
	}
	if d2.ChunkSize() != 1024*1024 {
		t.Errorf("expected ChunkSize %d, got %d", 1024*1024, d2.ChunkSize())
	}
}

func fastCompress(src []byte) ([]byte, error) {
	bound, _ := block.CompressBound(len(src))
	dst := make([]byte, bound)
	n, err := block.CompressDefault(src, dst)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

func TestCompressBlocksRoundTrip(t *testing.T) {
	testSizes := []int{4 * 1024, 64 * 1024, 1024 * 1024}
	compressibilities := []float32{0.3, 0.7, 0.9}

	for _, size := range testSizes {
		for _, comp := range compressibilities {
			data := generateTestData(size, comp)
			d := NewDispatcher(0, 16*1024)

			results, err := d.CompressBlocks(data, fastCompress)
			if err != nil {
				t.Fatalf("CompressBlocks error: %v", err)
			}

			var out bytes.Buffer
			pos := 0
			for _, r := range results {
				dst := make([]byte, r.OriginalSize)
				n, err := block.DecompressSafe(r.Data, dst)
				if err != nil {
					t.Fatalf("DecompressSafe error: %v", err)
				}
				out.Write(dst[:n])
				pos += r.OriginalSize
			}

			if !bytes.Equal(out.Bytes(), data) {
				t.Fatalf("round trip mismatch for size=%d comp=%v", size, comp)
			}
		}
	}
}

func TestCompressBlocksEmpty(t *testing.T) {
	d := NewDispatcher(2, 1024)
	results, err := d.CompressBlocks(nil, fastCompress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Fatalf("expected nil results for empty input, got %v", results)
	}
}

func TestCompressBlocksPropagatesError(t *testing.T) {
	d := NewDispatcher(2, 4)
	failing := func(src []byte) ([]byte, error) {
		return nil, bytes.ErrTooLarge
	}
	if _, err := d.CompressBlocks(make([]byte, 32), failing); err == nil {
		t.Fatalf("expected error from failing compress func")
	}
}

func TestSetChunkSizeBusyWhileRunning(t *testing.T) {
	d := NewDispatcher(1, 8)
	release := make(chan struct{})
	entered := make(chan struct{}, 1)

	blocking := func(src []byte) ([]byte, error) {
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
		return fastCompress(src)
	}

	done := make(chan error, 1)
	go func() {
		_, err := d.CompressBlocks(make([]byte, 32), blocking)
		done <- err
	}()

	<-entered
	if err := d.SetChunkSize(16); err != ErrDispatcherBusy {
		t.Fatalf("expected ErrDispatcherBusy while CompressBlocks is running, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("CompressBlocks: %v", err)
	}

	if err := d.SetChunkSize(16); err != nil {
		t.Fatalf("SetChunkSize after completion: %v", err)
	}
}
