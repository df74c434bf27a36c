// Package parallel fans independent-block compression out across
// goroutines, one per frame block, and collects the results back into
// block order.
package parallel

import (
	"errors"
	"runtime"
	"sync"
)

// DefaultChunkSize is the block size used when the caller doesn't pick
// one, matching the frame format's default maximum block size (§4.10).
const DefaultChunkSize = 4 << 20

// CompressFunc compresses a single block. Dispatcher is agnostic to
// which block strategy is behind it; frame.CompressFrameParallel
// supplies one bound to a fast or HC level.
type CompressFunc func(src []byte) ([]byte, error)

// Dispatcher splits input into chunkSize blocks and compresses them
// concurrently across numWorkers goroutines.
type Dispatcher struct {
	numWorkers int
	chunkSize  int

	mu      sync.Mutex
	running bool
}

// NewDispatcher creates a dispatcher. numWorkers <= 0 uses
// runtime.GOMAXPROCS(0); chunkSize <= 0 uses DefaultChunkSize.
func NewDispatcher(numWorkers, chunkSize int) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Dispatcher{numWorkers: numWorkers, chunkSize: chunkSize}
}

// NumWorkers returns the configured worker count.
func (d *Dispatcher) NumWorkers() int { return d.numWorkers }

// ChunkSize returns the configured chunk size.
func (d *Dispatcher) ChunkSize() int { return d.chunkSize }

// SetChunkSize changes the chunk size used by future CompressBlocks calls.
// It returns ErrDispatcherBusy if a CompressBlocks call on this dispatcher
// is currently in flight.
func (d *Dispatcher) SetChunkSize(size int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return ErrDispatcherBusy
	}
	if size <= 0 {
		size = DefaultChunkSize
	}
	d.chunkSize = size
	return nil
}

// CompressBlocks splits input into chunks of ChunkSize and compresses
// each with fn concurrently, bounded by NumWorkers in flight at once.
// It returns each compressed block in original order, alongside each
// block's uncompressed length (the frame writer needs both).
func (d *Dispatcher) CompressBlocks(input []byte, fn CompressFunc) ([]BlockResult, error) {
	if len(input) == 0 {
		return nil, nil
	}

	d.mu.Lock()
	d.running = true
	chunkSize := d.chunkSize
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.running = false
		d.mu.Unlock()
	}()

	numChunks := (len(input) + chunkSize - 1) / chunkSize
	collector := NewResultsCollector(numChunks)

	sem := make(chan struct{}, d.numWorkers)
	var wg sync.WaitGroup
	var firstErr error
	var errMu sync.Mutex

	for i := 0; i < numChunks; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > len(input) {
			end = len(input)
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(idx, start, end int) {
			defer wg.Done()
			defer func() { <-sem }()

			out, err := fn(input[start:end])
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				return
			}
			_ = collector.AddResult(BlockResult{
				Index:        idx,
				Data:         out,
				OriginalSize: end - start,
			})
		}(i, start, end)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return collector.GetAllResults()
}

// ErrDispatcherBusy is returned by SetChunkSize when a CompressBlocks
// call on the same dispatcher is still in flight.
var ErrDispatcherBusy = errors.New("lz4x: dispatcher busy")
