// Package stream implements the LZ4 streaming compressor and
// decompressor contexts (§4.8, §4.9): stateful wrappers around the
// block codec that let a sequence of compress/decompress calls
// reference each other's data within a 64KiB window.
package stream

import "github.com/lz4x/lz4x/block"

// Compressor is a streaming compression context. It supports fast mode
// at any acceleration, and the LZ4HC chain strategy for levels 3-9.
// LZ4MID (level 2) and LZ4OPT (levels 10-12) are one-shot-only
// strategies and are not available for streaming; NewLevelCompressor
// clamps an out-of-range level to block.DefaultHCLevel.
type Compressor struct {
	ctx *block.StreamCompressor
}

// NewFastCompressor creates a streaming compressor using the fast
// single-table strategy at the given acceleration.
func NewFastCompressor(acceleration int) *Compressor {
	block.QueryCapabilities()
	c := &Compressor{ctx: block.NewStreamCompressor()}
	c.ctx.ResetFast(acceleration)
	return c
}

// NewLevelCompressor creates a streaming compressor using the LZ4HC
// chain strategy at the given level (levels 3-9; anything else clamps
// to block.DefaultHCLevel).
func NewLevelCompressor(level int) *Compressor {
	block.QueryCapabilities()
	c := &Compressor{ctx: block.NewStreamCompressor()}
	c.ctx.ResetLevel(level)
	return c
}

// ResetFast reconfigures the context for fast mode, discarding history.
func (c *Compressor) ResetFast(acceleration int) {
	c.ctx.ResetFast(acceleration)
}

// ResetLevel reconfigures the context for HC chain mode, discarding history.
func (c *Compressor) ResetLevel(level int) {
	c.ctx.ResetLevel(level)
}

// LoadDict installs dict as history for the next CompressContinue call.
func (c *Compressor) LoadDict(dict []byte) int {
	return c.ctx.LoadDict(dict)
}

// CompressContinue compresses src as the next block in the stream.
func (c *Compressor) CompressContinue(src, dst []byte) (int, error) {
	return c.ctx.CompressContinue(src, dst)
}

// SaveDict extracts up to the last 64KiB of history into buf so it can
// seed a fresh context later, and rebases this context onto it.
func (c *Compressor) SaveDict(buf []byte) (int, error) {
	return c.ctx.SaveDict(buf)
}
