package stream

import "github.com/lz4x/lz4x/block"

// Decompressor is a streaming decompression context: it remembers up
// to the last 64KiB decoded so later DecompressContinue calls can
// resolve matches that reach into it.
type Decompressor struct {
	ctx *block.StreamDecompressor
}

// NewDecompressor creates a decompressor context with no history.
func NewDecompressor() *Decompressor {
	return &Decompressor{ctx: block.NewStreamDecompressor()}
}

// SetDict seeds the context with dict, as if it were the output of a
// prior DecompressContinue call (§4.9 "set_stream_decode").
func (d *Decompressor) SetDict(dict []byte) {
	d.ctx.SetDict(dict)
}

// DecompressContinue decodes src into dst, resolving history against
// prior calls, and folds the output into that history.
func (d *Decompressor) DecompressContinue(src, dst []byte) (int, error) {
	return d.ctx.DecompressContinue(src, dst)
}
