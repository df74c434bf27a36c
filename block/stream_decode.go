package block

// StreamDecompressor is the streaming counterpart to StreamCompressor
// (§4.9): it remembers up to the last 64KiB decoded so the next
// DecompressContinue call can resolve matches that reach back into it,
// without requiring the caller to keep every previous output buffer
// alive and contiguous.
type StreamDecompressor struct {
	history []byte
}

// NewStreamDecompressor creates a decompressor context with no history.
func NewStreamDecompressor() *StreamDecompressor {
	return &StreamDecompressor{}
}

// SetDict seeds the context with a dictionary, as if it were the output
// of a prior DecompressContinue call (§4.9 "set_stream_decode").
func (d *StreamDecompressor) SetDict(dict []byte) {
	if len(dict) > streamDictCap {
		dict = dict[len(dict)-streamDictCap:]
	}
	d.history = append([]byte(nil), dict...)
}

// DecompressContinue decodes src into dst, resolving any match that
// reaches before dst's start against the context's history, then folds
// dst's output into that history for the next call.
func (d *StreamDecompressor) DecompressContinue(src, dst []byte) (int, error) {
	n, err := decompress(src, dst, len(dst), 0, d.history, false)
	if err != nil {
		return 0, err
	}
	d.appendHistory(dst[:n])
	return n, nil
}

func (d *StreamDecompressor) appendHistory(b []byte) {
	d.history = append(d.history, b...)
	if len(d.history) > streamDictCap {
		d.history = append([]byte(nil), d.history[len(d.history)-streamDictCap:]...)
	}
}
