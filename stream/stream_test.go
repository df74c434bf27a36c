package stream

import (
	"bytes"
	"testing"
)

func TestFastStreamRoundTrip(t *testing.T) {
	chunks := [][]byte{
		[]byte("first chunk of streaming data, with some repeated words words words"),
		[]byte("second chunk references the first: streaming data streaming data"),
		[]byte("third and final chunk, short"),
	}

	c := NewFastCompressor(1)
	d := NewDecompressor()

	for i, chunk := range chunks {
		dst := make([]byte, len(chunk)+64)
		n, err := c.CompressContinue(chunk, dst)
		if err != nil {
			t.Fatalf("chunk %d CompressContinue: %v", i, err)
		}
		out := make([]byte, len(chunk))
		dn, err := d.DecompressContinue(dst[:n], out)
		if err != nil {
			t.Fatalf("chunk %d DecompressContinue: %v", i, err)
		}
		if !bytes.Equal(out[:dn], chunk) {
			t.Fatalf("chunk %d round trip mismatch", i)
		}
	}
}

func TestHCStreamRoundTrip(t *testing.T) {
	chunks := make([][]byte, 4)
	for i := range chunks {
		chunks[i] = bytes.Repeat([]byte{byte('a' + i)}, 2000)
	}

	c := NewLevelCompressor(6)
	d := NewDecompressor()

	for i, chunk := range chunks {
		dst := make([]byte, len(chunk)+64)
		n, err := c.CompressContinue(chunk, dst)
		if err != nil {
			t.Fatalf("chunk %d CompressContinue: %v", i, err)
		}
		out := make([]byte, len(chunk))
		dn, err := d.DecompressContinue(dst[:n], out)
		if err != nil {
			t.Fatalf("chunk %d DecompressContinue: %v", i, err)
		}
		if !bytes.Equal(out[:dn], chunk) {
			t.Fatalf("chunk %d round trip mismatch", i)
		}
	}
}

func TestStreamLoadDictAndSaveDict(t *testing.T) {
	dict := bytes.Repeat([]byte("shared-dictionary-bytes-"), 200)

	c := NewFastCompressor(1)
	c.LoadDict(dict)
	dOut := NewDecompressor()
	dOut.SetDict(dict)

	chunk := append(append([]byte{}, dict[len(dict)-32:]...), []byte("-tail-data-after-dict")...)
	dst := make([]byte, len(chunk)+64)
	n, err := c.CompressContinue(chunk, dst)
	if err != nil {
		t.Fatalf("CompressContinue: %v", err)
	}
	out := make([]byte, len(chunk))
	dn, err := dOut.DecompressContinue(dst[:n], out)
	if err != nil {
		t.Fatalf("DecompressContinue: %v", err)
	}
	if !bytes.Equal(out[:dn], chunk) {
		t.Fatalf("load_dict round trip mismatch")
	}

	saveBuf := make([]byte, 65536)
	if _, err := c.SaveDict(saveBuf); err != nil {
		t.Fatalf("SaveDict: %v", err)
	}
}
