package block

import (
	"bytes"
	"math/rand"
	"testing"
)

func compressAndVerify(t *testing.T, src []byte, acceleration int) {
	t.Helper()
	bound, err := CompressBound(len(src))
	if err != nil {
		t.Fatalf("CompressBound: %v", err)
	}
	dst := make([]byte, bound)
	n, err := CompressFast(src, dst, acceleration)
	if err != nil {
		t.Fatalf("CompressFast: %v", err)
	}
	dst = dst[:n]

	out := make([]byte, len(src))
	dn, err := DecompressSafe(dst, out)
	if err != nil {
		t.Fatalf("DecompressSafe: %v", err)
	}
	out = out[:dn]
	if !bytes.Equal(out, src) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(out), len(src))
	}
}

func TestCompressFastRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	cases := map[string][]byte{
		"empty":          {},
		"tiny":           []byte("ab"),
		"belowThreshold": []byte("abcdefgh"),
		"repeating":      bytes.Repeat([]byte("abcd"), 1000),
		"mixed":          append(bytes.Repeat([]byte("xyz123"), 500), []byte("tail-literal-run")...),
	}
	random := make([]byte, 4096)
	r.Read(random)
	cases["random"] = random

	for name, src := range cases {
		for _, accel := range []int{1, 2, 16, 100} {
			t.Run(name, func(t *testing.T) {
				compressAndVerify(t, src, accel)
			})
		}
	}
}

func TestCompressBound(t *testing.T) {
	n, err := CompressBound(1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n < 1000 {
		t.Fatalf("bound %d smaller than input", n)
	}
	if _, err := CompressBound(MaxInputSize + 1); err != ErrInputTooLarge {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}
}

func TestCompressFastOutputTooSmall(t *testing.T) {
	src := bytes.Repeat([]byte("abcdefgh"), 100)
	dst := make([]byte, 4)
	if _, err := CompressFast(src, dst, 1); err != ErrOutputTooSmall {
		t.Fatalf("expected ErrOutputTooSmall, got %v", err)
	}
}

func TestCompressDestSize(t *testing.T) {
	src := bytes.Repeat([]byte("the quick brown fox "), 200)
	dst := make([]byte, 64)
	srcLen := len(src)
	n, err := CompressDestSize(src, dst, &srcLen)
	if err != nil {
		t.Fatalf("CompressDestSize: %v", err)
	}
	if n > len(dst) {
		t.Fatalf("wrote %d bytes, exceeds dst capacity %d", n, len(dst))
	}
	if srcLen <= 0 || srcLen > len(src) {
		t.Fatalf("srcLen out of range: %d", srcLen)
	}

	out := make([]byte, srcLen)
	dn, err := DecompressSafe(dst[:n], out)
	if err != nil {
		t.Fatalf("DecompressSafe: %v", err)
	}
	if !bytes.Equal(out[:dn], src[:srcLen]) {
		t.Fatalf("decompressed prefix doesn't match source prefix")
	}
}
