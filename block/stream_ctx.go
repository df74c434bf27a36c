package block

import "github.com/lz4x/lz4x/internal/logging"

// StreamCompressor is the streaming compressor context of §3/§4.8: it
// keeps hash/chain tables and prefix/dictionary boundaries alive across
// independent CompressContinue calls so later blocks can reference
// earlier ones. Unlike the C reference, which relies on the caller
// handing back a pointer contiguous with the previous call, this
// context owns its window and appends each call's bytes into it,
// rebasing into an explicit external dictionary of the last 64KiB (the
// farthest any valid LZ4 offset, <= 65535, can reach) once the window
// grows past maxWindow.
type StreamCompressor struct {
	HCState
	fastTable [fastHashSize]uint32
	useFast   bool
	accel     int

	maxWindow int // rebase threshold; defaults to 4x the 64KiB dict cap
}

const streamDictCap = 64 << 10

// NewStreamCompressor creates a streaming compressor context. Call
// ResetFast or ResetLevel before first use.
func NewStreamCompressor() *StreamCompressor {
	return &StreamCompressor{maxWindow: 4 * streamDictCap}
}

// ResetFast configures the context for fast-mode streaming at the
// given acceleration and discards any loaded dictionary or history.
func (c *StreamCompressor) ResetFast(acceleration int) {
	if acceleration < 1 {
		acceleration = 1
	}
	if acceleration > maxAcceleration {
		acceleration = maxAcceleration
	}
	c.clear()
	c.useFast = true
	c.accel = acceleration
}

// ResetLevel configures the context for LZ4HC chain-mode streaming.
// Levels are restricted to [3, 9] (the chain-based strategy); anything
// outside that range clamps to DefaultHCLevel, since LZ4MID and LZ4OPT
// are one-shot-only strategies (SPEC_FULL §Open Question resolutions).
func (c *StreamCompressor) ResetLevel(level int) {
	if level < 3 || level > 9 {
		level = DefaultHCLevel
	}
	c.clear()
	c.useFast = false
	c.level = level
}

func (c *StreamCompressor) clear() {
	for i := range c.hashTable {
		c.hashTable[i] = 0
	}
	for i := range c.chainTable {
		c.chainTable[i] = 0
	}
	for i := range c.fastTable {
		c.fastTable[i] = 0
	}
	c.prefix = nil
	c.dict = nil
	c.lowLimit = 0
	c.dictLimit = 0
	c.nextToUpdate = 0
	c.end = 0
}

// LoadDict hashes up to the last 64KiB of dict and installs it as the
// initial prefix window, so the first CompressContinue call can
// reference it (§4.8 "load_dict").
func (c *StreamCompressor) LoadDict(dict []byte) int {
	if len(dict) > streamDictCap {
		dict = dict[len(dict)-streamDictCap:]
	}
	c.prefix = append([]byte(nil), dict...)
	c.end = uint32(len(c.prefix))
	c.lowLimit = 0
	c.dictLimit = 0
	c.nextToUpdate = 0

	if c.useFast {
		limit := len(c.prefix) - minMatch
		for i := 0; i <= limit; i++ {
			c.fastTable[hash4(read32(c.prefix, i), fastHashLog)] = uint32(i)
		}
	} else {
		c.insertHC(uint32(len(c.prefix)))
	}
	c.nextToUpdate = uint32(len(c.prefix))
	return len(c.prefix)
}

// rebase trims the window once it has grown past maxWindow, keeping
// only the last 64KiB (the farthest any valid offset can reach) as the
// external dictionary and starting a fresh prefix, per §4.8's
// "cumulative index exceeds a bound" rule.
func (c *StreamCompressor) rebase() {
	if len(c.prefix) <= c.maxWindow {
		return
	}
	keep := streamDictCap
	if keep > len(c.prefix) {
		keep = len(c.prefix)
	}
	newDict := append([]byte(nil), c.prefix[len(c.prefix)-keep:]...)
	logging.Get().Debug().
		Int("window_len", len(c.prefix)).
		Int("kept_dict_len", keep).
		Msg("rebasing stream window into external dictionary")

	c.lowLimit = c.dictLimit + uint32(len(c.prefix)-keep)
	c.dict = newDict
	c.dictLimit += uint32(len(c.prefix))
	c.prefix = nil
	c.end = c.dictLimit
	c.nextToUpdate = c.dictLimit
}

// CompressContinue compresses src as the next block in the stream,
// appending it to the window so later blocks may reference it, and
// returns the bytes written to dst.
func (c *StreamCompressor) CompressContinue(src, dst []byte) (int, error) {
	if len(src) > MaxInputSize {
		return 0, ErrInputTooLarge
	}
	c.rebase()

	start := len(c.prefix)
	c.prefix = append(c.prefix, src...)
	c.end = c.dictLimit + uint32(len(c.prefix))

	if len(src) == 0 {
		return 0, nil
	}

	oend := len(dst)
	srcLen := len(c.prefix)
	if len(src) < minMatch+9 {
		op, ok := encodeLastLiterals(dst, 0, oend, c.prefix, start, len(src))
		if !ok {
			return 0, ErrOutputTooSmall
		}
		c.nextToUpdate = c.currentIndex(srcLen)
		return op, nil
	}

	if c.useFast {
		return c.compressContinueFast(dst, oend, start, srcLen)
	}
	params := levelTable[c.level]
	return c.compressContinueHC(dst, oend, start, srcLen, params)
}

func (c *StreamCompressor) compressContinueFast(dst []byte, oend, start, srcLen int) (int, error) {
	matchLimit := srcLen - lastLiterals
	searchLimit := srcLen - mfLimit
	anchor := start
	ip := start
	op := 0
	src := c.prefix

	if ip == 0 {
		ip = 1
	}

	for ip <= searchLimit {
		h := hash4(read32(src, ip), fastHashLog)
		m := int(c.fastTable[h])
		c.fastTable[h] = uint32(ip)

		if m > 0 && m < ip && ip-m <= maxDistance && read32(src, m) == read32(src, ip) {
			literalLen := ip - anchor
			matchLen := minMatch + matchLengthForward(src, ip+minMatch, m+minMatch, matchLimit)
			offset := ip - m

			var ok bool
			op, ok = encodeSequence(dst, op, oend, src, anchor, literalLen, offset, matchLen)
			if !ok {
				return 0, ErrOutputTooSmall
			}
			ip += matchLen
			anchor = ip
			continue
		}
		ip++
	}

	if anchor < srcLen {
		op2, ok := encodeLastLiterals(dst, op, oend, src, anchor, srcLen-anchor)
		if !ok {
			return 0, ErrOutputTooSmall
		}
		op = op2
	}
	c.nextToUpdate = c.currentIndex(srcLen)
	return op, nil
}

func (c *StreamCompressor) compressContinueHC(dst []byte, oend, start, srcLen int, params levelParams) (int, error) {
	matchLimit := srcLen - lastLiterals
	src := c.prefix
	anchor := start
	ip := start
	op := 0

	c.insertHC(c.currentIndex(ip))

	for ip < srcLen-mfLimit {
		idx := c.currentIndex(ip)
		c.insertHC(idx)

		offset, length, candIdx := c.findMatch(idx, ip, matchLimit, params.maxAttempts)
		if length < minMatch {
			ip++
			continue
		}
		rescued := false
		if params.rescue && candIdx >= c.dictLimit && c.chainHasNeighbor(idx, ip, candIdx, params.maxAttempts) {
			candPos := int(candIdx - c.dictLimit)
			if period, rlen := rescueRepeat(src, ip, candPos, matchLimit); rlen > length {
				offset, length = period, rlen
				rescued = true
			}
		}

		// See compressHCChain: candPos was only verified to match under
		// the original offset, not the rescued period, so backward
		// extension against it is unsafe once rescue fires.
		backLen := 0
		if !rescued && candIdx >= c.dictLimit {
			candPos := int(candIdx - c.dictLimit)
			backLen = matchLengthBackward(src, ip, candPos, anchor, 0)
		}
		matchStart := ip - backLen
		length += backLen

		literalLen := matchStart - anchor
		var ok bool
		op, ok = encodeSequence(dst, op, oend, src, anchor, literalLen, offset, length)
		if !ok {
			return 0, ErrOutputTooSmall
		}

		ip = matchStart + length
		anchor = ip
		c.insertHC(c.currentIndex(ip))
	}

	if anchor < srcLen {
		op2, ok := encodeLastLiterals(dst, op, oend, src, anchor, srcLen-anchor)
		if !ok {
			return 0, ErrOutputTooSmall
		}
		op = op2
	}
	c.nextToUpdate = c.currentIndex(srcLen)
	return op, nil
}

// SaveDict copies up to the last 64KiB of the current prefix into buf
// and rebases the context so a copy of buf's contents becomes its
// external dictionary (with an empty prefix), letting the caller
// persist that dictionary across contexts (§4.8).
func (c *StreamCompressor) SaveDict(buf []byte) (int, error) {
	keep := len(c.prefix)
	if keep > streamDictCap {
		keep = streamDictCap
	}
	if keep > len(buf) {
		return 0, ErrInvalidState
	}
	copy(buf[:keep], c.prefix[len(c.prefix)-keep:])

	c.lowLimit = c.dictLimit + uint32(len(c.prefix)-keep)
	c.dict = append([]byte(nil), buf[:keep]...)
	c.dictLimit += uint32(len(c.prefix))
	c.prefix = nil
	c.end = c.dictLimit
	c.nextToUpdate = c.dictLimit

	return keep, nil
}
