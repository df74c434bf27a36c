package block

// writeExtendedLength appends the 0xFF-run encoding of n (the amount
// above the 15 a token nibble can hold directly) to dst[op:], returning
// the new op, or false if it would run past oend.
func writeExtendedLength(dst []byte, op, oend, n int) (int, bool) {
	for n >= 255 {
		if op >= oend {
			return op, false
		}
		dst[op] = 255
		op++
		n -= 255
	}
	if op >= oend {
		return op, false
	}
	dst[op] = byte(n)
	op++
	return op, true
}

// extraLengthBytes returns how many bytes writeExtendedLength needs for
// n, used by callers that want to bounds-check before writing.
func extraLengthBytes(n int) int {
	return n/255 + 1
}

// encodeSequence is the shared LZ4 sequence emitter used by the fast
// codec and every HC strategy: token, optional extended literal
// length, literals, offset, optional extended match length. matchLen
// is the true match length (>= minMatch); offset is 1..65535.
//
// It returns the advanced op and true on success, or the original op
// and false if dst does not have room — callers translate that into
// ErrOutputTooSmall.
func encodeSequence(dst []byte, op, oend int, src []byte, litStart, litLen, offset, matchLen int) (int, bool) {
	if op >= oend {
		return op, false
	}
	tokenPos := op
	op++

	litCode := litLen
	if litCode > 15 {
		litCode = 15
	}
	matchCode := matchLen - minMatch
	matchCodeNibble := matchCode
	if matchCodeNibble > 15 {
		matchCodeNibble = 15
	}
	dst[tokenPos] = byte(litCode<<4) | byte(matchCodeNibble)

	if litLen >= 15 {
		var ok bool
		op, ok = writeExtendedLength(dst, op, oend, litLen-15)
		if !ok {
			return tokenPos, false
		}
	}

	if op+litLen > oend {
		return tokenPos, false
	}
	copy(dst[op:op+litLen], src[litStart:litStart+litLen])
	op += litLen

	if op+2 > oend {
		return tokenPos, false
	}
	writeLE16(dst[op:op+2], uint16(offset))
	op += 2

	if matchCode >= 15 {
		var ok bool
		op, ok = writeExtendedLength(dst, op, oend, matchCode-15)
		if !ok {
			return tokenPos, false
		}
	}

	return op, true
}

// encodeLastLiterals emits the trailing literals-only sequence that
// closes every block (no match, so no offset or match-length fields).
func encodeLastLiterals(dst []byte, op, oend int, src []byte, litStart, litLen int) (int, bool) {
	if op >= oend {
		return op, false
	}
	tokenPos := op
	op++

	litCode := litLen
	if litCode > 15 {
		litCode = 15
	}
	dst[tokenPos] = byte(litCode << 4)

	if litLen >= 15 {
		var ok bool
		op, ok = writeExtendedLength(dst, op, oend, litLen-15)
		if !ok {
			return tokenPos, false
		}
	}

	if op+litLen > oend {
		return tokenPos, false
	}
	copy(dst[op:op+litLen], src[litStart:litStart+litLen])
	op += litLen
	return op, true
}

// sequencePrice is the cost LZ4OPT's trellis minimizes (§4.6) for
// litLen literals followed by a match of matchLen: literalsPrice (which
// already counts the token byte) plus 3, plus any extended match-length
// bytes. That is one byte more than encodeSequence writes for the same
// sequence.
func sequencePrice(litLen, matchLen int) int {
	price := literalsPrice(litLen) + 3
	matchCode := matchLen - minMatch
	if matchCode >= 15 {
		price += (matchCode-15)/255 + 1
	}
	return price
}

// literalsPrice is the byte cost of encoding litLen literals (token
// nibble's share plus literals plus any extended-length bytes).
func literalsPrice(litLen int) int {
	price := litLen + 1
	if litLen >= 15 {
		price += (litLen-15)/255 + 1
	}
	return price
}
