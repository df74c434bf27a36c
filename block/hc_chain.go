package block

// insertHC advances nextToUpdate to idxEnd, hashing each new position
// into hashTable and recording the walk-back delta in chainTable
// (§3, §4.5 "Insertion").
func (s *HCState) insertHC(idxEnd uint32) {
	for s.nextToUpdate < idxEnd {
		idx := s.nextToUpdate
		pos := int(idx - s.dictLimit)
		if pos+minMatch > len(s.prefix) {
			s.nextToUpdate++
			continue
		}
		h := hash4(read32(s.prefix, pos), hcHashLog)
		prev := s.hashTable[h]
		if prev == 0 || prev > idx {
			s.chainTable[idx&chainMask] = 0
		} else {
			d := idx - prev
			if d > maxDistance {
				d = 0
			}
			s.chainTable[idx&chainMask] = uint16(d)
		}
		s.hashTable[h] = idx
		s.nextToUpdate++
	}
}

// byteAtIndex returns the byte at a unified index, resolving through
// either the current prefix or the external dictionary.
func (s *HCState) byteAtIndex(idx uint32) (byte, bool) {
	if idx >= s.dictLimit {
		pos := int(idx - s.dictLimit)
		if pos < 0 || pos >= len(s.prefix) {
			return 0, false
		}
		return s.prefix[pos], true
	}
	pos := int(idx - s.lowLimit)
	if pos < 0 || pos >= len(s.dict) {
		return 0, false
	}
	return s.dict[pos], true
}

// matchLengthAt measures the forward match length between src position
// pos (in the current prefix) and a candidate unified index, up to
// matchLimitPos (a position bound within the current prefix).
func (s *HCState) matchLengthAt(pos int, candidate uint32, matchLimitPos int) int {
	if candidate >= s.dictLimit {
		cpos := int(candidate - s.dictLimit)
		return matchLengthForward(s.prefix, pos, cpos, matchLimitPos)
	}
	length := 0
	for pos+length < matchLimitPos {
		cb, ok := s.byteAtIndex(candidate + uint32(length))
		if !ok || s.prefix[pos+length] != cb {
			break
		}
		length++
	}
	return length
}

// findMatch walks the hash chain from idx's hash bucket, bounded by
// maxAttempts, and returns the longest candidate whose 4-byte prefix
// matches src at pos. candIdx is the unified index of that candidate
// (needed by the repetitive-pattern rescue).
func (s *HCState) findMatch(idx uint32, pos, matchLimitPos, maxAttempts int) (bestOffset, bestLen int, candIdx uint32) {
	h := hash4(read32(s.prefix, pos), hcHashLog)
	candidate := s.hashTable[h]

	for candidate > 0 && candidate < idx && maxAttempts > 0 {
		if idx-candidate > maxDistance || candidate < s.lowLimit {
			break
		}
		cb0, ok0 := s.byteAtIndex(candidate)
		if ok0 && cb0 == s.prefix[pos] {
			length := s.matchLengthAt(pos, candidate, matchLimitPos)
			if length >= minMatch && length > bestLen {
				bestLen = length
				bestOffset = int(idx - candidate)
				candIdx = candidate
			}
		}
		delta := s.chainTable[candidate&chainMask]
		if delta == 0 {
			break
		}
		next := candidate - uint32(delta)
		if next >= candidate {
			break
		}
		candidate = next
		maxAttempts--
	}
	return bestOffset, bestLen, candIdx
}

// chainHasNeighbor re-walks idx's hash chain (the same bucket findMatch
// just searched) looking for a candidate whose unified index sits
// exactly one position away from target. This is the condition
// rescueRepeat actually depends on (§4.5 "when the chain reveals a
// candidate at distance 1 from the best"): the best match's own offset
// says nothing about whether a neighboring chain entry exists, since a
// run of a single repeated byte is only one of the ways a best match
// can end up with offset 1.
func (s *HCState) chainHasNeighbor(idx uint32, pos int, target uint32, maxAttempts int) bool {
	h := hash4(read32(s.prefix, pos), hcHashLog)
	candidate := s.hashTable[h]

	for candidate > 0 && candidate < idx && maxAttempts > 0 {
		if idx-candidate > maxDistance || candidate < s.lowLimit {
			break
		}
		if candidate+1 == target || candidate == target+1 {
			return true
		}
		delta := s.chainTable[candidate&chainMask]
		if delta == 0 {
			break
		}
		next := candidate - uint32(delta)
		if next >= candidate {
			break
		}
		candidate = next
		maxAttempts--
	}
	return false
}

// rescueRepeat classifies the candidate's 4-byte pattern as repeating
// with period 1, 2 or 4, and measures how far that period continues
// forward from pos directly instead of trusting a chain walk that may
// have been cut short by maxAttempts (§4.5 "Repetitive-pattern rescue").
// The returned length is a match length starting at pos with offset
// period; bytes before pos are not measured.
func rescueRepeat(src []byte, pos, candidatePos, matchLimitPos int) (period, length int) {
	if candidatePos < 0 || candidatePos+4 > len(src) {
		return 0, 0
	}
	b0, b1, b2, b3 := src[candidatePos], src[candidatePos+1], src[candidatePos+2], src[candidatePos+3]
	var unit int
	switch {
	case b0 == b1 && b1 == b2 && b2 == b3:
		unit = 1
	case b0 == b2 && b1 == b3:
		unit = 2
	default:
		// Neither sub-period holds; the 4-byte window is itself the
		// smallest repeating unit.
		unit = 4
	}

	runLen := 0
	for pos+runLen < matchLimitPos {
		if src[pos+runLen] != src[pos+runLen-unit] {
			break
		}
		runLen++
	}
	return unit, runLen
}

// compressHCChain is the LZ4HC strategy for levels 3-9 (§4.5).
func compressHCChain(st *HCState, src, dst []byte, params levelParams) (int, error) {
	srcLen := len(src)
	matchLimit := srcLen - lastLiterals
	oend := len(dst)

	anchor := 0
	ip := 0
	op := 0

	st.insertHC(st.currentIndex(0))

	for ip < srcLen-mfLimit {
		idx := st.currentIndex(ip)
		st.insertHC(idx)

		offset, length, candIdx := st.findMatch(idx, ip, matchLimit, params.maxAttempts)
		if length < minMatch {
			ip++
			continue
		}

		rescued := false
		if params.rescue && candIdx >= st.dictLimit && st.chainHasNeighbor(idx, ip, candIdx, params.maxAttempts) {
			candPos := int(candIdx - st.dictLimit)
			if period, rlen := rescueRepeat(src, ip, candPos, matchLimit); rlen > length {
				offset, length = period, rlen
				rescued = true
			}
		}

		// Backward extension walks back from candPos, the original
		// candidate's position; a rescue swaps in a different offset
		// (the repeat period), so candPos no longer describes bytes
		// verified to match under it.
		backLen := 0
		if !rescued && candIdx >= st.dictLimit {
			candPos := int(candIdx - st.dictLimit)
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
		st.insertHC(st.currentIndex(ip))
	}

	if anchor < srcLen {
		op2, ok := encodeLastLiterals(dst, op, oend, src, anchor, srcLen-anchor)
		if !ok {
			return 0, ErrOutputTooSmall
		}
		op = op2
	}
	st.nextToUpdate = st.currentIndex(srcLen)
	return op, nil
}
