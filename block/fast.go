package block

const (
	fastHashLog  = 14
	fastHashSize = 1 << fastHashLog
	// skipTrigger controls how quickly the search stride grows on
	// incompressible data: step = searchMatchNb >> skipTrigger, so the
	// first 1<<skipTrigger probes all advance by `acceleration`.
	skipTrigger = 6

	maxAcceleration = 65537
)

// CompressBound returns the worst-case size compress_fast/compress_hc
// may need for an input of n bytes.
func CompressBound(n int) (int, error) {
	if n < 0 || n > MaxInputSize {
		return 0, ErrInputTooLarge
	}
	return n + n/255 + 16, nil
}

// CompressDefault compresses src into dst at acceleration 1.
func CompressDefault(src, dst []byte) (int, error) {
	return CompressFast(src, dst, 1)
}

// CompressFast implements the single-table hash compressor (§4.1).
// acceleration is clamped to [1, 65537].
func CompressFast(src, dst []byte, acceleration int) (int, error) {
	if len(src) > MaxInputSize {
		return 0, ErrInputTooLarge
	}
	if len(src) == 0 {
		return 0, nil
	}
	if acceleration < 1 {
		acceleration = 1
	}
	if acceleration > maxAcceleration {
		acceleration = maxAcceleration
	}

	oend := len(dst)

	if len(src) < minMatch+9 {
		op, ok := encodeLastLiterals(dst, 0, oend, src, 0, len(src))
		if !ok {
			return 0, ErrOutputTooSmall
		}
		return op, nil
	}

	var table [fastHashSize]uint32
	srcLen := len(src)
	matchLimit := srcLen - lastLiterals
	searchLimit := srcLen - mfLimit

	anchor := 0
	ip := 1
	op := 0

	for {
		searchMatchNb := acceleration << skipTrigger
		candidateIP := ip
		var match int
		found := false

		for {
			step := searchMatchNb >> skipTrigger
			searchMatchNb++
			nextIP := candidateIP + step

			if nextIP > searchLimit {
				goto flush
			}

			h := hash4(read32(src, candidateIP), fastHashLog)
			m := int(table[h])
			table[h] = uint32(candidateIP)

			if m > 0 && candidateIP-m <= maxDistance && read32(src, m) == read32(src, candidateIP) {
				match = m
				found = true
				ip = candidateIP
				break
			}
			candidateIP = nextIP
		}

		if !found {
			break
		}

		literalLen := ip - anchor
		matchStartSrc := ip + minMatch
		matchStartCand := match + minMatch
		matchLen := minMatch + matchLengthForward(src, matchStartSrc, matchStartCand, matchLimit)
		offset := ip - match

		var ok bool
		op, ok = encodeSequence(dst, op, oend, src, anchor, literalLen, offset, matchLen)
		if !ok {
			return 0, ErrOutputTooSmall
		}

		anchor = ip + matchLen
		ip = anchor
	}

flush:
	if anchor < srcLen {
		op2, ok := encodeLastLiterals(dst, op, oend, src, anchor, srcLen-anchor)
		if !ok {
			return 0, ErrOutputTooSmall
		}
		op = op2
	}
	return op, nil
}

// CompressDestSize compresses as large a prefix of src as fits within
// len(dst), shrinking *srcLen to that prefix length via binary search
// over compress_fast attempts.
func CompressDestSize(src, dst []byte, srcLen *int) (int, error) {
	hi := len(src)
	if *srcLen < hi {
		hi = *srcLen
	}
	lo := 0
	bestWritten, bestLen := 0, 0

	for lo <= hi {
		mid := (lo + hi) / 2
		n, err := CompressFast(src[:mid], dst, 1)
		if err == nil {
			bestWritten, bestLen = n, mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	*srcLen = bestLen
	return bestWritten, nil
}
