package block

const midHashLog = 14

// compressMID implements LZ4MID (level 2, §4.4): two separate
// 2^14-entry tables, one keyed on the 4-byte hash, one on the low 56
// bits of the 8-byte value, so an 8-byte candidate can be preferred
// over a shorter 4-byte one without a full chain walk.
func compressMID(st *HCState, src, dst []byte) (int, error) {
	srcLen := len(src)
	matchLimit := srcLen - lastLiterals
	oend := len(dst)

	table4 := make([]uint32, 1<<midHashLog)
	table8 := make([]uint32, 1<<midHashLog)

	anchor := 0
	ip := 0
	op := 0

	seed := func(pos int) {
		if pos < 0 || pos+4 > srcLen {
			return
		}
		table4[hash4(read32(src, pos), midHashLog)] = uint32(pos)
		if pos+8 <= srcLen {
			table8[hash8(read64(src, pos), midHashLog)] = uint32(pos)
		}
	}

	for ip+8 <= srcLen && ip < srcLen-mfLimit {
		h8 := hash8(read64(src, ip), midHashLog)
		cand8 := table8[h8]
		table8[h8] = uint32(ip)

		matchStart, length, offset := ip, 0, 0

		if cand8 > 0 && int(cand8) < ip && ip-int(cand8) <= maxDistance {
			if l := matchLengthForward(src, ip, int(cand8), matchLimit); l >= minMatch {
				length = l
				offset = ip - int(cand8)
			}
		}

		h4 := hash4(read32(src, ip), midHashLog)
		cand4 := table4[h4]
		table4[h4] = uint32(ip)

		if length == 0 && cand4 > 0 && int(cand4) < ip && ip-int(cand4) <= maxDistance {
			if l := matchLengthForward(src, ip, int(cand4), matchLimit); l >= minMatch {
				length = l
				offset = ip - int(cand4)

				// Look one byte ahead for a longer 8-byte candidate and
				// prefer it, turning the skipped byte into a literal.
				if ip+1+8 <= srcLen {
					h8b := hash8(read64(src, ip+1), midHashLog)
					cand8b := table8[h8b]
					if cand8b > 0 && int(cand8b) < ip+1 && (ip+1)-int(cand8b) <= maxDistance {
						if l2 := matchLengthForward(src, ip+1, int(cand8b), matchLimit); l2 > length {
							matchStart = ip + 1
							length = l2
							offset = (ip + 1) - int(cand8b)
						}
					}
				}
			}
		}

		if length >= minMatch {
			literalLen := matchStart - anchor
			var ok bool
			op, ok = encodeSequence(dst, op, oend, src, anchor, literalLen, offset, length)
			if !ok {
				return 0, ErrOutputTooSmall
			}

			matchEnd := matchStart + length
			seed(matchStart + 1)
			seed(matchStart + 2)
			seed(matchEnd - 5)
			seed(matchEnd - 3)
			seed(matchEnd - 2)
			seed(matchEnd - 1)

			anchor = matchEnd
			ip = matchEnd
			continue
		}

		skip := 1 + (ip-anchor)>>9
		ip += skip
	}

	if anchor < srcLen {
		op2, ok := encodeLastLiterals(dst, op, oend, src, anchor, srcLen-anchor)
		if !ok {
			return 0, ErrOutputTooSmall
		}
		op = op2
	}
	_ = st
	return op, nil
}
