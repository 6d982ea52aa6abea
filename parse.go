package tinydeflate

// Tokens are packed into lzBuf as groups of up to eight, each group
// preceded by a flag byte. Flag bits fill from the top as tokens are
// recorded (shift right, set bit 7 for a match), so after eight tokens
// bit k of the flag byte describes the k-th token of the group. A
// literal token is one byte; a match token is three: length-3, then
// distance-1 in little-endian order.

// rejectDist is the distance at and beyond which a minimum-length
// match costs more to encode than three literals.
const rejectDist = 12 * 1024

func (c *Compressor) resetLZBuf() {
	c.flagsPos = 0
	c.lzPos = 1
	c.numFlagsLeft = 8
}

func (c *Compressor) advanceFlag() {
	c.numFlagsLeft--
	if c.numFlagsLeft == 0 {
		c.numFlagsLeft = 8
		c.flagsPos = c.lzPos
		c.lzPos++
	}
	if c.lzPos > lzCodeBufSize-4 {
		c.flushBlock(false)
	}
}

func (c *Compressor) recordLiteral(lit byte) {
	c.lzBuf[c.lzPos] = lit
	c.lzPos++
	c.lzBuf[c.flagsPos] >>= 1
	c.advanceFlag()
}

func (c *Compressor) recordMatch(matchLen, matchDist int) {
	c.lzBuf[c.lzPos] = byte(matchLen - minMatchLen)
	c.lzBuf[c.lzPos+1] = byte(matchDist - 1)
	c.lzBuf[c.lzPos+2] = byte((matchDist - 1) >> 8)
	c.lzPos += 3
	c.lzBuf[c.flagsPos] = c.lzBuf[c.flagsPos]>>1 | 0x80
	c.advanceFlag()
}

// parseStep consumes one parsing decision from the lookahead: it looks
// for a match at lookaheadPos, runs the two-state lazy/greedy machine,
// and advances the lookahead past whatever was committed.
func (c *Compressor) parseStep() {
	lenToMove := 1
	curDist := 0
	curLen := minMatchLen - 1
	if c.savedMatchLen > 0 {
		curLen = c.savedMatchLen
	}
	curDist, curLen = c.findMatch(c.lookaheadPos, c.dictSize, c.lookaheadSize, curDist, curLen)
	if curLen == minMatchLen && curDist >= rejectDist {
		curDist = 0
		curLen = minMatchLen - 1
	}

	switch {
	case c.savedMatchLen > 0:
		if curLen > c.savedMatchLen {
			// The match one byte later is longer; the held byte
			// becomes a literal.
			c.recordLiteral(c.savedLit)
			if curLen >= commitLen {
				c.recordMatch(curLen, curDist)
				c.savedMatchLen = 0
				lenToMove = curLen
			} else {
				c.savedLit = c.dict[c.lookaheadPos]
				c.savedMatchDist = curDist
				c.savedMatchLen = curLen
			}
		} else {
			c.recordMatch(c.savedMatchLen, c.savedMatchDist)
			// The deferred byte already advanced us one position into
			// the match.
			lenToMove = c.savedMatchLen - 1
			c.savedMatchLen = 0
		}
	case curDist == 0:
		c.recordLiteral(c.dict[c.lookaheadPos])
	case c.greedy || curLen >= commitLen:
		c.recordMatch(curLen, curDist)
		lenToMove = curLen
	default:
		c.savedLit = c.dict[c.lookaheadPos]
		c.savedMatchDist = curDist
		c.savedMatchLen = curLen
	}

	c.lookaheadPos = (c.lookaheadPos + lenToMove) & windowMask
	c.lookaheadSize -= lenToMove
	if c.dictSize+lenToMove > windowSize {
		c.dictSize = windowSize
	} else {
		c.dictSize += lenToMove
	}
}

// commitLen is the match length at which lazy parsing commits
// immediately; deferring on very long matches costs parse time for a
// negligible chance of improvement.
const commitLen = 64
