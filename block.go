package tinydeflate

// Block emission is two passes over the token buffer: the first tallies
// symbol frequencies and builds the Huffman tables (emitting the block
// header on the way), the second emits the coded tokens. A terminal
// flush with no queued tokens gets the 2-byte fixed-code empty block
// instead; a dynamic header for zero symbols would cost ~17 bytes.

func (c *Compressor) flushBlock(lastBlock bool) {
	if c.lzPos == 1 && c.numFlagsLeft == 8 {
		// No tokens queued.
		if lastBlock {
			c.putBits(1, 1) // BFINAL
			c.putBits(1, 2) // BTYPE = fixed Huffman
			c.putBits(0, 7) // end-of-block, fixed code
			c.padToByte()
		}
		return
	}

	// Align a partial flag group, dropping the slot if it is empty.
	c.lzBuf[c.flagsPos] >>= c.numFlagsLeft & 7
	if c.numFlagsLeft == 8 {
		c.lzPos--
	}

	for pass := 0; pass < 2; pass++ {
		if pass == 0 {
			for i := range c.counts[litLenTable][:numLitLenSyms] {
				c.counts[litLenTable][i] = 0
			}
			for i := range c.counts[distTable][:numDistSyms] {
				c.counts[distTable][i] = 0
			}
		}

		flags := uint32(1)
		pos := 0
		for pos < c.lzPos {
			if flags == 1 {
				flags = uint32(c.lzBuf[pos]) | 0x100
				pos++
			}
			if flags&1 != 0 {
				l := int(c.lzBuf[pos])
				d := int(c.lzBuf[pos+1]) | int(c.lzBuf[pos+2])<<8
				pos += 3
				if pass == 0 {
					c.counts[litLenTable][lenSym[l]]++
					if d < 512 {
						c.counts[distTable][smallDistSym[d]]++
					} else {
						c.counts[distTable][largeDistSym[d>>8]]++
					}
				} else {
					sym := lenSym[l]
					c.putBits(uint32(c.codes[litLenTable][sym]), uint32(c.codeSizes[litLenTable][sym]))
					c.putBits(uint32(l)&(1<<lenExtra[l]-1), uint32(lenExtra[l]))
					var dsym, extra uint32
					if d < 512 {
						dsym, extra = uint32(smallDistSym[d]), uint32(smallDistExtra[d])
					} else {
						dsym, extra = uint32(largeDistSym[d>>8]), uint32(largeDistExtra[d>>8])
					}
					c.putBits(uint32(c.codes[distTable][dsym]), uint32(c.codeSizes[distTable][dsym]))
					c.putBits(uint32(d)&(1<<extra-1), extra)
				}
			} else {
				lit := c.lzBuf[pos]
				pos++
				if pass == 0 {
					c.counts[litLenTable][lit]++
				} else {
					c.putBits(uint32(c.codes[litLenTable][lit]), uint32(c.codeSizes[litLenTable][lit]))
				}
			}
			flags >>= 1
		}

		if pass == 0 {
			c.counts[litLenTable][256]++ // end-of-block
			c.startDynamicBlock(lastBlock)
		} else {
			c.putBits(uint32(c.codes[litLenTable][256]), uint32(c.codeSizes[litLenTable][256]))
		}
	}

	if lastBlock {
		c.padToByte()
	}
	c.resetLZBuf()
}

// startDynamicBlock builds the three Huffman tables from the tallied
// frequencies and emits the dynamic block header: BFINAL/BTYPE,
// HLIT/HDIST/HCLEN, the code-length-alphabet lengths in swizzle order,
// and the RLE-packed code lengths of the other two alphabets.
func (c *Compressor) startDynamicBlock(lastBlock bool) {
	c.optimizeTable(litLenTable, numLitLenSyms, 15)
	c.optimizeTable(distTable, numDistSyms, 15)

	numLitCodes := 286
	for ; numLitCodes > 257; numLitCodes-- {
		if c.codeSizes[litLenTable][numLitCodes-1] != 0 {
			break
		}
	}
	numDistCodes := 30
	for ; numDistCodes > 1; numDistCodes-- {
		if c.codeSizes[distTable][numDistCodes-1] != 0 {
			break
		}
	}

	var toPack, packed [286 + 30]uint8
	copy(toPack[:numLitCodes], c.codeSizes[litLenTable][:numLitCodes])
	copy(toPack[numLitCodes:], c.codeSizes[distTable][:numDistCodes])
	total := numLitCodes + numDistCodes

	for i := range c.counts[codeLenTable][:numCodeLenSyms] {
		c.counts[codeLenTable][i] = 0
	}

	numPacked := 0
	zeros, repeats := 0, 0
	prev := uint8(0xFF)

	flushRepeats := func() {
		if repeats == 0 {
			return
		}
		if repeats < 3 {
			c.counts[codeLenTable][prev] += uint16(repeats)
			for ; repeats > 0; repeats-- {
				packed[numPacked] = prev
				numPacked++
			}
		} else {
			c.counts[codeLenTable][16]++
			packed[numPacked] = 16
			packed[numPacked+1] = uint8(repeats - 3)
			numPacked += 2
		}
		repeats = 0
	}
	flushZeros := func() {
		switch {
		case zeros == 0:
			return
		case zeros < 3:
			c.counts[codeLenTable][0] += uint16(zeros)
			for ; zeros > 0; zeros-- {
				packed[numPacked] = 0
				numPacked++
			}
		case zeros <= 10:
			c.counts[codeLenTable][17]++
			packed[numPacked] = 17
			packed[numPacked+1] = uint8(zeros - 3)
			numPacked += 2
		default:
			c.counts[codeLenTable][18]++
			packed[numPacked] = 18
			packed[numPacked+1] = uint8(zeros - 11)
			numPacked += 2
		}
		zeros = 0
	}

	for _, size := range toPack[:total] {
		if size == 0 {
			flushRepeats()
			zeros++
			if zeros == 138 {
				flushZeros()
			}
		} else {
			flushZeros()
			if size != prev {
				flushRepeats()
				c.counts[codeLenTable][size]++
				packed[numPacked] = size
				numPacked++
			} else {
				repeats++
				if repeats == 6 {
					flushRepeats()
				}
			}
		}
		prev = size
	}
	if repeats > 0 {
		flushRepeats()
	} else {
		flushZeros()
	}

	c.optimizeTable(codeLenTable, numCodeLenSyms, 7)

	if lastBlock {
		c.putBits(1, 1)
	} else {
		c.putBits(0, 1)
	}
	c.putBits(2, 2) // BTYPE = dynamic Huffman
	c.putBits(uint32(numLitCodes-257), 5)
	c.putBits(uint32(numDistCodes-1), 5)

	hclen := 19
	for ; hclen > 4; hclen-- {
		if c.codeSizes[codeLenTable][codeOrder[hclen-1]] != 0 {
			break
		}
	}
	c.putBits(uint32(hclen-4), 4)
	for i := 0; i < hclen; i++ {
		c.putBits(uint32(c.codeSizes[codeLenTable][codeOrder[i]]), 3)
	}

	for i := 0; i < numPacked; {
		code := packed[i]
		i++
		c.putBits(uint32(c.codes[codeLenTable][code]), uint32(c.codeSizes[codeLenTable][code]))
		switch code {
		case 16:
			c.putBits(uint32(packed[i]), 2)
			i++
		case 17:
			c.putBits(uint32(packed[i]), 3)
			i++
		case 18:
			c.putBits(uint32(packed[i]), 7)
			i++
		}
	}
}
