package tinydeflate

import (
	"hash"
	"hash/adler32"
)

const (
	windowSize  = 32768
	windowMask  = windowSize - 1
	minMatchLen = 3
	maxMatchLen = 258

	hashBits = 12
	hashSize = 1 << hashBits
	hashMask = hashSize - 1

	lzCodeBufSize = 24 * 1024

	// noPos marks an empty hash head or a truncated chain link.
	noPos = 0xFFFF
)

// Flags configure a compression session. The low 12 bits select the
// match-finder probe budget directly (clamped to a minimum of 1); the
// high bits are the option flags below.
type Flags uint32

const (
	// DefaultMaxProbes is a reasonable probe budget: 1 is fastest,
	// 4095 compresses best.
	DefaultMaxProbes Flags = 100

	// GreedyParsing commits every match immediately instead of
	// deferring by one byte to look for a longer one. Faster, slightly
	// worse compression.
	GreedyParsing Flags = 1 << 29

	// NondeterministicInit skips clearing the hash head table during
	// Init. Starting up is faster, but output depends on whatever the
	// table held before (e.g. from a previous session on the same
	// Compressor). The output still decompresses correctly: stale
	// entries can never produce a match reaching beyond the bytes fed.
	NondeterministicInit Flags = 1 << 30

	// WriteZlibHeader wraps the DEFLATE stream in the RFC 1950 zlib
	// container: a 2-byte header up front and the big-endian Adler-32
	// of the input after the final block.
	WriteZlibHeader Flags = 1 << 31

	maxProbesMask Flags = 0xFFF
)

// A Compressor is a single-use streaming compression session. It owns
// all of its buffers inline and allocates nothing while compressing.
// The zero value is not ready for use; call Init first.
type Compressor struct {
	sink      Sink
	flags     Flags
	maxProbes int
	greedy    bool
	writesOK  bool
	finished  bool

	adler hash.Hash32

	// Sliding dictionary. The first windowSize bytes are the circular
	// window; the tail mirrors the first maxMatchLen-1 bytes so any
	// match of up to maxMatchLen starting inside the window can be
	// read without wrapping.
	dict          [windowSize + maxMatchLen - 1]byte
	lookaheadPos  int // window index of the next byte to parse
	lookaheadSize int // 0..maxMatchLen
	dictSize      int // bytes of valid history before lookaheadPos

	// head[h] is the window position of the most recent insertion
	// hashing to h, or noPos. prev[i] is the head value displaced by
	// the insertion at window position i, forming per-hash chains.
	head [hashSize]uint16
	prev [windowSize]uint16

	// Lazy parser state: a deferred match of savedMatchLen >= 3, or
	// empty when savedMatchLen == 0.
	savedLit       byte
	savedMatchDist int
	savedMatchLen  int

	// Token buffer: groups of up to 8 tokens preceded by a flag byte
	// (bit set = match). lzPos is the next free index, flagsPos the
	// current flag byte's index.
	lzBuf        [lzCodeBufSize]byte
	lzPos        int
	flagsPos     int
	numFlagsLeft int

	// Huffman tables: 0 = literal/length, 1 = distance, 2 = code
	// length alphabet.
	counts    [3][maxHuffSymbols]uint16
	codes     [3][maxHuffSymbols]uint16
	codeSizes [3][maxHuffSymbols]uint8

	// Bit-level output stage.
	bitBuffer uint32
	bitsIn    uint32
	outBuf    [outBufSize]byte
	outPos    int
}

// Init prepares the Compressor to write a new stream to sink. It
// returns false if sink is nil. A Compressor may be reinitialized
// after Finish to start a new stream.
func (c *Compressor) Init(sink Sink, flags Flags) bool {
	if sink == nil {
		return false
	}
	c.sink = sink
	c.flags = flags
	c.maxProbes = int(flags & maxProbesMask)
	if c.maxProbes < 1 {
		c.maxProbes = 1
	}
	c.greedy = flags&GreedyParsing != 0
	if flags&NondeterministicInit == 0 {
		for i := range c.head {
			c.head[i] = noPos
		}
	}
	c.lookaheadPos = 0
	c.lookaheadSize = 0
	c.dictSize = 0
	c.resetLZBuf()
	c.savedLit = 0
	c.savedMatchDist = 0
	c.savedMatchLen = 0
	c.outPos = 0
	c.bitBuffer = 0
	c.bitsIn = 0
	c.writesOK = true
	c.finished = false
	if c.adler == nil {
		c.adler = adler32.New()
	} else {
		c.adler.Reset()
	}
	if flags&WriteZlibHeader != 0 {
		c.putBits(0x78, 8)
		c.putBits(0x01, 8)
	}
	return c.writesOK
}

// Compress feeds a chunk of input. It returns false if the session has
// already failed or been finished; the failure is sticky.
func (c *Compressor) Compress(p []byte) bool {
	if c.sink == nil || c.finished || !c.writesOK {
		return false
	}
	if c.flags&WriteZlibHeader != 0 {
		c.adler.Write(p)
	}
	for len(p) > 0 {
		p = c.fill(p)
		if c.lookaheadSize < maxMatchLen {
			// Wait for more input before parsing, so the match finder
			// always sees a full lookahead mid-stream.
			break
		}
		c.parseStep()
	}
	return c.writesOK
}

// Finish parses out the remaining lookahead, emits the final block,
// appends the zlib trailer when framing is on, and drains all buffered
// output. The session cannot be fed again until it is reinitialized.
func (c *Compressor) Finish() bool {
	if c.sink == nil || c.finished || !c.writesOK {
		return false
	}
	for c.lookaheadSize > 0 {
		c.parseStep()
	}
	if c.savedMatchLen > 0 {
		c.recordMatch(c.savedMatchLen, c.savedMatchDist)
		c.savedMatchLen = 0
	}
	c.flushBlock(true)
	if c.flags&WriteZlibHeader != 0 {
		a := c.adler.Sum32()
		for i := 0; i < 4; i++ {
			c.putBits(a>>24&0xFF, 8)
			a <<= 8
		}
	}
	c.flushOutBuf()
	c.finished = true
	return c.writesOK
}

// fill copies input bytes into the dictionary window until the
// lookahead reaches maxMatchLen or p is exhausted, inserting each new
// readable triplet into the hash chains. It returns the unconsumed
// remainder of p.
func (c *Compressor) fill(p []byte) []byte {
	if c.lookaheadSize >= minMatchLen-1 {
		// Steady state: a rolling hash over the two bytes just before
		// the write position seeds the per-byte chain insertions.
		dstPos := (c.lookaheadPos + c.lookaheadSize) & windowMask
		insPos := (dstPos - 2) & windowMask
		hash := uint32(c.dict[insPos])<<4 ^ uint32(c.dict[(insPos+1)&windowMask])

		n := maxMatchLen - c.lookaheadSize
		if n > len(p) {
			n = len(p)
		}
		c.lookaheadSize += n
		for _, b := range p[:n] {
			c.dict[dstPos] = b
			if dstPos < maxMatchLen-1 {
				c.dict[windowSize+dstPos] = b
			}
			hash = (hash<<4 ^ uint32(b)) & hashMask
			c.prev[insPos] = c.head[hash]
			c.head[hash] = uint16(insPos)
			dstPos = (dstPos + 1) & windowMask
			insPos = (insPos + 1) & windowMask
		}
		p = p[n:]
	} else {
		// Bootstrapping: until a full triplet exists there is nothing
		// to insert into the chains.
		for len(p) > 0 && c.lookaheadSize < maxMatchLen {
			b := p[0]
			p = p[1:]
			dstPos := (c.lookaheadPos + c.lookaheadSize) & windowMask
			c.dict[dstPos] = b
			if dstPos < maxMatchLen-1 {
				c.dict[windowSize+dstPos] = b
			}
			c.lookaheadSize++
			if c.lookaheadSize >= minMatchLen {
				insPos := (dstPos - 2) & windowMask
				hash := (uint32(c.dict[insPos])<<8 ^
					uint32(c.dict[(insPos+1)&windowMask])<<4 ^
					uint32(b)) & hashMask
				c.prev[insPos] = c.head[hash]
				c.head[hash] = uint16(insPos)
			}
		}
	}
	if c.dictSize > windowSize-c.lookaheadSize {
		c.dictSize = windowSize - c.lookaheadSize
	}
	return p
}
