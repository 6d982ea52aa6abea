package tinydeflate

// Static RFC 1951 lookup tables. The per-byte tables are derived once at
// init from the base/extra tables in §3.2.5 of the RFC; they are never
// written to after that, so sharing them across sessions is safe.

// lengthBase[c] is the shortest match length encoded by length code
// 257+c; lengthExtraBits[c] is its number of extra bits.
var lengthBase = [29]uint16{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
	35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtraBits = [29]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distBase[c] is the shortest distance encoded by distance code c;
// distExtraBits[c] is its number of extra bits.
var distBase = [30]uint16{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
	257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var distExtraBits = [30]uint8{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// lenSym and lenExtra are indexed by matchLen - minMatchLen.
var (
	lenSym   [256]uint16
	lenExtra [256]uint8
)

// smallDistSym and smallDistExtra are indexed by dist - 1 for
// distances up to 512; largeDistSym and largeDistExtra are indexed by
// (dist - 1) >> 8 for larger distances.
var (
	smallDistSym   [512]uint8
	smallDistExtra [512]uint8
	largeDistSym   [128]uint8
	largeDistExtra [128]uint8
)

// codeOrder is the fixed order in which the code-length-alphabet code
// lengths appear in a dynamic block header (RFC 1951 §3.2.7).
var codeOrder = [19]uint8{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

func init() {
	for c := 0; c < 28; c++ {
		for l := int(lengthBase[c]); l < int(lengthBase[c+1]); l++ {
			lenSym[l-minMatchLen] = uint16(257 + c)
			lenExtra[l-minMatchLen] = lengthExtraBits[c]
		}
	}
	lenSym[maxMatchLen-minMatchLen] = 285
	lenExtra[maxMatchLen-minMatchLen] = 0

	c := 0
	for d := 1; d <= 512; d++ {
		for c < 29 && int(distBase[c+1]) <= d {
			c++
		}
		smallDistSym[d-1] = uint8(c)
		smallDistExtra[d-1] = distExtraBits[c]
	}
	for i := 2; i < 128; i++ {
		d := i<<8 + 1
		for c < 29 && int(distBase[c+1]) <= d {
			c++
		}
		largeDistSym[i] = uint8(c)
		largeDistExtra[i] = distExtraBits[c]
	}
}
