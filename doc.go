/*
Package tinydeflate implements a streaming DEFLATE compressor (RFC 1951),
optionally wrapped in the zlib container (RFC 1950).

The compressor works on fixed-size buffers and makes no heap allocations
of its own while compressing: a 32 KiB sliding dictionary with hash-chain match finding,
lazy (or greedy) parsing into a 24 KiB token buffer, and two-pass
dynamic-Huffman block encoding. Every block that carries data is a
dynamic block; stored and fixed-Huffman blocks are not produced (except
for the 2-byte fixed-code encoding of an empty final block).

The low 12 bits of Flags select the match-finder probe budget directly
(1 = fastest, 4095 = best compression; values below 1 are clamped to 1).

For whole blocks of memory:

	out, err := tinydeflate.Compress(data, tinydeflate.DefaultMaxProbes|tinydeflate.WriteZlibHeader)

For streams, Writer is an io.WriteCloser:

	w := tinydeflate.NewWriter(dst, tinydeflate.DefaultMaxProbes|tinydeflate.WriteZlibHeader)
	w.Write(data)
	w.Close()

The Compressor type may be used directly when the caller wants to manage
the output Sink itself.
*/
package tinydeflate
