package tinydeflate

// Compress compresses src in one shot and returns the compressed
// stream in a freshly grown buffer. Streams larger than memory should
// use Writer or a Compressor instead.
func Compress(src []byte, flags Flags) ([]byte, error) {
	sink := &ByteSink{B: make([]byte, 0, 64+len(src)/2)}
	if err := compressTo(sink, src, flags); err != nil {
		return nil, err
	}
	return sink.B, nil
}

// CompressBuffer compresses src into dst and returns the number of
// bytes written. It returns ErrBufferTooSmall when the compressed
// stream does not fit; incompressible data can expand slightly, so dst
// should be somewhat larger than src.
func CompressBuffer(dst, src []byte, flags Flags) (int, error) {
	sink := &BufferSink{B: dst}
	if err := compressTo(sink, src, flags); err != nil {
		if err == ErrWriteFailed {
			err = ErrBufferTooSmall
		}
		return 0, err
	}
	return sink.N, nil
}

func compressTo(sink Sink, src []byte, flags Flags) error {
	var c Compressor
	if !c.Init(sink, flags) {
		return ErrNilSink
	}
	if !c.Compress(src) || !c.Finish() {
		return ErrWriteFailed
	}
	return nil
}
