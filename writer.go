package tinydeflate

import "io"

// A Writer compresses data written to it and sends the compressed
// stream to an underlying io.Writer. Close must be called to flush the
// final block (and the zlib trailer, when framing is on).
type Writer struct {
	c    Compressor
	sink writerSink
	err  error
}

// NewWriter returns a Writer compressing to dst with the given flags.
func NewWriter(dst io.Writer, flags Flags) *Writer {
	w := new(Writer)
	w.sink.dst = dst
	w.c.Init(&w.sink, flags)
	return w
}

// Reset discards the Writer's state and starts a new stream writing to
// dst, keeping the configuration it was created with.
func (w *Writer) Reset(dst io.Writer) {
	w.sink = writerSink{dst: dst}
	w.err = nil
	w.c.Init(&w.sink, w.c.flags)
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	if !w.c.Compress(p) {
		w.err = w.sink.takeError()
		return 0, w.err
	}
	return len(p), nil
}

// Close emits the final block and flushes all buffered output. It does
// not close the underlying writer.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if !w.c.Finish() {
		w.err = w.sink.takeError()
		return w.err
	}
	w.err = ErrClosed
	return nil
}

// writerSink adapts an io.Writer to the Sink contract, keeping the
// first write error for the Writer to report.
type writerSink struct {
	dst io.Writer
	err error
}

func (s *writerSink) Put(p []byte) bool {
	if s.err != nil {
		return false
	}
	n, err := s.dst.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	s.err = err
	return err == nil
}

func (s *writerSink) takeError() error {
	if s.err != nil {
		return s.err
	}
	return ErrWriteFailed
}
