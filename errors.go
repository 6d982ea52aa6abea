package tinydeflate

import "errors"

// Sentinel errors returned by the helper functions and Writer. The
// Compressor type itself reports failure as a boolean, since once a
// write fails the session has no usable state to report details from.
var (
	// ErrNilSink is returned when Init is given a nil Sink.
	ErrNilSink = errors.New("tinydeflate: nil sink")
	// ErrWriteFailed is returned after the Sink rejects a write; the
	// failure is sticky and the session cannot continue.
	ErrWriteFailed = errors.New("tinydeflate: sink write failed")
	// ErrClosed is returned when data is fed after the terminal flush.
	ErrClosed = errors.New("tinydeflate: compressor already closed")
	// ErrBufferTooSmall is returned by CompressBuffer when the output
	// does not fit in dst.
	ErrBufferTooSmall = errors.New("tinydeflate: output buffer too small")
)
