package tinydeflate

import (
	"bytes"
	"compress/zlib"
	"errors"
	"io"
	"testing"

	"github.com/golang/snappy"
	kpflate "github.com/klauspost/compress/flate"
	"github.com/pierrec/lz4/v4"
)

func TestWriterRoundTrip(t *testing.T) {
	src := append(bytes.Repeat([]byte("streaming writer round trip "), 4000), lcgBytes(23, 50000)...)
	b := new(bytes.Buffer)
	w := NewWriter(b, DefaultMaxProbes|WriteZlibHeader)
	for off := 0; off < len(src); off += 10000 {
		end := off + 10000
		if end > len(src) {
			end = len(src)
		}
		if _, err := w.Write(src[off:end]); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if got := inflateZlib(t, b.Bytes()); !bytes.Equal(got, src) {
		t.Fatal("round trip mismatch")
	}
	if _, err := w.Write([]byte("x")); err == nil {
		t.Fatal("Write after Close succeeded")
	}
}

func TestWriterReset(t *testing.T) {
	src := bytes.Repeat([]byte("reset and reuse "), 1000)
	b1 := new(bytes.Buffer)
	w := NewWriter(b1, DefaultMaxProbes|WriteZlibHeader)
	w.Write(src)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	b2 := new(bytes.Buffer)
	w.Reset(b2)
	w.Write(src)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b1.Bytes(), b2.Bytes()) {
		t.Fatal("reset stream differs from the first")
	}
}

type errWriter struct {
	limit int
	err   error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.limit < len(p) {
		return 0, e.err
	}
	e.limit -= len(p)
	return len(p), nil
}

func TestWriterPropagatesError(t *testing.T) {
	wantErr := errors.New("disk full")
	w := NewWriter(&errWriter{limit: 8192, err: wantErr}, DefaultMaxProbes)
	src := lcgBytes(31, 1<<17)
	_, err := w.Write(src)
	if err == nil {
		err = w.Close()
	}
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

// benchCorpus is a mixed corpus: compressible text with a stretch of
// LCG noise, the shape most inputs take in practice.
var benchCorpus []byte

func corpus() []byte {
	if benchCorpus == nil {
		text := bytes.Repeat([]byte(
			"It seems probable to me that God in the beginning formed matter in "+
				"solid, massy, hard, impenetrable, moveable particles. "), 6000)
		benchCorpus = append(text, lcgBytes(2, 1<<17)...)
	}
	return benchCorpus
}

func benchmarkWriter(b *testing.B, flags Flags) {
	b.StopTimer()
	b.ReportAllocs()
	data := corpus()
	b.SetBytes(int64(len(data)))
	buf := new(bytes.Buffer)
	w := NewWriter(buf, flags)
	w.Write(data)
	w.Close()
	b.ReportMetric(float64(len(data))/float64(buf.Len()), "ratio")
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		w.Reset(io.Discard)
		w.Write(data)
		w.Close()
	}
}

func BenchmarkWriterFast(b *testing.B) { benchmarkWriter(b, 1|WriteZlibHeader) }

func BenchmarkWriterDefault(b *testing.B) { benchmarkWriter(b, DefaultMaxProbes|WriteZlibHeader) }
func BenchmarkWriterGreedy(b *testing.B) {
	benchmarkWriter(b, DefaultMaxProbes|GreedyParsing|WriteZlibHeader)
}
func BenchmarkWriterMaxProbes(b *testing.B) { benchmarkWriter(b, 4095|WriteZlibHeader) }

func BenchmarkZlibStdlib(b *testing.B) {
	b.StopTimer()
	b.ReportAllocs()
	data := corpus()
	b.SetBytes(int64(len(data)))
	buf := new(bytes.Buffer)
	w := zlib.NewWriter(buf)
	w.Write(data)
	w.Close()
	b.ReportMetric(float64(len(data))/float64(buf.Len()), "ratio")
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		w.Reset(io.Discard)
		w.Write(data)
		w.Close()
	}
}

func BenchmarkFlateKlauspost(b *testing.B) {
	b.StopTimer()
	b.ReportAllocs()
	data := corpus()
	b.SetBytes(int64(len(data)))
	buf := new(bytes.Buffer)
	w, err := kpflate.NewWriter(buf, 6)
	if err != nil {
		b.Fatal(err)
	}
	w.Write(data)
	w.Close()
	b.ReportMetric(float64(len(data))/float64(buf.Len()), "ratio")
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		w.Reset(io.Discard)
		w.Write(data)
		w.Close()
	}
}

func BenchmarkSnappy(b *testing.B) {
	b.StopTimer()
	b.ReportAllocs()
	data := corpus()
	b.SetBytes(int64(len(data)))
	buf := new(bytes.Buffer)
	w := snappy.NewBufferedWriter(buf)
	w.Write(data)
	w.Close()
	b.ReportMetric(float64(len(data))/float64(buf.Len()), "ratio")
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		w.Reset(io.Discard)
		w.Write(data)
		w.Close()
	}
}

func BenchmarkLZ4(b *testing.B) {
	b.StopTimer()
	b.ReportAllocs()
	data := corpus()
	b.SetBytes(int64(len(data)))
	buf := new(bytes.Buffer)
	w := lz4.NewWriter(buf)
	w.Write(data)
	w.Close()
	b.ReportMetric(float64(len(data))/float64(buf.Len()), "ratio")
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		w.Reset(io.Discard)
		w.Write(data)
		w.Close()
	}
}
