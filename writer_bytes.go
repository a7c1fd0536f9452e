package bsor

import "io"

// BytesWriter writes into a caller-owned slice and never grows it. A write
// that does not fit stores what it can and fails with io.ErrShortWrite;
// MarshalTo relies on this to report a short buffer.
type BytesWriter struct {
	B []byte // destination
	N int    // bytes written
}

func NewBytesWriter(p []byte) *BytesWriter {
	return &BytesWriter{B: p}
}

func (w *BytesWriter) Write(p []byte) (int, error) {
	n := copy(w.B[w.N:], p)
	w.N += n
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (w *BytesWriter) WriteString(s string) (int, error) {
	n := copy(w.B[w.N:], s)
	w.N += n
	if n < len(s) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (w *BytesWriter) WriteByte(c byte) error {
	if w.N >= len(w.B) {
		return io.ErrShortWrite
	}
	w.B[w.N] = c
	w.N++
	return nil
}

func (w *BytesWriter) Flush() error { return nil }

// Reset rewinds to the start of the slice.
func (w *BytesWriter) Reset() { w.N = 0 }

// Bytes returns the written prefix of the slice.
func (w *BytesWriter) Bytes() []byte { return w.B[:w.N] }
