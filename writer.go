package bsor

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// sink is the destination a Writer encodes into.
type sink interface {
	io.ByteWriter
	io.StringWriter
	Write(p []byte) (int, error)
	Flush() error
}

// bufferSink lets a bytes.Buffer act as a sink; it has nothing to flush.
type bufferSink struct{ *bytes.Buffer }

func (bufferSink) Flush() error { return nil }

// Writer encodes replay primitives in little-endian order. It counts the
// bytes it writes and latches the first error; after an error every write is
// a no-op, so an encoder can run to the end and check Result once.
type Writer struct {
	w       sink
	count   int64
	err     error
	scratch []byte // reused by WriteFixed
}

// NewWriter is NewWriterSize with bufio's default buffer size.
func NewWriter(w io.Writer) (*Writer, error) {
	return NewWriterSize(w, 0)
}

// NewWriterSize returns a Writer over w. In-memory destinations (BytesWriter,
// bytes.Buffer) are written directly; anything else goes through a
// bufio.Writer of the given size, and nothing reaches w before Flush.
func NewWriterSize(w io.Writer, size int) (*Writer, error) {
	switch dst := w.(type) {
	case nil:
		return nil, ErrNilIO
	case *BytesWriter:
		return &Writer{w: dst}, nil
	case *bytes.Buffer:
		return &Writer{w: bufferSink{dst}}, nil
	}
	return &Writer{w: bufio.NewWriterSize(w, size)}, nil
}

func (w *Writer) Count() int64 { return w.count }
func (w *Writer) Err() error   { return w.err }

// setError records the first non-nil error.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Flush pushes buffered bytes to the destination.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.setError(w.w.Flush())
	return w.err
}

// Result flushes and returns the byte count and the latched error.
func (w *Writer) Result() (int64, error) {
	w.Flush()
	return w.count, w.err
}

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(p)
	w.count += int64(n)
	w.setError(err)
}

func (w *Writer) WriteUint8(v uint8) {
	if w.err != nil {
		return
	}
	if err := w.w.WriteByte(v); err != nil {
		w.setError(err)
		return
	}
	w.count++
}

// WriteBool writes true as 1 and false as 0.
func (w *Writer) WriteBool(v bool) {
	var b uint8
	if v {
		b = 1
	}
	w.WriteUint8(b)
}

func (w *Writer) WriteInt32(v int32) {
	var buf [4]byte
	Order.PutUint32(buf[:], uint32(v))
	w.write(buf[:])
}

func (w *Writer) WriteFloat32(v float32) {
	var buf [4]byte
	Order.PutUint32(buf[:], math.Float32bits(v))
	w.write(buf[:])
}

// WriteLenString writes the int32 byte length of s followed by its bytes.
// Nothing is checked: a string longer than MaxStringLength is written as is,
// and ReadString will not read it back.
func (w *Writer) WriteLenString(s string) {
	w.WriteInt32(int32(len(s)))
	if s == "" || w.err != nil {
		return
	}
	n, err := w.w.WriteString(s)
	w.count += int64(n)
	w.setError(err)
}

// WriteFixed encodes a fixed-width record, field by field in declaration
// order, through w.
func WriteFixed[T any](w *Writer, v *T) {
	if w.err != nil {
		return
	}
	buf, err := binary.Append(w.scratch[:0], Order, v)
	if err != nil {
		w.setError(err)
		return
	}
	w.scratch = buf
	w.write(buf)
}
