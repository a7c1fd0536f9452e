package bsor

import (
	"encoding/binary"
	"fmt"
	"io"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// sizeCache avoids the high performance cost of reflection in `binary.Size`
// on every call. Using a global xsync.Map makes it concurrent-safe.
var sizeCache = xsync.NewMap[reflect.Type, int]()

// sizeOf returns the encoded size of the fixed-width type T.
func sizeOf[T any]() int {
	t := reflect.TypeFor[T]()
	if size, ok := sizeCache.Load(t); ok {
		return size
	}
	size := binary.Size(new(T))
	sizeCache.Store(t, size)
	return size
}

// Fixed provides a generic `Codec` implementation for any struct `Payload`
// composed of fixed-size fields. Most replay records (Frame, CutInfo, Wall,
// Height, Pause) are laid out this way, field for field.
//
// Constraint: The `Payload` type MUST NOT contain variable-size fields like slices,
// maps, or strings, as this will cause `binary.Size` to fail.
type Fixed[Payload any] struct {
	Payload Payload
}

// Size returns the fixed size of the struct in bytes.
// The result is cached to avoid reflection overhead on subsequent calls.
func (c *Fixed[Payload]) Size() int {
	return sizeOf[Payload]()
}

// MarshalBinary implements the standard `encoding.BinaryMarshaler` interface.
func (c *Fixed[Payload]) MarshalBinary() ([]byte, error) {
	buf := make([]byte, c.Size())
	if _, err := binary.Encode(buf, Order, &c.Payload); err != nil {
		return nil, io.ErrShortWrite // binary.Encode only returns unexported buffer too small error, it means fewer bytes were written than expected
	}
	return buf, nil
}

// UnmarshalBinary implements the standard `encoding.BinaryUnmarshaler` interface.
// The data must hold exactly one record.
func (c *Fixed[Payload]) UnmarshalBinary(data []byte) error {
	n, err := binary.Decode(data, Order, &c.Payload)
	if err != nil {
		return ErrTruncatedData // binary.Decode always returns unexported buffer too small error, it means the data is truncated
	}
	if len(data) > n {
		return fmt.Errorf("%w: %d bytes after a %d byte record", ErrTrailingData, len(data)-n, n)
	}
	return nil
}

// ReadFrom implements `io.ReaderFrom`, reading directly from a stream into the struct.
func (c *Fixed[Payload]) ReadFrom(r io.Reader) (int64, error) {
	err := binary.Read(r, Order, &c.Payload)
	if err != nil {
		return 0, err
	}
	return int64(c.Size()), nil
}

// WriteTo implements `io.WriterTo`, writing directly to a stream.
func (c *Fixed[Payload]) WriteTo(w io.Writer) (int64, error) {
	err := binary.Write(w, Order, &c.Payload)
	if err != nil {
		return 0, err
	}
	return int64(c.Size()), nil
}

// MarshalTo marshals the struct into the provided slice `p`.
func (c *Fixed[Payload]) MarshalTo(p []byte) (int, error) {
	n, err := binary.Encode(p, Order, &c.Payload)
	if err != nil {
		return n, io.ErrShortWrite // binary.Encode only returns unexported buffer too small error, it means fewer bytes were written than expected
	}
	return n, nil
}

// ReadFixed decodes a fixed-width record at the cursor of r.
func ReadFixed[T any](r *Reader, dest *T) {
	b := r.next(sizeOf[T]())
	if b == nil {
		return
	}
	if _, err := binary.Decode(b, r.order, dest); err != nil {
		r.setError(fmt.Errorf("%w: %v", ErrTruncatedData, err))
	}
}
