package bsor

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Reader decodes primitives from a byte buffer that is fully resident in
// memory. It tracks the cursor and the first error; after an error every
// read is a no-op and the destination is left untouched.
type Reader struct {
	buf   []byte
	pos   int   // cursor
	err   error // first error encountered.
	order binary.ByteOrder
}

var (
	_ io.Reader     = (*Reader)(nil)
	_ io.ByteReader = (*Reader)(nil)
	_ io.Seeker     = (*Reader)(nil)
)

// NewReader creates a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf, order: Order}
}

func (r *Reader) Offset() int { return r.pos }
func (r *Reader) Size() int   { return len(r.buf) }
func (r *Reader) Err() error  { return r.err }

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	if r.pos >= len(r.buf) {
		return 0
	}
	return len(r.buf) - r.pos
}

// Result returns the cursor and the final error state.
func (r *Reader) Result() (int, error) {
	return r.pos, r.err
}

// setError records the first non-nil error.
func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *Reader) truncated(need, at int) {
	have := len(r.buf) - at
	if have < 0 {
		have = 0
	}
	r.setError(fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncatedData, need, at, have))
}

// next returns the next n bytes and advances the cursor past them.
func (r *Reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > r.Len() {
		r.truncated(n, r.pos)
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

// int32At reads an int32 at an absolute offset without moving the cursor.
func (r *Reader) int32At(off int) (int32, bool) {
	if off < 0 || off > len(r.buf)-4 {
		return 0, false
	}
	return int32(r.order.Uint32(r.buf[off:])), true
}

// Read implements the io.Reader interface.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.Len() == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.buf[r.pos:])
	r.pos += n
	return n, nil
}

// Seek implements the [io.Seeker] interface. Seeking clears nothing: a
// latched error stays latched.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(r.pos) + offset
	case io.SeekEnd:
		abs = int64(len(r.buf)) + offset
	default:
		return int64(r.pos), ErrInvalidWhence
	}
	if abs < 0 {
		return int64(r.pos), ErrInvalidSeek
	}
	r.pos = int(abs)
	return abs, nil
}

// ReadBytes reads n bytes and returns a slice aliasing the buffer.
func (r *Reader) ReadBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	return r.next(n)
}

// --- Primitive Read Operations ---

// read decodes one fixed-width scalar with conv and stores it in dest.
func read[T scalar](r *Reader, dest *T, width int, conv func([]byte) T) {
	if b := r.next(width); b != nil {
		*dest = conv(b)
	}
}

func (r *Reader) ReadByte() (byte, error) {
	var b byte
	r.ReadUint8(&b)
	return b, r.err
}

func (r *Reader) ReadBool(dest *bool) {
	if b := r.next(1); b != nil {
		*dest = b[0] != 0
	}
}

func (r *Reader) ReadUint8(dest *uint8) {
	read(r, dest, 1, func(b []byte) uint8 { return b[0] })
}

func (r *Reader) ReadInt32(dest *int32) {
	read(r, dest, 4, func(b []byte) int32 { return int32(r.order.Uint32(b)) })
}

func (r *Reader) ReadInt64(dest *int64) {
	read(r, dest, 8, func(b []byte) int64 { return int64(r.order.Uint64(b)) })
}

func (r *Reader) ReadFloat32(dest *float32) {
	read(r, dest, 4, func(b []byte) float32 { return math.Float32frombits(r.order.Uint32(b)) })
}

// --- String Read Operations ---

// ReadString reads an int32 length prefix followed by that many bytes.
//
// A prefix outside [0, MaxStringLength] means the cursor is not on a string:
// the cursor moves forward one byte and the prefix is read again, until a
// plausible length turns up or fewer than four bytes remain. Recorded files
// rely on this exact one-byte shift. The bytes are kept verbatim, invalid
// UTF-8 included.
func (r *Reader) ReadString(dest *string) {
	if r.err != nil {
		return
	}
	for {
		n, ok := r.int32At(r.pos)
		if !ok {
			r.truncated(4, r.pos)
			return
		}
		if n >= 0 && n <= MaxStringLength {
			r.pos += 4
			if b := r.next(int(n)); b != nil {
				*dest = string(b)
			}
			return
		}
		r.pos++
	}
}

// ReadName reads the player name, whose length prefix some recorders write
// too short. From the nominal end of a non-empty name it reads an int32 at
// each following byte until one of nameBoundaryLengths shows up, and folds
// the skipped bytes into the name. The cursor ends on that length.
//
// A prefix <= 0 yields an empty name and moves the cursor by 4+n bytes, never
// back past the prefix, so a prefix of -1 leaves it three bytes on.
func (r *Reader) ReadName(dest *string) {
	if r.err != nil {
		return
	}
	n, ok := r.int32At(r.pos)
	if !ok {
		r.truncated(4, r.pos)
		return
	}
	if n <= 0 {
		*dest = ""
		r.pos += int(max(4+n, 0))
		return
	}
	start := r.pos + 4
	end := start + int(n)
	for {
		v, ok := r.int32At(end)
		if !ok {
			r.truncated(4, end)
			return
		}
		if isNameBoundary(v) {
			break
		}
		end++
	}
	*dest = string(r.buf[start:end])
	r.pos = end
}
