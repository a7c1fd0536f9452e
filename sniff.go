package bsor

import (
	"errors"
	"io"
)

// PeekableReader is a reader that allows peeking ahead at the underlying data stream.
type PeekableReader struct {
	R io.Reader // The underlying reader.
	B []byte    // The buffer for peeked data.
}

// PeekReader returns a PeekableReader. If the given reader is already a
// PeekableReader, it is returned directly.
func PeekReader(r io.Reader) *PeekableReader {
	if pr, ok := r.(*PeekableReader); ok {
		return pr
	}
	return &PeekableReader{R: r}
}

// Peek returns up to the next n bytes without advancing the reader. Fewer
// than n bytes come back together with the error that stopped the read.
func (r *PeekableReader) Peek(n int) ([]byte, error) {
	if len(r.B) >= n {
		return r.B[:n], nil
	}

	i := len(r.B)
	r.B = append(r.B, make([]byte, n-i)...)

	var err error
	for i < n {
		read, er := r.R.Read(r.B[i:])
		i += read
		if er != nil {
			err = er
			break
		}
	}
	r.B = r.B[:i]
	return r.B, err
}

// Read reads data into p. It first drains the peeked buffer and then
// reads from the underlying reader.
func (r *PeekableReader) Read(p []byte) (n int, err error) {
	n = copy(p, r.B)
	r.B = r.B[n:]
	if n == len(p) {
		return n, nil
	}
	read, err := r.R.Read(p[n:])
	return n + read, err
}

// Sniff reports whether the stream starts with a BSOR header. The returned
// reader yields the whole stream, sniffed bytes included.
func Sniff(r io.Reader) (io.Reader, bool, error) {
	pr := PeekReader(r)
	b, err := pr.Peek(headerSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return pr, false, err
	}
	if len(b) < headerSize {
		return pr, false, nil
	}
	var h Fixed[Header]
	if err := h.UnmarshalBinary(b); err != nil {
		return pr, false, err
	}
	return pr, h.Payload.valid() == nil, nil
}
