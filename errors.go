package bsor

import (
	"errors"
	"fmt"
)

var (
	// ErrNilIO indicates that NewWriter was called with a nil io.Writer.
	ErrNilIO = errors.New("bsor: NewWriter called with a nil io.Writer")

	// ErrWriteToNil indicates a WriteTo operation was attempted on a nil io.Writer.
	ErrWriteToNil = errors.New("bsor: WriteTo called with a nil io.Writer")

	// ErrInvalidSeek indicates a seek was attempted to invalid position.
	ErrInvalidSeek = errors.New("bsor: seek to a invalid position")

	// ErrInvalidWhence indicates that an invalid 'whence' parameter was provided to a Seek operation.
	ErrInvalidWhence = errors.New("bsor: unsupported whence")

	// ErrTrailingData is returned when bytes remain after a fixed-width record.
	ErrTrailingData = errors.New("bsor: trailing data found after decoding")

	// ErrTruncatedData indicates that a read ran past the end of the buffer.
	ErrTruncatedData = errors.New("bsor: truncated data")

	// ErrBadMagic indicates the buffer does not start with the replay magic number.
	ErrBadMagic = errors.New("bsor: bad magic number")

	// ErrUnsupportedVersion indicates a replay version other than Version.
	ErrUnsupportedVersion = errors.New("bsor: unsupported version")

	// ErrUnknownSection indicates a section tag outside 0..5.
	ErrUnknownSection = errors.New("bsor: unknown section tag")

	// Validation errors, reported by Replay.Validate.
	ErrStringTooLong   = errors.New("bsor: string longer than the decoder accepts")
	ErrNameBoundary    = errors.New("bsor: platform length does not terminate the player name")
	ErrCutInfoMismatch = errors.New("bsor: cut info presence does not match event type")
	ErrMissingSection  = errors.New("bsor: section missing")
)

// DecodeError reports where decoding stopped. Offset is where the failing
// entry starts. Entry is the index of that entry, or -1 while reading the
// header. Section is the entry's tag; it is zero when the tag itself could
// not be read.
type DecodeError struct {
	Offset  int
	Entry   int
	Section Section
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Entry < 0 {
		return fmt.Sprintf("bsor: decode header at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("bsor: decode %s (entry %d) at offset %d: %v", e.Section, e.Entry, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
