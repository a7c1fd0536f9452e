package bsor

import "fmt"

const (
	// Magic opens every replay.
	Magic uint32 = 0x442d3d69
	// Version is the only format version there is.
	Version uint8 = 1

	headerSize = 5
)

// Header is the fixed prefix of a replay.
type Header struct {
	Magic   uint32
	Version uint8
}

func (h Header) valid() error {
	if h.Magic != Magic {
		return fmt.Errorf("%w: got 0x%08x", ErrBadMagic, h.Magic)
	}
	if h.Version != Version {
		return fmt.Errorf("%w: got %d", ErrUnsupportedVersion, h.Version)
	}
	return nil
}
