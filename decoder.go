package bsor

import (
	"bytes"
	"fmt"
	"io"
)

// Decoder decodes replays. The zero value is ready to use.
type Decoder struct {
	// Strict requires all SectionCount entries to be present, the way
	// recorders write them. Without it decoding also stops cleanly when the
	// buffer ends on an entry boundary, so replays with fewer sections decode.
	Strict bool
}

// Decode decodes a replay with the default Decoder.
func Decode(data []byte) (*Replay, error) {
	var d Decoder
	return d.Decode(data)
}

// Decode decodes data into a new Replay. On failure it returns a
// *DecodeError and no replay.
//
// Truncated input always fails with ErrTruncatedData, and a tag outside
// 0..5 fails with ErrUnknownSection, since nothing after it can be delimited.
// A repeated tag replaces the section read earlier. Bytes after the last
// entry are ignored.
func (d *Decoder) Decode(data []byte) (*Replay, error) {
	r := NewReader(data)

	var h Header
	ReadFixed(r, &h)
	if err := r.Err(); err != nil {
		return nil, &DecodeError{Offset: 0, Entry: -1, Err: err}
	}
	if err := h.valid(); err != nil {
		return nil, &DecodeError{Offset: 0, Entry: -1, Err: err}
	}

	replay := &Replay{}
	for entry := 0; entry < SectionCount; entry++ {
		if !d.Strict && r.Len() == 0 {
			break
		}
		start := r.Offset()
		var tag uint8
		r.ReadUint8(&tag)
		section := Section(tag)
		if r.Err() == nil {
			decodeSection(r, replay, section)
		}
		if err := r.Err(); err != nil {
			return nil, &DecodeError{Offset: start, Entry: entry, Section: section, Err: err}
		}
	}
	return replay, nil
}

func decodeSection(r *Reader, replay *Replay, s Section) {
	switch s {
	case SectionInfo:
		info := new(Info)
		decodeInfo(r, info)
		replay.Info = info
	case SectionFrames:
		replay.Frames = decodeFrames(r)
	case SectionNotes:
		replay.Notes = readList(r, minNoteSize, decodeNote)
	case SectionWalls:
		replay.Walls = readFixedList[Wall](r)
	case SectionHeights:
		replay.Heights = readFixedList[Height](r)
	case SectionPauses:
		replay.Pauses = readFixedList[Pause](r)
	default:
		r.setError(fmt.Errorf("%w: %d", ErrUnknownSection, uint8(s)))
	}
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler with the default
// Decoder. On failure rp is left unchanged.
func (rp *Replay) UnmarshalBinary(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*rp = *decoded
	return nil
}

// ReadFrom reads r to the end and decodes what it read. It does not
// stream: the whole replay is held in a pooled buffer first.
func (rp *Replay) ReadFrom(r io.Reader) (int64, error) {
	buf := bytesBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bytesBufPool.Put(buf)

	n, err := buf.ReadFrom(r)
	if err != nil {
		return n, err
	}
	return n, rp.UnmarshalBinary(buf.Bytes())
}
