package bsor

import "io"

// Encode encodes replay into a new buffer of exactly replay.Size() bytes.
// Only the present sections are written, in tag order. Nothing is
// validated; see Replay.Validate.
func Encode(replay *Replay) ([]byte, error) {
	return replay.MarshalBinary()
}

// Size returns the encoded size of rp in bytes.
func (rp *Replay) Size() int {
	size := headerSize
	for _, s := range rp.Sections() {
		size += 1 + sectionSize(rp, s)
	}
	return size
}

func sectionSize(rp *Replay, s Section) int {
	switch s {
	case SectionInfo:
		return infoSize(rp.Info)
	case SectionFrames:
		return fixedListSize(rp.Frames)
	case SectionNotes:
		return listSize(rp.Notes, noteSize)
	case SectionWalls:
		return fixedListSize(rp.Walls)
	case SectionHeights:
		return fixedListSize(rp.Heights)
	case SectionPauses:
		return fixedListSize(rp.Pauses)
	}
	return 0
}

// encodeSection writes the tag of s followed by its payload.
func encodeSection(w *Writer, rp *Replay, s Section) {
	w.WriteUint8(uint8(s))
	switch s {
	case SectionInfo:
		encodeInfo(w, rp.Info)
	case SectionFrames:
		writeFixedList(w, rp.Frames)
	case SectionNotes:
		writeList(w, rp.Notes, encodeNote)
	case SectionWalls:
		writeFixedList(w, rp.Walls)
	case SectionHeights:
		writeFixedList(w, rp.Heights)
	case SectionPauses:
		writeFixedList(w, rp.Pauses)
	}
}

// WriteTo implements io.WriterTo.
func (rp *Replay) WriteTo(dst io.Writer) (int64, error) {
	if dst == nil {
		return 0, ErrWriteToNil
	}
	w, err := NewWriter(dst)
	if err != nil {
		return 0, err
	}
	WriteFixed(w, &Header{Magic: Magic, Version: Version})
	for _, s := range rp.Sections() {
		encodeSection(w, rp, s)
	}
	return w.Result()
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (rp *Replay) MarshalBinary() ([]byte, error) {
	buf := make([]byte, rp.Size())
	if _, err := rp.MarshalTo(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// MarshalTo encodes rp into the front of buf and fails with
// io.ErrShortWrite, writing nothing, when buf is shorter than rp.Size().
func (rp *Replay) MarshalTo(buf []byte) (int, error) {
	size := rp.Size()
	if len(buf) < size {
		return 0, io.ErrShortWrite
	}
	n, err := rp.WriteTo(NewBytesWriter(buf[:size]))
	return int(n), err
}
