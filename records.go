package bsor

// Record codecs for the variable-width records. Fixed-width ones (Frame,
// CutInfo, Wall, Height, Pause) go straight through ReadFixed/WriteFixed.

func decodeInfo(r *Reader, info *Info) {
	r.ReadString(&info.Version)
	r.ReadString(&info.GameVersion)
	r.ReadString(&info.Timestamp)
	r.ReadString(&info.PlayerID)
	r.ReadName(&info.PlayerName)
	r.ReadString(&info.Platform)
	r.ReadString(&info.TrackingSystem)
	r.ReadString(&info.HMD)
	r.ReadString(&info.Controller)
	r.ReadString(&info.Hash)
	r.ReadString(&info.SongName)
	r.ReadString(&info.Mapper)
	r.ReadString(&info.Difficulty)
	r.ReadInt32(&info.Score)
	r.ReadString(&info.Mode)
	r.ReadString(&info.Environment)
	r.ReadString(&info.Modifiers)
	r.ReadFloat32(&info.JumpDistance)
	r.ReadBool(&info.LeftHanded)
	r.ReadFloat32(&info.Height)
	r.ReadFloat32(&info.StartTime)
	r.ReadFloat32(&info.FailTime)
	r.ReadFloat32(&info.Speed)
}

func encodeInfo(w *Writer, info *Info) {
	w.WriteLenString(info.Version)
	w.WriteLenString(info.GameVersion)
	w.WriteLenString(info.Timestamp)
	w.WriteLenString(info.PlayerID)
	w.WriteLenString(info.PlayerName)
	w.WriteLenString(info.Platform)
	w.WriteLenString(info.TrackingSystem)
	w.WriteLenString(info.HMD)
	w.WriteLenString(info.Controller)
	w.WriteLenString(info.Hash)
	w.WriteLenString(info.SongName)
	w.WriteLenString(info.Mapper)
	w.WriteLenString(info.Difficulty)
	w.WriteInt32(info.Score)
	w.WriteLenString(info.Mode)
	w.WriteLenString(info.Environment)
	w.WriteLenString(info.Modifiers)
	w.WriteFloat32(info.JumpDistance)
	w.WriteBool(info.LeftHanded)
	w.WriteFloat32(info.Height)
	w.WriteFloat32(info.StartTime)
	w.WriteFloat32(info.FailTime)
	w.WriteFloat32(info.Speed)
}

// infoText lists the length-prefixed fields of info with their JSON names,
// in wire order.
func infoText(info *Info) []struct{ name, value string } {
	return []struct{ name, value string }{
		{"version", info.Version},
		{"gameVersion", info.GameVersion},
		{"timestamp", info.Timestamp},
		{"playerID", info.PlayerID},
		{"playerName", info.PlayerName},
		{"platform", info.Platform},
		{"trackingSystem", info.TrackingSystem},
		{"hmd", info.HMD},
		{"controller", info.Controller},
		{"hash", info.Hash},
		{"songName", info.SongName},
		{"mapper", info.Mapper},
		{"difficulty", info.Difficulty},
		{"mode", info.Mode},
		{"environment", info.Environment},
		{"modifiers", info.Modifiers},
	}
}

func infoSize(info *Info) int {
	// score + jumpDistance + leftHanded + height, startTime, failTime, speed
	size := 4 + 4 + 1 + 4*4
	for _, f := range infoText(info) {
		size += 4 + len(f.value)
	}
	return size
}

// minNoteSize is a note without CutInfo: id, two times and the event type.
const minNoteSize = 16

func decodeNote(r *Reader, note *Note) {
	r.ReadInt32(&note.NoteID)
	r.ReadFloat32(&note.EventTime)
	r.ReadFloat32(&note.SpawnTime)
	r.ReadInt32(&note.EventType)
	if r.err == nil && note.IsCut() {
		note.CutInfo = new(CutInfo)
		ReadFixed(r, note.CutInfo)
	}
}

// encodeNote writes CutInfo whenever it is set, whatever the event type.
func encodeNote(w *Writer, note *Note) {
	w.WriteInt32(note.NoteID)
	w.WriteFloat32(note.EventTime)
	w.WriteFloat32(note.SpawnTime)
	w.WriteInt32(note.EventType)
	if note.CutInfo != nil {
		WriteFixed(w, note.CutInfo)
	}
}

func noteSize(note *Note) int {
	if note.CutInfo != nil {
		return minNoteSize + sizeOf[CutInfo]()
	}
	return minNoteSize
}

// decodeFrames drops frames stamped at time zero and frames repeating the
// time of the last frame kept.
func decodeFrames(r *Reader) []Frame {
	frames := readFixedList[Frame](r)
	if frames == nil {
		return nil
	}
	kept := frames[:0]
	for _, f := range frames {
		if f.Time == 0 {
			continue
		}
		if len(kept) > 0 && kept[len(kept)-1].Time == f.Time {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}
