package bsor

import "encoding/json"

// replayJSON keeps absent sections out of the JSON text while still telling
// an empty section ([]) from a missing one.
type replayJSON struct {
	Info    *Info     `json:"info,omitempty"`
	Frames  *[]Frame  `json:"frames,omitempty"`
	Notes   *[]Note   `json:"notes,omitempty"`
	Walls   *[]Wall   `json:"walls,omitempty"`
	Heights *[]Height `json:"heights,omitempty"`
	Pauses  *[]Pause  `json:"pauses,omitempty"`
}

func present[T any](s []T) *[]T {
	if s == nil {
		return nil
	}
	return &s
}

func deref[T any](p *[]T) []T {
	if p == nil {
		return nil
	}
	if *p == nil {
		return []T{}
	}
	return *p
}

// MarshalJSON renders the replay with the recorder's camelCase key names;
// absent sections are left out.
func (rp *Replay) MarshalJSON() ([]byte, error) {
	return json.Marshal(replayJSON{
		Info:    rp.Info,
		Frames:  present(rp.Frames),
		Notes:   present(rp.Notes),
		Walls:   present(rp.Walls),
		Heights: present(rp.Heights),
		Pauses:  present(rp.Pauses),
	})
}

// UnmarshalJSON is the inverse of MarshalJSON. A key that is missing or null
// leaves its section absent.
func (rp *Replay) UnmarshalJSON(data []byte) error {
	var v replayJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*rp = Replay{
		Info:    v.Info,
		Frames:  deref(v.Frames),
		Notes:   deref(v.Notes),
		Walls:   deref(v.Walls),
		Heights: deref(v.Heights),
		Pauses:  deref(v.Pauses),
	}
	return nil
}
