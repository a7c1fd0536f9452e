package bsor

import "fmt"

// Section identifies one tagged block of a replay. The value is the tag
// byte written before the block.
type Section uint8

const (
	SectionInfo Section = iota
	SectionFrames
	SectionNotes
	SectionWalls
	SectionHeights
	SectionPauses
)

// SectionCount is the number of section kinds, and the number of entries a
// complete replay carries.
const SectionCount = 6

var sectionNames = [SectionCount]string{"info", "frames", "notes", "walls", "heights", "pauses"}

func (s Section) String() string {
	if int(s) < SectionCount {
		return sectionNames[s]
	}
	return fmt.Sprintf("section(%d)", uint8(s))
}

// Replay is a decoded recording. A nil Info or a nil slice means the
// section is absent; a present section with no entries is an empty slice.
type Replay struct {
	Info    *Info
	Frames  []Frame
	Notes   []Note
	Walls   []Wall
	Heights []Height
	Pauses  []Pause
}

// Has reports whether section s is present.
func (rp *Replay) Has(s Section) bool {
	switch s {
	case SectionInfo:
		return rp.Info != nil
	case SectionFrames:
		return rp.Frames != nil
	case SectionNotes:
		return rp.Notes != nil
	case SectionWalls:
		return rp.Walls != nil
	case SectionHeights:
		return rp.Heights != nil
	case SectionPauses:
		return rp.Pauses != nil
	}
	return false
}

// Sections returns the present sections in tag order, which is also the
// order Encode writes them in.
func (rp *Replay) Sections() []Section {
	sections := make([]Section, 0, SectionCount)
	for s := SectionInfo; s < SectionCount; s++ {
		if rp.Has(s) {
			sections = append(sections, s)
		}
	}
	return sections
}

// Info is the session metadata. Fields are listed in wire order.
type Info struct {
	Version        string  `json:"version"`
	GameVersion    string  `json:"gameVersion"`
	Timestamp      string  `json:"timestamp"`
	PlayerID       string  `json:"playerID"`
	PlayerName     string  `json:"playerName"`
	Platform       string  `json:"platform"`
	TrackingSystem string  `json:"trackingSystem"`
	HMD            string  `json:"hmd"`
	Controller     string  `json:"controller"`
	Hash           string  `json:"hash"`
	SongName       string  `json:"songName"`
	Mapper         string  `json:"mapper"`
	Difficulty     string  `json:"difficulty"`
	Score          int32   `json:"score"`
	Mode           string  `json:"mode"`
	Environment    string  `json:"environment"`
	Modifiers      string  `json:"modifiers"`
	JumpDistance   float32 `json:"jumpDistance"`
	LeftHanded     bool    `json:"leftHanded"`
	Height         float32 `json:"height"`
	StartTime      float32 `json:"startTime"`
	FailTime       float32 `json:"failTime"`
	Speed          float32 `json:"speed"`
}

type Vector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

type Quaternion struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

// Euler is a tracked pose.
type Euler struct {
	Position Vector3    `json:"position"`
	Rotation Quaternion `json:"rotation"`
}

// Frame is one motion sample of the headset and both controllers.
type Frame struct {
	Time  float32 `json:"time"`
	FPS   int32   `json:"fps"`
	Head  Euler   `json:"head"`
	Left  Euler   `json:"left"`
	Right Euler   `json:"right"`
}

// Note event types. Only cuts carry a CutInfo on the wire.
const (
	NoteGood int32 = iota
	NoteBad
	NoteMiss
	NoteBomb
)

// Note is a scored note event.
type Note struct {
	NoteID    int32    `json:"noteID"`
	EventTime float32  `json:"eventTime"`
	SpawnTime float32  `json:"spawnTime"`
	EventType int32    `json:"eventType"`
	CutInfo   *CutInfo `json:"noteCutInfo,omitempty"`
}

// IsCut reports whether the event type is one that carries a CutInfo.
func (n *Note) IsCut() bool {
	return n.EventType == NoteGood || n.EventType == NoteBad
}

// CutInfo describes how a note was cut.
type CutInfo struct {
	SpeedOK             bool    `json:"speedOK"`
	DirectionOK         bool    `json:"directionOK"`
	SaberTypeOK         bool    `json:"saberTypeOK"`
	WasCutTooSoon       bool    `json:"wasCutTooSoon"`
	SaberSpeed          float32 `json:"saberSpeed"`
	SaberDir            Vector3 `json:"saberDir"`
	SaberType           int32   `json:"saberType"`
	TimeDeviation       float32 `json:"timeDeviation"`
	CutDirDeviation     float32 `json:"cutDirDeviation"`
	CutPoint            Vector3 `json:"cutPoint"`
	CutNormal           Vector3 `json:"cutNormal"`
	CutDistanceToCenter float32 `json:"cutDistanceToCenter"`
	CutAngle            float32 `json:"cutAngle"`
	BeforeCutRating     float32 `json:"beforeCutRating"`
	AfterCutRating      float32 `json:"afterCutRating"`
}

// Wall is an obstacle interaction.
type Wall struct {
	WallID    int32   `json:"wallID"`
	Energy    float32 `json:"energy"`
	Time      float32 `json:"time"`
	SpawnTime float32 `json:"spawnTime"`
}

// Height is a change of the player's height.
type Height struct {
	Height float32 `json:"height"`
	Time   float32 `json:"time"`
}

// Pause is a pause interval. Duration is in timer ticks.
type Pause struct {
	Duration int64   `json:"duration"`
	Time     float32 `json:"time"`
}
