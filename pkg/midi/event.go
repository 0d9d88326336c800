package midi

import "fmt"

// Event is one of MetaEvent, ChannelMessage or SysEx.
type Event interface {
	isEvent()
}

type TimedEvent struct {
	Delta uint32
	Event Event

	// Offset is the absolute file offset of the first byte after the
	// delta time: the status byte, or the first data byte when the event
	// uses running status.
	Offset        int64
	RunningStatus bool
}

// DataOffset returns the absolute file offset of the first byte after the
// status byte.
func (e TimedEvent) DataOffset() int64 {
	if e.RunningStatus {
		return e.Offset
	}
	return e.Offset + 1
}

type Track struct {
	Events []TimedEvent
}

// AbsoluteTicks returns the tick at which each event occurs, measured
// from the start of the track.
func (t *Track) AbsoluteTicks() []uint64 {
	ticks := make([]uint64, len(t.Events))
	var abs uint64
	for i, e := range t.Events {
		abs += uint64(e.Delta)
		ticks[i] = abs
	}
	return ticks
}

// Name returns the text of the first TrackName event.
func (t *Track) Name() string {
	for _, e := range t.Events {
		if name, ok := e.Event.(TrackName); ok {
			return string(name.Data)
		}
	}
	return ""
}

type File struct {
	Header Header
	Tracks []*Track
}

type Kind uint8

const (
	NoteOff         Kind = 0x8
	NoteOn          Kind = 0x9
	PolyPressure    Kind = 0xA
	ControlChange   Kind = 0xB
	ProgramChange   Kind = 0xC
	ChannelPressure Kind = 0xD
	PitchBend       Kind = 0xE
)

var kindNames = map[Kind]string{
	NoteOff:         "NoteOff",
	NoteOn:          "NoteOn",
	PolyPressure:    "PolyPressure",
	ControlChange:   "ControlChange",
	ProgramChange:   "ProgramChange",
	ChannelPressure: "ChannelPressure",
	PitchBend:       "PitchBend",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%#x)", uint8(k))
}

// dataLen is the number of data bytes following the status byte.
func (k Kind) dataLen() int {
	switch k {
	case ProgramChange, ChannelPressure:
		return 1
	}
	return 2
}

// ChannelMessage is a channel voice message. Data2 is zero for kinds that
// carry a single data byte.
type ChannelMessage struct {
	Kind    Kind
	Channel uint8
	Data1   uint8
	Data2   uint8
}

func (ChannelMessage) isEvent() {}

func (m ChannelMessage) Note() uint8       { return m.Data1 }
func (m ChannelMessage) Velocity() uint8   { return m.Data2 }
func (m ChannelMessage) Controller() uint8 { return m.Data1 }
func (m ChannelMessage) Value() uint8      { return m.Data2 }
func (m ChannelMessage) Program() uint8    { return m.Data1 }

// Pressure returns the pressure of a ChannelPressure or PolyPressure message.
func (m ChannelMessage) Pressure() uint8 {
	if m.Kind == PolyPressure {
		return m.Data2
	}
	return m.Data1
}

// PitchBend returns the 14 bit bend value, 8192 being the center.
func (m ChannelMessage) PitchBend() uint16 {
	return uint16(m.Data2)<<7 | uint16(m.Data1)
}

// SysEx is an opaque system exclusive payload. A trailing 0xF7, if
// present, is part of Data.
type SysEx struct {
	Data []byte
}

func (SysEx) isEvent() {}
