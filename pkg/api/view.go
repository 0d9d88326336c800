package api

import (
	"fmt"

	"github.com/Garik-/smf/pkg/midi"
)

type FileView struct {
	Format              string      `json:"format"`
	TrackCount          uint16      `json:"trackCount"`
	Division            string      `json:"division"`
	TicksPerQuarterNote uint16      `json:"ticksPerQuarterNote,omitempty"`
	Tracks              []TrackView `json:"tracks"`
}

type TrackView struct {
	Index  int         `json:"index"`
	Name   string      `json:"name,omitempty"`
	Events int         `json:"events"`
	Notes  int         `json:"notes"`
	Ticks  uint64      `json:"ticks"`
	List   []EventView `json:"list,omitempty"`
}

type EventView struct {
	Delta  uint32 `json:"delta"`
	Tick   uint64 `json:"tick"`
	Offset int64  `json:"offset"`
	Type   string `json:"type"`
	Text   string `json:"text"`
}

// NewFileView summarizes f. Individual events are listed only when
// withEvents is set.
func NewFileView(f *midi.File, withEvents bool) FileView {
	v := FileView{
		Format:     f.Header.Format.String(),
		TrackCount: f.Header.TrackCount,
		Division:   f.Header.Division.String(),
		Tracks:     make([]TrackView, 0, len(f.Tracks)),
	}
	if ppq, err := f.Header.TicksPerQuarterNote(); err == nil {
		v.TicksPerQuarterNote = ppq
	}

	for i, track := range f.Tracks {
		tv := TrackView{Index: i, Name: track.Name(), Events: len(track.Events)}
		ticks := track.AbsoluteTicks()
		if len(ticks) > 0 {
			tv.Ticks = ticks[len(ticks)-1]
		}

		for j, e := range track.Events {
			if m, ok := e.Event.(midi.ChannelMessage); ok && m.Kind == midi.NoteOn && m.Velocity() > 0 {
				tv.Notes++
			}
			if withEvents {
				tv.List = append(tv.List, EventView{
					Delta:  e.Delta,
					Tick:   ticks[j],
					Offset: e.Offset,
					Type:   TypeName(e.Event),
					Text:   Describe(e.Event),
				})
			}
		}
		v.Tracks = append(v.Tracks, tv)
	}

	return v
}

func TypeName(e midi.Event) string {
	switch ev := e.(type) {
	case midi.ChannelMessage:
		return ev.Kind.String()
	case midi.SysEx:
		return "SysEx"
	case midi.UnknownMeta:
		return fmt.Sprintf("Meta(%#02x)", ev.Type)
	}
	return fmt.Sprintf("%T", e)[len("midi."):]
}

// Describe renders the fields of an event on one line.
func Describe(e midi.Event) string {
	switch ev := e.(type) {
	case midi.ChannelMessage:
		switch ev.Kind {
		case midi.NoteOn, midi.NoteOff:
			return fmt.Sprintf("ch=%d note=%d velocity=%d", ev.Channel, ev.Note(), ev.Velocity())
		case midi.PolyPressure:
			return fmt.Sprintf("ch=%d note=%d pressure=%d", ev.Channel, ev.Note(), ev.Pressure())
		case midi.ControlChange:
			return fmt.Sprintf("ch=%d controller=%d value=%d", ev.Channel, ev.Controller(), ev.Value())
		case midi.ProgramChange:
			return fmt.Sprintf("ch=%d program=%d", ev.Channel, ev.Program())
		case midi.ChannelPressure:
			return fmt.Sprintf("ch=%d pressure=%d", ev.Channel, ev.Pressure())
		case midi.PitchBend:
			return fmt.Sprintf("ch=%d bend=%d", ev.Channel, ev.PitchBend())
		}
	case midi.SysEx:
		return fmt.Sprintf("% x", ev.Data)
	case midi.SequenceNumber:
		if !ev.Present {
			return "default"
		}
		return fmt.Sprintf("%d", ev.Number)
	case midi.Text:
		return fmt.Sprintf("%q", ev.Data)
	case midi.Copyright:
		return fmt.Sprintf("%q", ev.Data)
	case midi.TrackName:
		return fmt.Sprintf("%q", ev.Data)
	case midi.InstrumentName:
		return fmt.Sprintf("%q", ev.Data)
	case midi.Lyric:
		return fmt.Sprintf("%q", ev.Data)
	case midi.Marker:
		return fmt.Sprintf("%q", ev.Data)
	case midi.CuePoint:
		return fmt.Sprintf("%q", ev.Data)
	case midi.ChannelPrefix:
		return fmt.Sprintf("ch=%d", ev.Channel)
	case midi.Port:
		return fmt.Sprintf("port=%d", ev.Port)
	case midi.EndOfTrack:
		return ""
	case midi.SetTempo:
		return fmt.Sprintf("%dus/quarter (%.2f bpm)", ev.MicrosecondsPerQuarter, ev.BPM())
	case midi.SMPTEOffset:
		return fmt.Sprintf("%02d:%02d:%02d:%02d.%02d", ev.Hour, ev.Minute, ev.Second, ev.Frame, ev.Subframe)
	case midi.TimeSignature:
		return fmt.Sprintf("%d/%d clocks=%d 32nds=%d", ev.Numerator, ev.Denominator(), ev.ClocksPerClick, ev.ThirtySecondsPerQuarter)
	case midi.KeySignature:
		mode := "major"
		if ev.Minor {
			mode = "minor"
		}
		return fmt.Sprintf("accidentals=%d %s", ev.Accidentals, mode)
	case midi.SequencerSpecific:
		return fmt.Sprintf("% x", ev.Data)
	case midi.UnknownMeta:
		return fmt.Sprintf("% x", ev.Data)
	}
	return ""
}
