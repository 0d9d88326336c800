package midi

import "encoding/binary"

const (
	MetaSequenceNumber    = 0x00
	MetaText              = 0x01
	MetaCopyright         = 0x02
	MetaTrackName         = 0x03
	MetaInstrumentName    = 0x04
	MetaLyric             = 0x05
	MetaMarker            = 0x06
	MetaCuePoint          = 0x07
	MetaChannelPrefix     = 0x20
	MetaPort              = 0x21
	MetaEndOfTrack        = 0x2F
	MetaSetTempo          = 0x51
	MetaSMPTEOffset       = 0x54
	MetaTimeSignature     = 0x58
	MetaKeySignature      = 0x59
	MetaSequencerSpecific = 0x7F
)

// MetaEvent is implemented by every 0xFF event variant.
type MetaEvent interface {
	Event
	MetaType() uint8
}

// SequenceNumber with Present false has an empty payload, meaning the
// sequence number defaults to the track position.
type SequenceNumber struct {
	Number  uint16
	Present bool
}

type Text struct{ Data []byte }
type Copyright struct{ Data []byte }
type TrackName struct{ Data []byte }
type InstrumentName struct{ Data []byte }
type Lyric struct{ Data []byte }
type Marker struct{ Data []byte }
type CuePoint struct{ Data []byte }

type ChannelPrefix struct{ Channel uint8 }
type Port struct{ Port uint8 }

type EndOfTrack struct{}

// SetTempo holds microseconds per quarter note.
type SetTempo struct{ MicrosecondsPerQuarter uint32 }

type SMPTEOffset struct {
	Hour, Minute, Second, Frame, Subframe uint8
}

// TimeSignature stores the denominator as a power of two exponent, as it
// appears in the file.
type TimeSignature struct {
	Numerator               uint8
	DenominatorPower        uint8
	ClocksPerClick          uint8
	ThirtySecondsPerQuarter uint8
}

// KeySignature has negative Accidentals for flats and positive for sharps.
type KeySignature struct {
	Accidentals int8
	Minor       bool
}

type SequencerSpecific struct{ Data []byte }

// UnknownMeta keeps meta events of types this package does not decode.
type UnknownMeta struct {
	Type uint8
	Data []byte
}

func (SequenceNumber) isEvent()    {}
func (Text) isEvent()              {}
func (Copyright) isEvent()         {}
func (TrackName) isEvent()         {}
func (InstrumentName) isEvent()    {}
func (Lyric) isEvent()             {}
func (Marker) isEvent()            {}
func (CuePoint) isEvent()          {}
func (ChannelPrefix) isEvent()     {}
func (Port) isEvent()              {}
func (EndOfTrack) isEvent()        {}
func (SetTempo) isEvent()          {}
func (SMPTEOffset) isEvent()       {}
func (TimeSignature) isEvent()     {}
func (KeySignature) isEvent()      {}
func (SequencerSpecific) isEvent() {}
func (UnknownMeta) isEvent()       {}

func (SequenceNumber) MetaType() uint8    { return MetaSequenceNumber }
func (Text) MetaType() uint8              { return MetaText }
func (Copyright) MetaType() uint8         { return MetaCopyright }
func (TrackName) MetaType() uint8         { return MetaTrackName }
func (InstrumentName) MetaType() uint8    { return MetaInstrumentName }
func (Lyric) MetaType() uint8             { return MetaLyric }
func (Marker) MetaType() uint8            { return MetaMarker }
func (CuePoint) MetaType() uint8          { return MetaCuePoint }
func (ChannelPrefix) MetaType() uint8     { return MetaChannelPrefix }
func (Port) MetaType() uint8              { return MetaPort }
func (EndOfTrack) MetaType() uint8        { return MetaEndOfTrack }
func (SetTempo) MetaType() uint8          { return MetaSetTempo }
func (SMPTEOffset) MetaType() uint8       { return MetaSMPTEOffset }
func (TimeSignature) MetaType() uint8     { return MetaTimeSignature }
func (KeySignature) MetaType() uint8      { return MetaKeySignature }
func (SequencerSpecific) MetaType() uint8 { return MetaSequencerSpecific }
func (m UnknownMeta) MetaType() uint8     { return m.Type }

// BPM converts the tempo to quarter notes per minute.
func (t SetTempo) BPM() float64 {
	if t.MicrosecondsPerQuarter == 0 {
		return 0
	}
	return 60000000 / float64(t.MicrosecondsPerQuarter)
}

func (t TimeSignature) Denominator() int {
	return 1 << t.DenominatorPower
}

// fixed payload sizes; longer payloads are accepted and the rest ignored.
var metaSizes = map[uint8]int{
	MetaChannelPrefix: 1,
	MetaPort:          1,
	MetaSetTempo:      3,
	MetaSMPTEOffset:   5,
	MetaTimeSignature: 4,
	MetaKeySignature:  2,
}

// decodeMeta decodes the event following a consumed 0xFF status byte.
func decodeMeta(c *cursor) (MetaEvent, error) {
	typ, err := c.readByte()
	if err != nil {
		return nil, err
	}

	lengthAt := c.offset()
	length, err := c.varLen()
	if err != nil {
		return nil, err
	}

	data, err := c.take(int(length))
	if err != nil {
		return nil, err
	}

	if size, ok := metaSizes[typ]; ok && len(data) < size {
		return nil, newError(ErrMalformedMeta, lengthAt, "meta %#02x needs %d bytes, got %d", typ, size, len(data))
	}

	switch typ {
	case MetaSequenceNumber:
		switch {
		case len(data) == 0:
			return SequenceNumber{}, nil
		case len(data) >= 2:
			return SequenceNumber{Number: binary.BigEndian.Uint16(data), Present: true}, nil
		}
		return nil, newError(ErrMalformedMeta, lengthAt, "sequence number needs 0 or 2 bytes, got %d", len(data))
	case MetaText:
		return Text{data}, nil
	case MetaCopyright:
		return Copyright{data}, nil
	case MetaTrackName:
		return TrackName{data}, nil
	case MetaInstrumentName:
		return InstrumentName{data}, nil
	case MetaLyric:
		return Lyric{data}, nil
	case MetaMarker:
		return Marker{data}, nil
	case MetaCuePoint:
		return CuePoint{data}, nil
	case MetaChannelPrefix:
		return ChannelPrefix{data[0]}, nil
	case MetaPort:
		return Port{data[0]}, nil
	case MetaEndOfTrack:
		if len(data) != 0 {
			return nil, newError(ErrMalformedMeta, lengthAt, "end of track has %d payload bytes", len(data))
		}
		return EndOfTrack{}, nil
	case MetaSetTempo:
		return SetTempo{uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])}, nil
	case MetaSMPTEOffset:
		return SMPTEOffset{
			Hour:     data[0],
			Minute:   data[1],
			Second:   data[2],
			Frame:    data[3],
			Subframe: data[4],
		}, nil
	case MetaTimeSignature:
		return TimeSignature{
			Numerator:               data[0],
			DenominatorPower:        data[1],
			ClocksPerClick:          data[2],
			ThirtySecondsPerQuarter: data[3],
		}, nil
	case MetaKeySignature:
		return KeySignature{Accidentals: int8(data[0]), Minor: data[1] != 0}, nil
	case MetaSequencerSpecific:
		return SequencerSpecific{data}, nil
	default:
		return UnknownMeta{Type: typ, Data: data}, nil
	}
}
