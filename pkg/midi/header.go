package midi

import "fmt"

type Format uint16

const (
	SingleTrack Format = iota
	MultiTrackSynchronous
	MultiTrackAsynchronous
)

func (f Format) String() string {
	switch f {
	case SingleTrack:
		return "SingleTrack"
	case MultiTrackSynchronous:
		return "MultiTrackSynchronous"
	case MultiTrackAsynchronous:
		return "MultiTrackAsynchronous"
	}
	return fmt.Sprintf("Format(%d)", uint16(f))
}

// Division is the time division of a file, either PPQ or SMPTE.
type Division interface {
	isDivision()
	String() string
}

// PPQ is the number of ticks per quarter note.
type PPQ uint16

func (PPQ) isDivision() {}

func (p PPQ) String() string {
	return fmt.Sprintf("%d ticks per quarter note", uint16(p))
}

// SMPTE is a timecode based division. FramesPerSecond is the absolute value
// of the signed frame rate code (24, 25, 29 or 30 in conformant files).
type SMPTE struct {
	FramesPerSecond    uint8
	SubframeResolution uint8
}

func (SMPTE) isDivision() {}

func (s SMPTE) String() string {
	return fmt.Sprintf("SMPTE %d fps, %d subframes", s.FramesPerSecond, s.SubframeResolution)
}

type Header struct {
	Format     Format
	TrackCount uint16
	Division   Division
}

// TicksPerQuarterNote returns the PPQ resolution. Files with an SMPTE
// division report ErrUnsupportedDivision.
func (h Header) TicksPerQuarterNote() (uint16, error) {
	if p, ok := h.Division.(PPQ); ok {
		return uint16(p), nil
	}
	return 0, ErrUnsupportedDivision
}

func decodeDivision(v uint16) Division {
	if v&0x8000 == 0 {
		return PPQ(v & 0x7FFF)
	}
	code := int8(v >> 8)
	return SMPTE{
		FramesPerSecond:    uint8(-int16(code)),
		SubframeResolution: uint8(v),
	}
}
