package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decodeBody(t *testing.T, body []byte) (*Track, error) {
	t.Helper()
	return decodeTrack(0, chunk{id: trackChunkID, body: body}, zap.NewNop())
}

func TestTrackRunningStatus(t *testing.T) {
	track, err := decodeBody(t, []byte{0x00, 0x90, 0x40, 0x40, 0x00, 0x42, 0x7F})
	require.NoError(t, err)

	assert.Equal(t, []TimedEvent{
		{Event: ChannelMessage{Kind: NoteOn, Channel: 0, Data1: 0x40, Data2: 0x40}, Offset: 1},
		{Event: ChannelMessage{Kind: NoteOn, Channel: 0, Data1: 66, Data2: 127}, Offset: 5, RunningStatus: true},
	}, track.Events)
	assert.Equal(t, int64(2), track.Events[0].DataOffset())
	assert.Equal(t, int64(5), track.Events[1].DataOffset())
}

func TestTrackRunningStatusSurvivesMetaAndSysEx(t *testing.T) {
	track, err := decodeBody(t, []byte{
		0x00, 0x93, 0x40, 0x40,
		0x10, 0xFF, 0x01, 0x01, 'x',
		0x20, 0xF0, 0x02, 0x7E, 0xF7,
		0x30, 0x41, 0x10,
	})
	require.NoError(t, err)
	require.Len(t, track.Events, 4)

	assert.Equal(t, Text{Data: []byte("x")}, track.Events[1].Event)
	assert.Equal(t, SysEx{Data: []byte{0x7E, 0xF7}}, track.Events[2].Event)
	assert.Equal(t, TimedEvent{
		Delta:         0x30,
		Event:         ChannelMessage{Kind: NoteOn, Channel: 3, Data1: 0x41, Data2: 0x10},
		Offset:        15,
		RunningStatus: true,
	}, track.Events[3])
	assert.Equal(t, []uint64{0, 0x10, 0x30, 0x60}, track.AbsoluteTicks())
}

func TestTrackRunningStatusFollowsLastChannelMessage(t *testing.T) {
	track, err := decodeBody(t, []byte{
		0x00, 0x90, 0x3C, 0x64,
		0x00, 0xC1, 0x05,
		0x00, 0x06,
	})
	require.NoError(t, err)
	require.Len(t, track.Events, 3)
	assert.Equal(t, ChannelMessage{Kind: ProgramChange, Channel: 1, Data1: 6}, track.Events[2].Event)
}

func TestTrackEndOfTrack(t *testing.T) {
	f, err := Parse(smfFile([]byte{0x00, 0xFF, 0x2F, 0x00}))
	require.NoError(t, err)
	require.Len(t, f.Tracks, 1)
	assert.Equal(t, []TimedEvent{{Event: EndOfTrack{}, Offset: 23}}, f.Tracks[0].Events)
}

func TestTrackIgnoresBytesAfterEndOfTrack(t *testing.T) {
	track, err := decodeBody(t, []byte{0x00, 0xFF, 0x2F, 0x00, 0xF7, 0xF7, 0x80})
	require.NoError(t, err)
	assert.Len(t, track.Events, 1)
}

func TestTrackWithoutEndOfTrack(t *testing.T) {
	track, err := decodeBody(t, []byte{0x00, 0xC0, 0x05})
	require.NoError(t, err)
	assert.Len(t, track.Events, 1)

	track, err = decodeBody(t, nil)
	require.NoError(t, err)
	assert.Empty(t, track.Events)
}

func TestTrackErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   []byte
		err    error
		offset int64
	}{
		{"escape sysex", []byte{0x00, 0xF7, 0x01, 0x00}, ErrUnsupportedStatus, 1},
		{"system common", []byte{0x00, 0xF2, 0x00, 0x00}, ErrUnsupportedStatus, 1},
		{"realtime", []byte{0x00, 0xF8}, ErrUnsupportedStatus, 1},
		{"running status unset", []byte{0x00, 0x40, 0x40}, ErrRunningStatusUnavailable, 1},
		{"running status unset after meta", []byte{0x00, 0xFF, 0x01, 0x00, 0x00, 0x40, 0x40}, ErrRunningStatusUnavailable, 5},
		{"data byte with top bit", []byte{0x00, 0x90, 0x40, 0x80}, ErrMalformedDataByte, 3},
		{"first data byte with top bit", []byte{0x00, 0xB0, 0xFF, 0x00}, ErrMalformedDataByte, 2},
		{"missing data byte", []byte{0x00, 0x90, 0x40}, ErrTruncatedInput, 3},
		{"delta only", []byte{0x00}, ErrTruncatedInput, 1},
		{"truncated delta", []byte{0x81}, ErrTruncatedInput, 0},
		{"overflowing delta", []byte{0x80, 0x80, 0x80, 0x80, 0x00, 0xC0, 0x00}, ErrOverflow, 0},
		{"sysex longer than track", []byte{0x00, 0xF0, 0x05, 0x01}, ErrTruncatedInput, 3},
		{"sysex overflowing length", []byte{0x00, 0xF0, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}, ErrOverflow, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, err := decodeBody(t, tt.body)
			assert.Nil(t, track)
			require.ErrorIs(t, err, tt.err)

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.offset, e.Offset)
			assert.Equal(t, 0, e.Track)
		})
	}
}

func TestTrackEscapeSysExInFile(t *testing.T) {
	in := smfFile([]byte{0x00, 0xF7, 0x00})

	assert.NotPanics(t, func() {
		_, err := Parse(in)
		require.ErrorIs(t, err, ErrUnsupportedStatus)

		var e *Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, int64(23), e.Offset)
		assert.Equal(t, 0, e.Track)
		assert.Contains(t, e.Error(), "track 0")
	})
}

func TestTrackRunningStatusIsPerTrack(t *testing.T) {
	in := smfFile(
		[]byte{0x00, 0x90, 0x40, 0x40, 0x00, 0xFF, 0x2F, 0x00},
		[]byte{0x00, 0x40, 0x40},
	)

	_, err := Parse(in)
	require.ErrorIs(t, err, ErrRunningStatusUnavailable)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 1, e.Track)
	assert.Equal(t, int64(14+8+8+8+1), e.Offset)
}

func TestChannelMessageKinds(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		want ChannelMessage
	}{
		{"note off", []byte{0x80, 0x3C, 0x40}, ChannelMessage{Kind: NoteOff, Data1: 0x3C, Data2: 0x40}},
		{"note on velocity zero", []byte{0x95, 0x3C, 0x00}, ChannelMessage{Kind: NoteOn, Channel: 5, Data1: 0x3C}},
		{"poly pressure", []byte{0xA1, 0x3C, 0x20}, ChannelMessage{Kind: PolyPressure, Channel: 1, Data1: 0x3C, Data2: 0x20}},
		{"control change", []byte{0xBF, 0x07, 0x64}, ChannelMessage{Kind: ControlChange, Channel: 15, Data1: 7, Data2: 100}},
		{"program change", []byte{0xC2, 0x13}, ChannelMessage{Kind: ProgramChange, Channel: 2, Data1: 0x13}},
		{"channel pressure", []byte{0xD3, 0x55}, ChannelMessage{Kind: ChannelPressure, Channel: 3, Data1: 0x55}},
		{"pitch bend", []byte{0xE4, 0x00, 0x40}, ChannelMessage{Kind: PitchBend, Channel: 4, Data2: 0x40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, err := decodeBody(t, append([]byte{0x00}, tt.body...))
			require.NoError(t, err)
			require.Len(t, track.Events, 1)
			assert.Equal(t, tt.want, track.Events[0].Event)
		})
	}
}

func TestChannelMessageAccessors(t *testing.T) {
	bend := ChannelMessage{Kind: PitchBend, Data1: 0x7F, Data2: 0x7F}
	assert.Equal(t, uint16(16383), bend.PitchBend())
	assert.Equal(t, uint16(8192), ChannelMessage{Kind: PitchBend, Data2: 0x40}.PitchBend())
	assert.Equal(t, uint16(0), ChannelMessage{Kind: PitchBend}.PitchBend())

	poly := ChannelMessage{Kind: PolyPressure, Data1: 60, Data2: 90}
	assert.Equal(t, uint8(60), poly.Note())
	assert.Equal(t, uint8(90), poly.Pressure())
	assert.Equal(t, uint8(33), ChannelMessage{Kind: ChannelPressure, Data1: 33}.Pressure())

	cc := ChannelMessage{Kind: ControlChange, Data1: 64, Data2: 127}
	assert.Equal(t, uint8(64), cc.Controller())
	assert.Equal(t, uint8(127), cc.Value())

	assert.Equal(t, "NoteOn", NoteOn.String())
	assert.Equal(t, "Kind(0xf)", Kind(0xF).String())
}
