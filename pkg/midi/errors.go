package midi

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic is returned when a chunk does not start with the expected tag.
	ErrBadMagic = errors.New("bad chunk tag")
	// ErrTruncatedInput is returned when the input ends before a field is complete.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrUnknownFormat is returned for a header format other than 0, 1 or 2.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrUnsupportedDivision is returned by timing helpers for SMPTE divisions.
	ErrUnsupportedDivision = errors.New("unsupported division")
	// ErrRunningStatusUnavailable is returned when a data byte appears where
	// a status byte is required and no running status is set.
	ErrRunningStatusUnavailable = errors.New("running status unavailable")
	// ErrUnsupportedStatus is returned for system common and realtime status bytes.
	ErrUnsupportedStatus = errors.New("unsupported status")
	// ErrMalformedDataByte is returned when a channel message data byte has its top bit set.
	ErrMalformedDataByte = errors.New("malformed data byte")
	// ErrMalformedMeta is returned when a meta event payload has the wrong length.
	ErrMalformedMeta = errors.New("malformed meta event")
	// ErrOverflow is returned for variable length quantities longer than 4 bytes.
	ErrOverflow = errors.New("variable length quantity overflow")
)

// Error describes a decode failure at a specific byte of the input.
type Error struct {
	Kind   error
	Offset int64 // absolute offset within the file
	Track  int   // -1 outside of track chunks
	Detail string
}

func newError(kind error, offset int64, format string, args ...interface{}) *Error {
	return &Error{
		Kind:   kind,
		Offset: offset,
		Track:  -1,
		Detail: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
	if e.Track >= 0 {
		msg = fmt.Sprintf("track %d: %s", e.Track, msg)
	}
	if e.Detail != "" {
		msg += " - " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// inTrack tags err with the track index if it is a decode error.
func inTrack(err error, track int) error {
	var e *Error
	if errors.As(err, &e) {
		e.Track = track
	}
	return err
}
