package midi

import "go.uber.org/zap"

const metaStatus = 0xFF

// decodeTrack decodes the body of one MTrk chunk. Running status starts
// empty and lives only for the duration of this call.
func decodeTrack(index int, ch chunk, log *zap.Logger) (*Track, error) {
	c := newCursor(ch.body, ch.offset)
	track := new(Track)

	var running byte // 0 means no running status

	for c.remaining() > 0 {
		delta, err := c.varLen()
		if err != nil {
			return nil, inTrack(err, index)
		}

		b, err := c.peek()
		if err != nil {
			return nil, inTrack(err, index)
		}

		e := TimedEvent{Delta: delta, Offset: c.offset()}

		status := b
		if b&0x80 == 0 {
			if running == 0 {
				return nil, inTrack(newError(ErrRunningStatusUnavailable, e.Offset, "data byte %#02x", b), index)
			}
			status = running
			e.RunningStatus = true
		} else {
			c.pos++
		}

		switch {
		case status == metaStatus:
			e.Event, err = decodeMeta(c)
		case status == sysExStatus:
			e.Event, err = decodeSysEx(c)
		case isVoiceStatus(status):
			e.Event, err = decodeChannel(c, status)
			if err == nil {
				running = status
			}
		default:
			err = newError(ErrUnsupportedStatus, e.Offset, "status %#02x", status)
		}
		if err != nil {
			return nil, inTrack(err, index)
		}

		track.Events = append(track.Events, e)

		if _, ok := e.Event.(EndOfTrack); ok {
			if c.remaining() > 0 {
				log.Debug("bytes after end of track",
					zap.Int("track", index),
					zap.Int("ignored", c.remaining()))
			}
			break
		}
	}

	return track, nil
}
