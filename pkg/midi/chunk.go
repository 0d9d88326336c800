package midi

const headerSize = 6

var (
	headerChunkID = [4]byte{0x4D, 0x54, 0x68, 0x64} // MThd
	trackChunkID  = [4]byte{0x4D, 0x54, 0x72, 0x6B} // MTrk
)

type chunk struct {
	id     [4]byte
	body   []byte
	offset int64 // absolute offset of body[0]
	start  int64 // absolute offset of the tag
}

// readChunk frames the next chunk: a 4 byte tag, a big-endian length and
// exactly length bytes of body.
func readChunk(c *cursor) (chunk, error) {
	ch := chunk{start: c.offset()}

	id, err := c.take(4)
	if err != nil {
		return ch, err
	}
	copy(ch.id[:], id)

	size, err := c.uint32()
	if err != nil {
		return ch, err
	}

	ch.offset = c.offset()
	if uint64(size) > uint64(c.remaining()) {
		return ch, newError(ErrTruncatedInput, ch.start, "chunk %q declares %d bytes, %d left", id, size, c.remaining())
	}
	ch.body, _ = c.take(int(size))

	return ch, nil
}

// parseHeader reads the MThd chunk. Bytes past the six defined fields are
// skipped.
func parseHeader(c *cursor) (Header, error) {
	var h Header

	if c.remaining() >= 4 {
		var id [4]byte
		copy(id[:], c.buf[c.pos:])
		if id != headerChunkID {
			return h, newError(ErrBadMagic, c.offset(), "expected %q, got %q", headerChunkID[:], id[:])
		}
	}

	ch, err := readChunk(c)
	if err != nil {
		return h, err
	}

	if len(ch.body) < headerSize {
		return h, newError(ErrTruncatedInput, ch.offset, "header is %d bytes, expected %d", len(ch.body), headerSize)
	}

	body := newCursor(ch.body, ch.offset)
	format, _ := body.uint16()
	if format > uint16(MultiTrackAsynchronous) {
		return h, newError(ErrUnknownFormat, ch.offset, "format %d", format)
	}
	h.Format = Format(format)
	h.TrackCount, _ = body.uint16()
	division, _ := body.uint16()
	h.Division = decodeDivision(division)

	return h, nil
}
