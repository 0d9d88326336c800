package midi

func isVoiceStatus(b byte) bool {
	return 0x80 <= b && b <= 0xEF
}

// decodeChannel reads the data bytes of a channel voice message. The
// status byte has already been consumed, or was carried over by running
// status.
func decodeChannel(c *cursor, status byte) (ChannelMessage, error) {
	m := ChannelMessage{
		Kind:    Kind(status >> 4),
		Channel: status & 0x0F,
	}

	data := [2]uint8{}
	for i := 0; i < m.Kind.dataLen(); i++ {
		at := c.offset()
		b, err := c.readByte()
		if err != nil {
			return m, err
		}
		if b&0x80 != 0 {
			return m, newError(ErrMalformedDataByte, at, "%s data byte %#02x", m.Kind, b)
		}
		data[i] = b
	}
	m.Data1, m.Data2 = data[0], data[1]

	return m, nil
}
