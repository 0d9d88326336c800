package midi

const maxVLQLen = 4

// DecodeVLQ decodes a variable length quantity from the start of buf.
// It returns the value and the number of bytes consumed.
func DecodeVLQ(buf []byte) (x uint32, n int, err error) {
	for n < maxVLQLen {
		if n >= len(buf) {
			return 0, n, ErrTruncatedInput
		}
		b := buf[n]
		x = x<<7 | uint32(b&0x7F)
		n++
		if b&0x80 == 0 {
			return x, n, nil
		}
	}

	return 0, n, ErrOverflow
}
