package midi

import "encoding/binary"

// cursor reads from a resident byte slice. base is the absolute file
// offset of buf[0] so errors can report file positions.
type cursor struct {
	buf  []byte
	pos  int
	base int64
}

func newCursor(buf []byte, base int64) *cursor {
	return &cursor{buf: buf, base: base}
}

func (c *cursor) offset() int64 {
	return c.base + int64(c.pos)
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.pos
}

func (c *cursor) peek() (byte, error) {
	if c.remaining() < 1 {
		return 0, newError(ErrTruncatedInput, c.offset(), "expected 1 byte")
	}
	return c.buf[c.pos], nil
}

func (c *cursor) readByte() (byte, error) {
	b, err := c.peek()
	if err != nil {
		return 0, err
	}
	c.pos++
	return b, nil
}

// take returns the next n bytes. The slice aliases the underlying buffer.
func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, newError(ErrTruncatedInput, c.offset(), "expected %d bytes, %d left", n, c.remaining())
	}
	b := c.buf[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) uint16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *cursor) uint32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// varLen returns the variable length value at the cursor position.
func (c *cursor) varLen() (uint32, error) {
	start := c.offset()
	x, n, err := DecodeVLQ(c.buf[c.pos:])
	if err != nil {
		return 0, newError(err, start, "variable length quantity")
	}
	c.pos += n
	return x, nil
}
