package midi

const sysExStatus = 0xF0

// decodeSysEx reads a length prefixed payload after a consumed 0xF0.
func decodeSysEx(c *cursor) (SysEx, error) {
	length, err := c.varLen()
	if err != nil {
		return SysEx{}, err
	}

	data, err := c.take(int(length))
	if err != nil {
		return SysEx{}, err
	}

	return SysEx{Data: data}, nil
}
