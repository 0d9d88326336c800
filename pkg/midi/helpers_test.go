package midi

import "encoding/binary"

func be16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func join(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func rawChunk(id string, body []byte) []byte {
	return join([]byte(id), be32(uint32(len(body))), body)
}

func headerChunk(format, tracks, division uint16) []byte {
	return rawChunk("MThd", join(be16(format), be16(tracks), be16(division)))
}

// smfFile builds a format 1 file at 96 PPQ with one MTrk per body.
func smfFile(bodies ...[]byte) []byte {
	out := headerChunk(1, uint16(len(bodies)), 96)
	for _, b := range bodies {
		out = append(out, rawChunk("MTrk", b)...)
	}
	return out
}

// encodeVLQ is the inverse of DecodeVLQ for values up to 28 bits.
func encodeVLQ(v uint32) []byte {
	out := []byte{byte(v & 0x7F)}
	for v >>= 7; v > 0; v >>= 7 {
		out = append([]byte{byte(v&0x7F) | 0x80}, out...)
	}
	return out
}
