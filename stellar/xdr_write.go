package stellar

import "encoding/binary"

// Append helpers for building XDR streams in fixtures and tests. They
// mirror the reader: big-endian words, opaques zero padded to four byte
// multiples.

func AppendU32be(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func AppendU64be(b []byte, v uint64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return append(b, tmp[:]...)
}

// AppendOpaque appends a fixed opaque with no length prefix.
func AppendOpaque(b []byte, p []byte) []byte {
	return append(b, p...)
}

// AppendVarOpaque appends a length prefix, the data and zero padding.
func AppendVarOpaque(b []byte, p []byte) []byte {
	b = AppendU32be(b, uint32(len(p)))
	b = append(b, p...)
	for i := 0; i < xdrPad(len(p)); i++ {
		b = append(b, 0)
	}
	return b
}
