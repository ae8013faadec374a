package stellar

import "encoding/binary"

// xdrPad returns the number of zero bytes completing n to a four byte
// multiple.
func xdrPad(n int) int {
	return (4 - n%4) % 4
}

func readU32be(b []byte, off *int) (uint32, error) {
	if *off+4 > len(b) {
		return 0, serr(TX_ERR_TRUNCATED, "unexpected EOF (u32)")
	}
	v := binary.BigEndian.Uint32(b[*off : *off+4])
	*off += 4
	return v, nil
}

func readU64be(b []byte, off *int) (uint64, error) {
	if *off+8 > len(b) {
		return 0, serr(TX_ERR_TRUNCATED, "unexpected EOF (u64)")
	}
	v := binary.BigEndian.Uint64(b[*off : *off+8])
	*off += 8
	return v, nil
}

func readBytes(b []byte, off *int, n int) ([]byte, error) {
	if n < 0 {
		return nil, serr(TX_ERR_OUT_OF_RANGE, "negative length")
	}
	if *off+n > len(b) {
		return nil, serr(TX_ERR_TRUNCATED, "unexpected EOF (opaque)")
	}
	v := b[*off : *off+n]
	*off += n
	return v, nil
}

// readBool consumes a four byte presence flag. XDR booleans are 0 or 1;
// any non-zero word counts as set.
func readBool(b []byte, off *int) (bool, error) {
	v, err := readU32be(b, off)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// readVarOpaque consumes a length-prefixed opaque bounded by max and
// verifies that the padding to a four byte multiple is zero.
func readVarOpaque(b []byte, off *int, max uint32, name string) ([]byte, error) {
	n, err := readU32be(b, off)
	if err != nil {
		return nil, err
	}
	if n > max {
		return nil, serr(TX_ERR_OUT_OF_RANGE, name+" length exceeds cap")
	}
	data, err := readBytes(b, off, int(n))
	if err != nil {
		return nil, err
	}
	pad, err := readBytes(b, off, xdrPad(int(n)))
	if err != nil {
		return nil, err
	}
	for _, p := range pad {
		if p != 0 {
			return nil, serr(TX_ERR_BAD_PADDING, name+" has non-zero padding")
		}
	}
	return data, nil
}
