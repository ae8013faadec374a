package device

import (
	"encoding/binary"
	"fmt"
	"strings"
)

const MAX_BIP32_PATH_LEN = 10

const hardenedOffset = 0x80000000

// Bip32Path is a fixed-capacity derivation path. Elements carry the
// hardened bit as they arrive on the wire.
type Bip32Path struct {
	Len   int
	Elems [MAX_BIP32_PATH_LEN]uint32
}

// ParsePath reads count(u8) followed by count big-endian u32 elements
// and returns the remaining bytes.
func ParsePath(data []byte) (Bip32Path, []byte, error) {
	var p Bip32Path
	if len(data) < 1 {
		return p, nil, fmt.Errorf("bip32 path: missing length")
	}
	n := int(data[0])
	if n == 0 || n > MAX_BIP32_PATH_LEN {
		return p, nil, fmt.Errorf("bip32 path: length %d out of range", n)
	}
	if len(data) < 1+4*n {
		return p, nil, fmt.Errorf("bip32 path: truncated")
	}
	for i := 0; i < n; i++ {
		p.Elems[i] = binary.BigEndian.Uint32(data[1+4*i:])
	}
	p.Len = n
	return p, data[1+4*n:], nil
}

// AppendPath emits the wire form consumed by ParsePath.
func AppendPath(b []byte, p Bip32Path) []byte {
	b = append(b, byte(p.Len))
	for i := 0; i < p.Len; i++ {
		var tmp [4]byte
		binary.BigEndian.PutUint32(tmp[:], p.Elems[i])
		b = append(b, tmp[:]...)
	}
	return b
}

// StellarPath returns m/44'/148'/account'.
func StellarPath(account uint32) Bip32Path {
	return Bip32Path{
		Len: 3,
		Elems: [MAX_BIP32_PATH_LEN]uint32{
			44 | hardenedOffset,
			148 | hardenedOffset,
			account | hardenedOffset,
		},
	}
}

// ParsePathString parses "m/44'/148'/0'" style notation.
func ParsePathString(s string) (Bip32Path, error) {
	var p Bip32Path
	s = strings.TrimPrefix(s, "m/")
	if s == "" {
		return p, fmt.Errorf("bip32 path: empty")
	}
	parts := strings.Split(s, "/")
	if len(parts) > MAX_BIP32_PATH_LEN {
		return p, fmt.Errorf("bip32 path: length %d out of range", len(parts))
	}
	for i, part := range parts {
		hardened := strings.HasSuffix(part, "'")
		part = strings.TrimSuffix(part, "'")
		var v uint32
		if _, err := fmt.Sscanf(part, "%d", &v); err != nil || part == "" {
			return p, fmt.Errorf("bip32 path: bad element %q", parts[i])
		}
		if v >= hardenedOffset {
			return p, fmt.Errorf("bip32 path: element %q out of range", parts[i])
		}
		if hardened {
			v |= hardenedOffset
		}
		p.Elems[i] = v
	}
	p.Len = len(parts)
	return p, nil
}

func (p Bip32Path) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for i := 0; i < p.Len; i++ {
		e := p.Elems[i]
		if e >= hardenedOffset {
			fmt.Fprintf(&sb, "/%d'", e-hardenedOffset)
		} else {
			fmt.Fprintf(&sb, "/%d", e)
		}
	}
	return sb.String()
}
