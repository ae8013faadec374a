package stellar

import "bytes"

type NetworkType uint8

const (
	NETWORK_TYPE_PUBLIC NetworkType = iota
	NETWORK_TYPE_TEST
	NETWORK_TYPE_UNKNOWN
)

// sha256("Public Global Stellar Network ; September 2015")
var publicNetworkID = [32]byte{
	0x7a, 0xc3, 0x39, 0x97, 0x54, 0x4e, 0x31, 0x75,
	0xd2, 0x66, 0xbd, 0x02, 0x24, 0x39, 0xb2, 0x2c,
	0xdb, 0x16, 0x50, 0x8c, 0x01, 0x16, 0x3f, 0x26,
	0xe5, 0xcb, 0x2a, 0x3e, 0x10, 0x45, 0xa9, 0x79,
}

// sha256("Test SDF Network ; September 2015")
var testNetworkID = [32]byte{
	0xce, 0xe0, 0x30, 0x2d, 0x59, 0x84, 0x4d, 0x32,
	0xbd, 0xca, 0x91, 0x5c, 0x82, 0x03, 0xdd, 0x44,
	0xb3, 0x3f, 0xbb, 0x7e, 0xdc, 0x19, 0x05, 0x1e,
	0xa3, 0x7a, 0xbe, 0xdf, 0x28, 0xec, 0xd4, 0x72,
}

// PublicNetworkID and TestNetworkID return the recognized network id
// hashes, for envelope building.
func PublicNetworkID() [32]byte { return publicNetworkID }

func TestNetworkID() [32]byte { return testNetworkID }

func NetworkFromID(id []byte) NetworkType {
	switch {
	case bytes.Equal(id, publicNetworkID[:]):
		return NETWORK_TYPE_PUBLIC
	case bytes.Equal(id, testNetworkID[:]):
		return NETWORK_TYPE_TEST
	default:
		return NETWORK_TYPE_UNKNOWN
	}
}

func (n NetworkType) String() string {
	switch n {
	case NETWORK_TYPE_PUBLIC:
		return "Public"
	case NETWORK_TYPE_TEST:
		return "Test"
	default:
		return "Unknown"
	}
}
