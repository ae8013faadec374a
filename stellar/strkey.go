package stellar

import "encoding/binary"

// Strkey version bytes. The low three bits are zero so that the first
// encoded character is exactly the letter in the comment.
const (
	VERSION_BYTE_ED25519_PUBLIC_KEY     byte = 6 << 3  // 'G'
	VERSION_BYTE_MUXED_ACCOUNT          byte = 12 << 3 // 'M'
	VERSION_BYTE_ED25519_SIGNED_PAYLOAD byte = 15 << 3 // 'P'
	VERSION_BYTE_PRE_AUTH_TX            byte = 19 << 3 // 'T'
	VERSION_BYTE_HASH_X                 byte = 23 << 3 // 'X'
	VERSION_BYTE_CONTRACT               byte = 2 << 3  // 'C'
)

const (
	RAW_KEY_SIZE = 32

	ENCODED_KEY_LENGTH                = 56
	ENCODED_MUXED_ACCOUNT_LENGTH      = 69
	ENCODED_SIGNED_PAYLOAD_MAX_LENGTH = 165

	// version byte + longest payload (signed payload) + crc16
	maxStrkeyDataSize = 1 + 100 + 2
)

// encodeStrkey assembles version || payload || crc16-le and base32
// encodes it without padding; strkey lengths are fixed per version, so
// '=' never appears in a canonical key.
func encodeStrkey(version byte, payload []byte) (string, error) {
	if len(payload) > maxStrkeyDataSize-3 {
		return "", serr(TX_ERR_OUT_OF_RANGE, "strkey payload too long")
	}
	var data [maxStrkeyDataSize]byte
	data[0] = version
	copy(data[1:], payload)
	n := 1 + len(payload)
	crc := crc16(data[:n])
	data[n] = byte(crc)
	data[n+1] = byte(crc >> 8)

	var out [ENCODED_SIGNED_PAYLOAD_MAX_LENGTH]byte
	written, err := Base32Encode(out[:], data[:n+2], false)
	if err != nil {
		return "", err
	}
	return string(out[:written]), nil
}

func encodeKey(version byte, raw []byte) (string, error) {
	if len(raw) != RAW_KEY_SIZE {
		return "", serr(TX_ERR_OUT_OF_RANGE, "raw key must be 32 bytes")
	}
	return encodeStrkey(version, raw)
}

func EncodeED25519PublicKey(raw []byte) (string, error) {
	return encodeKey(VERSION_BYTE_ED25519_PUBLIC_KEY, raw)
}

func EncodePreAuthTxKey(raw []byte) (string, error) {
	return encodeKey(VERSION_BYTE_PRE_AUTH_TX, raw)
}

func EncodeHashXKey(raw []byte) (string, error) {
	return encodeKey(VERSION_BYTE_HASH_X, raw)
}

func EncodeContract(raw []byte) (string, error) {
	return encodeKey(VERSION_BYTE_CONTRACT, raw)
}

// EncodeMuxedAccount encodes key || id(8, big-endian) under the 'M'
// version byte.
func EncodeMuxedAccount(raw []byte, id uint64) (string, error) {
	if len(raw) != RAW_KEY_SIZE {
		return "", serr(TX_ERR_OUT_OF_RANGE, "raw key must be 32 bytes")
	}
	var payload [RAW_KEY_SIZE + 8]byte
	copy(payload[:RAW_KEY_SIZE], raw)
	binary.BigEndian.PutUint64(payload[RAW_KEY_SIZE:], id)
	return encodeStrkey(VERSION_BYTE_MUXED_ACCOUNT, payload[:])
}

// EncodeSignedPayload encodes key || len(4) || payload || zero pad to a
// four byte multiple under the 'P' version byte. The payload must be
// 1..=64 bytes.
func EncodeSignedPayload(raw []byte, payload []byte) (string, error) {
	if len(raw) != RAW_KEY_SIZE {
		return "", serr(TX_ERR_OUT_OF_RANGE, "raw key must be 32 bytes")
	}
	if len(payload) == 0 || len(payload) > SIGNED_PAYLOAD_MAX_SIZE {
		return "", serr(TX_ERR_OUT_OF_RANGE, "signed payload length out of range")
	}
	var body [RAW_KEY_SIZE + 4 + SIGNED_PAYLOAD_MAX_SIZE]byte
	copy(body[:RAW_KEY_SIZE], raw)
	binary.BigEndian.PutUint32(body[RAW_KEY_SIZE:], uint32(len(payload)))
	copy(body[RAW_KEY_SIZE+4:], payload)
	n := RAW_KEY_SIZE + 4 + len(payload) + xdrPad(len(payload))
	return encodeStrkey(VERSION_BYTE_ED25519_SIGNED_PAYLOAD, body[:n])
}
