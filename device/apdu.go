// Package device implements the command layer of the signing companion
// over in-memory APDUs: chunked transaction upload, hash signing gated
// by a settings capability, public key export and configuration
// reporting. Transport framing (USB/U2F) stays outside; callers hand in
// one complete APDU at a time.
package device

import (
	"crypto/sha256"
	"errors"

	"github.com/LedgerHQ/app-stellar-sub002/stellar"
)

const (
	CLA = 0xE0

	INS_GET_PUBLIC_KEY        = 0x02
	INS_SIGN_TX               = 0x04
	INS_GET_APP_CONFIGURATION = 0x06
	INS_SIGN_TX_HASH          = 0x08

	P1_FIRST = 0x00
	P1_MORE  = 0x80
	P2_LAST  = 0x00
	P2_MORE  = 0x80

	offsetCLA   = 0
	offsetINS   = 1
	offsetP1    = 2
	offsetP2    = 3
	offsetLC    = 4
	offsetCDATA = 5

	// MAX_RAW_TX bounds the accumulated transaction upload.
	MAX_RAW_TX = 1024
)

// Status words. Decode failures map each core error code to its own
// word so the host can tell rejection reasons apart.
const (
	SW_OK                    uint16 = 0x9000
	SW_DENIED                uint16 = 0x6985
	SW_WRONG_LENGTH          uint16 = 0x6700
	SW_INCORRECT_P1P2        uint16 = 0x6b00
	SW_INS_NOT_SUPPORTED     uint16 = 0x6d00
	SW_CLA_NOT_SUPPORTED     uint16 = 0x6e00
	SW_HASH_SIGNING_DISABLED uint16 = 0x6c66
	SW_INTERNAL_ERROR        uint16 = 0x6f00
)

func statusWord(err error) uint16 {
	var se *stellar.Error
	if !errors.As(err, &se) {
		return SW_INTERNAL_ERROR
	}
	switch se.Code {
	case stellar.TX_ERR_MEMO_TYPE_UNKNOWN:
		return 0x6c21
	case stellar.TX_ERR_OP_TYPE_UNKNOWN:
		return 0x6c24
	case stellar.TX_ERR_MULTI_OPS_UNSUPPORTED:
		return 0x6c25
	case stellar.TX_ERR_KEY_TYPE_UNSUPPORTED:
		return 0x6c27
	case stellar.TX_ERR_ASSET_TYPE_UNKNOWN:
		return 0x6c28
	case stellar.STR_ERR_BUFFER_TOO_SMALL:
		return 0x6c2c
	case stellar.TX_ERR_TRUNCATED:
		return 0x6c2d
	case stellar.TX_ERR_BAD_PADDING:
		return 0x6c2e
	case stellar.TX_ERR_OUT_OF_RANGE:
		return 0x6c2f
	case stellar.TX_ERR_SIGNER_TYPE_UNKNOWN:
		return 0x6cdd
	default:
		return SW_INTERNAL_ERROR
	}
}

// Approver is the user-interaction seam. The UI event loop implements
// it; tests use AutoApprover.
type Approver interface {
	ApproveTx(content *stellar.TxContent) bool
	ApproveHash(summary string) bool
}

// AutoApprover approves everything. For tests and host-side tooling.
type AutoApprover struct{}

func (AutoApprover) ApproveTx(*stellar.TxContent) bool { return true }

func (AutoApprover) ApproveHash(string) bool { return true }

type Device struct {
	keys     Keyholder
	approver Approver
	settings Settings

	tx struct {
		raw     [MAX_RAW_TX]byte
		n       int
		path    Bip32Path
		pending bool
		content stellar.TxContent
	}
}

func New(keys Keyholder, approver Approver, settings Settings) *Device {
	return &Device{keys: keys, approver: approver, settings: settings}
}

// Content exposes the display rows of the last decoded transaction or
// signed hash, for the UI. A decode failure leaves them cleared.
func (d *Device) Content() *stellar.TxContent { return &d.tx.content }

// Exchange handles one APDU and returns the response data followed by a
// two byte status word.
func (d *Device) Exchange(apdu []byte) []byte {
	resp, sw := d.handle(apdu)
	return append(resp, byte(sw>>8), byte(sw))
}

func (d *Device) handle(apdu []byte) ([]byte, uint16) {
	if len(apdu) < offsetCDATA {
		return nil, SW_WRONG_LENGTH
	}
	if apdu[offsetCLA] != CLA {
		return nil, SW_CLA_NOT_SUPPORTED
	}
	if int(apdu[offsetLC]) != len(apdu)-offsetCDATA {
		return nil, SW_WRONG_LENGTH
	}
	data := apdu[offsetCDATA:]

	switch apdu[offsetINS] {
	case INS_GET_PUBLIC_KEY:
		return d.handleGetPublicKey(data)
	case INS_SIGN_TX:
		return d.handleSignTx(apdu[offsetP1], apdu[offsetP2], data)
	case INS_SIGN_TX_HASH:
		return d.handleSignTxHash(data)
	case INS_GET_APP_CONFIGURATION:
		return d.handleGetAppConfiguration()
	default:
		return nil, SW_INS_NOT_SUPPORTED
	}
}

func (d *Device) handleGetPublicKey(data []byte) ([]byte, uint16) {
	path, rest, err := ParsePath(data)
	if err != nil || len(rest) != 0 {
		return nil, SW_WRONG_LENGTH
	}
	pub, err := d.keys.PublicKey(path)
	if err != nil {
		return nil, SW_INTERNAL_ERROR
	}
	return pub, SW_OK
}

func (d *Device) resetTx() {
	d.tx.n = 0
	d.tx.pending = false
}

func (d *Device) handleSignTx(p1, p2 byte, data []byte) ([]byte, uint16) {
	switch p1 {
	case P1_FIRST:
		d.resetTx()
		path, rest, err := ParsePath(data)
		if err != nil {
			return nil, SW_WRONG_LENGTH
		}
		d.tx.path = path
		d.tx.pending = true
		data = rest
	case P1_MORE:
		if !d.tx.pending {
			return nil, SW_INCORRECT_P1P2
		}
	default:
		return nil, SW_INCORRECT_P1P2
	}

	if d.tx.n+len(data) > MAX_RAW_TX {
		d.resetTx()
		return nil, SW_WRONG_LENGTH
	}
	copy(d.tx.raw[d.tx.n:], data)
	d.tx.n += len(data)

	if p2 == P2_MORE {
		return nil, SW_OK
	}

	raw := d.tx.raw[:d.tx.n]
	if err := stellar.ParseTx(raw, &d.tx.content); err != nil {
		d.tx.content.Reset()
		d.resetTx()
		return nil, statusWord(err)
	}
	if !d.approver.ApproveTx(&d.tx.content) {
		d.resetTx()
		return nil, SW_DENIED
	}
	digest := sha256.Sum256(raw)
	sig, err := d.keys.Sign(d.tx.path, digest[:])
	d.resetTx()
	if err != nil {
		return nil, SW_INTERNAL_ERROR
	}
	return sig, SW_OK
}

func (d *Device) handleSignTxHash(data []byte) ([]byte, uint16) {
	if !d.settings.HashSigningEnabled {
		return nil, SW_HASH_SIGNING_DISABLED
	}
	path, rest, err := ParsePath(data)
	if err != nil || len(rest) != 32 {
		return nil, SW_WRONG_LENGTH
	}
	if err := stellar.HashSigningContent(&d.tx.content, rest); err != nil {
		return nil, statusWord(err)
	}
	if !d.approver.ApproveHash(d.tx.content.OpDetails[0].String()) {
		return nil, SW_DENIED
	}
	sig, err := d.keys.Sign(path, rest)
	if err != nil {
		return nil, SW_INTERNAL_ERROR
	}
	return sig, SW_OK
}

func (d *Device) handleGetAppConfiguration() ([]byte, uint16) {
	enabled := byte(0)
	if d.settings.HashSigningEnabled {
		enabled = 1
	}
	return []byte{enabled, APPVERSION_MAJOR, APPVERSION_MINOR, APPVERSION_PATCH}, SW_OK
}
