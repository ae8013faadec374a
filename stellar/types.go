package stellar

// MuxedAccount is either a bare Ed25519 account or an (account, id)
// multiplexed pair.
type MuxedAccount struct {
	ID    uint64
	Key   [32]byte
	Muxed bool
}

func (m *MuxedAccount) Encode() (string, error) {
	if m.Muxed {
		return EncodeMuxedAccount(m.Key[:], m.ID)
	}
	return EncodeED25519PublicKey(m.Key[:])
}

type AssetType uint32

const (
	ASSET_TYPE_NATIVE            AssetType = 0
	ASSET_TYPE_CREDIT_ALPHANUM4  AssetType = 1
	ASSET_TYPE_CREDIT_ALPHANUM12 AssetType = 2
)

// Asset carries the code in a fixed slot; alphanum4 codes use the first
// four bytes. Codes shorter than the slot are NUL padded on the wire.
type Asset struct {
	Code   [12]byte
	Issuer [32]byte
	Type   AssetType
}

func (a *Asset) codeLen() int {
	if a.Type == ASSET_TYPE_CREDIT_ALPHANUM4 {
		return 4
	}
	return 12
}

// Price is the n/d rational of an offer.
type Price struct {
	N uint32
	D uint32
}

// SIGNED_PAYLOAD_MAX_SIZE bounds the payload of an Ed25519SignedPayload
// signer key.
const SIGNED_PAYLOAD_MAX_SIZE = 64

type Ed25519SignedPayload struct {
	Key        [32]byte
	PayloadLen int
	Payload    [SIGNED_PAYLOAD_MAX_SIZE]byte
}

// CLAIMABLE_BALANCE_ID_SIZE is the digest length of a claimable balance id.
const CLAIMABLE_BALANCE_ID_SIZE = 32

type ClaimableBalanceID struct {
	Type uint32
	Body [CLAIMABLE_BALANCE_ID_SIZE]byte
}
