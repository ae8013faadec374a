package stellar

import "time"

const hexChars = "0123456789ABCDEF"

// Summary lengths used by the transaction decoder: transaction and
// operation sources keep more context than row-level accounts, hashes
// are elided over their hex form.
const (
	SOURCE_SUMMARY_LEFT   = 6
	SOURCE_SUMMARY_RIGHT  = 5
	ACCOUNT_SUMMARY_LEFT  = 3
	ACCOUNT_SUMMARY_RIGHT = 3
	ISSUER_SUMMARY_LEFT   = 3
	ISSUER_SUMMARY_RIGHT  = 4
	HASH_SUMMARY_LEFT     = 6
	HASH_SUMMARY_RIGHT    = 6
)

// BINARY_MAX_SIZE bounds the opaque values rendered as hex; the largest
// is a claimable balance id (4-byte tag + 32-byte digest).
const BINARY_MAX_SIZE = 36

// MAX_DISPLAY_TIME is 9999-12-31 23:59:59 UTC.
const MAX_DISPLAY_TIME = 253402300799

// Summary elides in to left + ".." + right characters when it is longer
// than that; shorter inputs pass through unchanged.
func Summary(in string, left, right int) string {
	if len(in) > left+right+2 {
		return in[:left] + ".." + in[len(in)-right:]
	}
	return in
}

// PrintBinary renders in as uppercase hex, elided when left > 0.
func PrintBinary(in []byte, left, right int) (string, error) {
	if len(in) > BINARY_MAX_SIZE {
		return "", serr(TX_ERR_OUT_OF_RANGE, "binary value too long to render")
	}
	var buf [BINARY_MAX_SIZE * 2]byte
	for i, b := range in {
		buf[2*i] = hexChars[b>>4]
		buf[2*i+1] = hexChars[b&0x0f]
	}
	s := string(buf[:2*len(in)])
	if left > 0 {
		return Summary(s, left, right), nil
	}
	return s, nil
}

// PrintTime renders a Unix second count as UTC "YYYY-MM-DD hh:mm:ss".
func PrintTime(seconds uint64) (string, error) {
	if seconds > MAX_DISPLAY_TIME {
		return "", serr(TX_ERR_OUT_OF_RANGE, "timestamp past year 9999")
	}
	return time.Unix(int64(seconds), 0).UTC().Format("2006-01-02 15:04:05"), nil
}

// PrintAccountID encodes raw as a G key, elided when left > 0.
func PrintAccountID(raw []byte, left, right int) (string, error) {
	s, err := EncodeED25519PublicKey(raw)
	if err != nil {
		return "", err
	}
	if left > 0 {
		return Summary(s, left, right), nil
	}
	return s, nil
}

func PrintContractID(raw []byte, left, right int) (string, error) {
	s, err := EncodeContract(raw)
	if err != nil {
		return "", err
	}
	if left > 0 {
		return Summary(s, left, right), nil
	}
	return s, nil
}

func PrintHashXKey(raw []byte, left, right int) (string, error) {
	s, err := EncodeHashXKey(raw)
	if err != nil {
		return "", err
	}
	if left > 0 {
		return Summary(s, left, right), nil
	}
	return s, nil
}

func PrintPreAuthTxKey(raw []byte, left, right int) (string, error) {
	s, err := EncodePreAuthTxKey(raw)
	if err != nil {
		return "", err
	}
	if left > 0 {
		return Summary(s, left, right), nil
	}
	return s, nil
}

func PrintMuxedAccount(m *MuxedAccount, left, right int) (string, error) {
	s, err := m.Encode()
	if err != nil {
		return "", err
	}
	if left > 0 {
		return Summary(s, left, right), nil
	}
	return s, nil
}

func PrintSignedPayload(sp *Ed25519SignedPayload, left, right int) (string, error) {
	if sp.PayloadLen < 0 || sp.PayloadLen > SIGNED_PAYLOAD_MAX_SIZE {
		return "", serr(TX_ERR_OUT_OF_RANGE, "signed payload length out of range")
	}
	s, err := EncodeSignedPayload(sp.Key[:], sp.Payload[:sp.PayloadLen])
	if err != nil {
		return "", err
	}
	if left > 0 {
		return Summary(s, left, right), nil
	}
	return s, nil
}

// PrintClaimableBalanceID renders tag(4, big-endian) || digest as hex.
func PrintClaimableBalanceID(id *ClaimableBalanceID, left, right int) (string, error) {
	var data [4 + CLAIMABLE_BALANCE_ID_SIZE]byte
	data[0] = byte(id.Type >> 24)
	data[1] = byte(id.Type >> 16)
	data[2] = byte(id.Type >> 8)
	data[3] = byte(id.Type)
	copy(data[4:], id.Body[:])
	return PrintBinary(data[:], left, right)
}

// PrintAssetName renders the bare asset code. Native is "XLM", or
// "native" when the network is not recognized, so an unknown network can
// never dress a foreign token up as lumens.
func PrintAssetName(a *Asset, network NetworkType) (string, error) {
	switch a.Type {
	case ASSET_TYPE_NATIVE:
		if network == NETWORK_TYPE_UNKNOWN {
			return "native", nil
		}
		return "XLM", nil
	case ASSET_TYPE_CREDIT_ALPHANUM4, ASSET_TYPE_CREDIT_ALPHANUM12:
		code := a.Code[:a.codeLen()]
		n := 0
		for n < len(code) && code[n] != 0 {
			n++
		}
		return string(code[:n]), nil
	default:
		return "", serr(TX_ERR_ASSET_TYPE_UNKNOWN, "unknown asset type")
	}
}

// PrintAsset renders CODE for native and CODE@ISSUER_SUMMARY otherwise.
func PrintAsset(a *Asset, network NetworkType) (string, error) {
	name, err := PrintAssetName(a, network)
	if err != nil {
		return "", err
	}
	if a.Type == ASSET_TYPE_NATIVE {
		return name, nil
	}
	issuer, err := EncodeED25519PublicKey(a.Issuer[:])
	if err != nil {
		return "", err
	}
	return name + "@" + Summary(issuer, ISSUER_SUMMARY_LEFT, ISSUER_SUMMARY_RIGHT), nil
}

// PrintAmount renders a stroop count at the native 7-decimal scale with
// thousands separators, qualified with the asset when one is given.
func PrintAmount(amount uint64, a *Asset, network NetworkType) (string, error) {
	s, err := formatUint64(amount, 7, true)
	if err != nil {
		return "", err
	}
	if a == nil {
		return s, nil
	}
	asset, err := PrintAsset(a, network)
	if err != nil {
		return "", err
	}
	return s + " " + asset, nil
}

// PrintPrice renders n·10⁷/d at the 7-decimal scale, followed by
// " A/B" when both assets are supplied.
func PrintPrice(p Price, a, b *Asset, network NetworkType) (string, error) {
	if p.D == 0 {
		return "", serr(TX_ERR_OUT_OF_RANGE, "price denominator is zero")
	}
	scaled := uint64(p.N) * 10_000_000 / uint64(p.D)
	out, err := PrintAmount(scaled, nil, network)
	if err != nil {
		return "", err
	}
	if a != nil && b != nil {
		an, err := PrintAssetName(a, network)
		if err != nil {
			return "", err
		}
		bn, err := PrintAssetName(b, network)
		if err != nil {
			return "", err
		}
		out += " " + an + "/" + bn
	}
	return out, nil
}

// Account and trust line flag masks.
const (
	AUTH_REQUIRED_FLAG         uint32 = 1
	AUTH_REVOCABLE_FLAG        uint32 = 2
	AUTH_IMMUTABLE_FLAG        uint32 = 4
	AUTH_CLAWBACK_ENABLED_FLAG uint32 = 8

	AUTHORIZED_FLAG                         uint32 = 1
	AUTHORIZED_TO_MAINTAIN_LIABILITIES_FLAG uint32 = 2
	TRUSTLINE_CLAWBACK_ENABLED_FLAG         uint32 = 4
)

type FlagKind uint8

const (
	FLAGS_ACCOUNT FlagKind = iota
	FLAGS_TRUST_LINE
)

type flagName struct {
	bit  uint32
	name string
}

var accountFlagNames = []flagName{
	{AUTH_REQUIRED_FLAG, "AUTH_REQUIRED"},
	{AUTH_REVOCABLE_FLAG, "AUTH_REVOCABLE"},
	{AUTH_IMMUTABLE_FLAG, "AUTH_IMMUTABLE"},
	{AUTH_CLAWBACK_ENABLED_FLAG, "AUTH_CLAWBACK_ENABLED"},
}

var trustLineFlagNames = []flagName{
	{AUTHORIZED_FLAG, "AUTHORIZED"},
	{AUTHORIZED_TO_MAINTAIN_LIABILITIES_FLAG, "AUTHORIZED_TO_MAINTAIN_LIABILITIES"},
	{TRUSTLINE_CLAWBACK_ENABLED_FLAG, "TRUSTLINE_CLAWBACK_ENABLED"},
}

// PrintFlags renders the named bits of mask as a ", "-separated list.
// Bits outside the dictionary are not rendered.
func PrintFlags(mask uint32, kind FlagKind) string {
	dict := accountFlagNames
	if kind == FLAGS_TRUST_LINE {
		dict = trustLineFlagNames
	}
	out := ""
	for _, f := range dict {
		if mask&f.bit == 0 {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += f.name
	}
	return out
}

// PrintAllowTrustFlags picks a single authorization level by precedence.
func PrintAllowTrustFlags(mask uint32) string {
	switch {
	case mask&AUTHORIZED_FLAG != 0:
		return "AUTHORIZED"
	case mask&AUTHORIZED_TO_MAINTAIN_LIABILITIES_FLAG != 0:
		return "AUTHORIZED_TO_MAINTAIN_LIABILITIES"
	default:
		return "UNAUTHORIZED"
	}
}

// IsPrintable reports whether every byte is printable ASCII.
func IsPrintable(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}
