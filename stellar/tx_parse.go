package stellar

// XDR discriminants of the classic transaction envelope.
const (
	XDR_OPERATION_TYPE_CREATE_ACCOUNT       = 0
	XDR_OPERATION_TYPE_PAYMENT              = 1
	XDR_OPERATION_TYPE_PATH_PAYMENT         = 2
	XDR_OPERATION_TYPE_MANAGE_OFFER         = 3
	XDR_OPERATION_TYPE_CREATE_PASSIVE_OFFER = 4
	XDR_OPERATION_TYPE_SET_OPTIONS          = 5
	XDR_OPERATION_TYPE_CHANGE_TRUST         = 6
	XDR_OPERATION_TYPE_ALLOW_TRUST          = 7
	XDR_OPERATION_TYPE_ACCOUNT_MERGE        = 8
	XDR_OPERATION_TYPE_INFLATION            = 9
	XDR_OPERATION_TYPE_MANAGE_DATA          = 10

	XDR_PUBLIC_KEY_TYPE_ED25519 = 0
	XDR_MUXED_KEY_TYPE_MED25519 = 0x100

	XDR_MEMO_TYPE_NONE   = 0
	XDR_MEMO_TYPE_TEXT   = 1
	XDR_MEMO_TYPE_ID     = 2
	XDR_MEMO_TYPE_HASH   = 3
	XDR_MEMO_TYPE_RETURN = 4

	XDR_SIGNER_KEY_TYPE_ED25519     = 0
	XDR_SIGNER_KEY_TYPE_PRE_AUTH_TX = 1
	XDR_SIGNER_KEY_TYPE_HASH_X      = 2
)

// Variable-length field caps.
const (
	MEMO_TEXT_MAX_SIZE   = 28
	DATA_NAME_MAX_SIZE   = 64
	DATA_VALUE_MAX_SIZE  = 64
	HOME_DOMAIN_MAX_SIZE = 32
	PATH_MAX_ASSETS      = 5
)

// CHANGE_TRUST_MAX_LIMIT is displayed as "max".
const CHANGE_TRUST_MAX_LIMIT uint64 = 1<<63 - 1

// ParseTx decodes the signature base of a classic transaction envelope
// (network id, envelope type, transaction with exactly one operation)
// and fills content with display rows. On error, content must not be
// shown; no partial transaction ever reaches approval.
func ParseTx(b []byte, content *TxContent) error {
	content.Reset()
	off := 0

	networkID, err := readBytes(b, &off, 32)
	if err != nil {
		return err
	}
	network := NetworkFromID(networkID)
	if err := content.TxDetails[TX_DETAIL_NETWORK].setString(network.String()); err != nil {
		return err
	}

	// envelope type
	if _, err := readU32be(b, &off); err != nil {
		return err
	}

	source, err := readAccountID(b, &off)
	if err != nil {
		return err
	}
	src, err := PrintAccountID(source, SOURCE_SUMMARY_LEFT, SOURCE_SUMMARY_RIGHT)
	if err != nil {
		return err
	}
	if err := content.TxDetails[TX_DETAIL_SOURCE].setString(src); err != nil {
		return err
	}

	fee, err := readU32be(b, &off)
	if err != nil {
		return err
	}
	native := Asset{Type: ASSET_TYPE_NATIVE}
	feeStr, err := PrintAmount(uint64(fee), &native, network)
	if err != nil {
		return err
	}
	if err := content.TxDetails[TX_DETAIL_FEE].setString(feeStr); err != nil {
		return err
	}

	// sequence number
	if _, err := readU64be(b, &off); err != nil {
		return err
	}

	// time bounds are consumed but not displayed
	hasTimeBounds, err := readBool(b, &off)
	if err != nil {
		return err
	}
	if hasTimeBounds {
		if _, err := readU64be(b, &off); err != nil {
			return err
		}
		if _, err := readU64be(b, &off); err != nil {
			return err
		}
	}

	if err := parseMemo(b, &off, content); err != nil {
		return err
	}

	opCount, err := readU32be(b, &off)
	if err != nil {
		return err
	}
	if opCount != 1 {
		return serr(TX_ERR_MULTI_OPS_UNSUPPORTED, "operations count must be 1")
	}
	return parseOp(b, &off, network, content)
}

// readAccountID consumes a PublicKey union, which must carry the Ed25519
// arm.
func readAccountID(b []byte, off *int) ([]byte, error) {
	keyType, err := readU32be(b, off)
	if err != nil {
		return nil, err
	}
	if keyType != XDR_PUBLIC_KEY_TYPE_ED25519 {
		return nil, serr(TX_ERR_KEY_TYPE_UNSUPPORTED, "foreign account key type")
	}
	return readBytes(b, off, 32)
}

// readMuxedAccount consumes a MuxedAccount union: a bare Ed25519 key or
// a med25519 (id, key) pair.
func readMuxedAccount(b []byte, off *int, m *MuxedAccount) error {
	keyType, err := readU32be(b, off)
	if err != nil {
		return err
	}
	switch keyType {
	case XDR_PUBLIC_KEY_TYPE_ED25519:
		key, err := readBytes(b, off, 32)
		if err != nil {
			return err
		}
		copy(m.Key[:], key)
		m.ID = 0
		m.Muxed = false
		return nil
	case XDR_MUXED_KEY_TYPE_MED25519:
		id, err := readU64be(b, off)
		if err != nil {
			return err
		}
		key, err := readBytes(b, off, 32)
		if err != nil {
			return err
		}
		copy(m.Key[:], key)
		m.ID = id
		m.Muxed = true
		return nil
	default:
		return serr(TX_ERR_KEY_TYPE_UNSUPPORTED, "foreign muxed account key type")
	}
}

func readAsset(b []byte, off *int, a *Asset) error {
	assetType, err := readU32be(b, off)
	if err != nil {
		return err
	}
	switch assetType {
	case uint32(ASSET_TYPE_NATIVE):
		a.Type = ASSET_TYPE_NATIVE
		return nil
	case uint32(ASSET_TYPE_CREDIT_ALPHANUM4):
		a.Type = ASSET_TYPE_CREDIT_ALPHANUM4
		code, err := readBytes(b, off, 4)
		if err != nil {
			return err
		}
		for i := range a.Code {
			a.Code[i] = 0
		}
		copy(a.Code[:4], code)
	case uint32(ASSET_TYPE_CREDIT_ALPHANUM12):
		a.Type = ASSET_TYPE_CREDIT_ALPHANUM12
		code, err := readBytes(b, off, 12)
		if err != nil {
			return err
		}
		copy(a.Code[:], code)
	default:
		return serr(TX_ERR_ASSET_TYPE_UNKNOWN, "unknown asset type")
	}
	issuer, err := readAccountID(b, off)
	if err != nil {
		return err
	}
	copy(a.Issuer[:], issuer)
	return nil
}

func parseMemo(b []byte, off *int, content *TxContent) error {
	memoType, err := readU32be(b, off)
	if err != nil {
		return err
	}
	memo := &content.TxDetails[TX_DETAIL_MEMO]
	switch memoType {
	case XDR_MEMO_TYPE_NONE:
		return memo.setString("[none]")
	case XDR_MEMO_TYPE_ID:
		id, err := readU64be(b, off)
		if err != nil {
			return err
		}
		return memo.setString(printUint64Num(id))
	case XDR_MEMO_TYPE_TEXT:
		text, err := readVarOpaque(b, off, MEMO_TEXT_MAX_SIZE, "memo text")
		if err != nil {
			return err
		}
		return memo.setBytes(text)
	case XDR_MEMO_TYPE_HASH, XDR_MEMO_TYPE_RETURN:
		hash, err := readBytes(b, off, 32)
		if err != nil {
			return err
		}
		s, err := PrintBinary(hash, HASH_SUMMARY_LEFT, HASH_SUMMARY_RIGHT)
		if err != nil {
			return err
		}
		return memo.setString(s)
	default:
		return serr(TX_ERR_MEMO_TYPE_UNKNOWN, "unknown memo type")
	}
}

func parseOp(b []byte, off *int, network NetworkType, content *TxContent) error {
	hasSource, err := readBool(b, off)
	if err != nil {
		return err
	}
	if hasSource {
		source, err := readAccountID(b, off)
		if err != nil {
			return err
		}
		src, err := PrintAccountID(source, SOURCE_SUMMARY_LEFT, SOURCE_SUMMARY_RIGHT)
		if err != nil {
			return err
		}
		if err := content.TxDetails[TX_DETAIL_SOURCE].setString(src); err != nil {
			return err
		}
	}

	opType, err := readU32be(b, off)
	if err != nil {
		return err
	}
	switch opType {
	case XDR_OPERATION_TYPE_CREATE_ACCOUNT:
		content.OpType = OPERATION_TYPE_CREATE_ACCOUNT
		return parseCreateAccountOp(b, off, network, content)
	case XDR_OPERATION_TYPE_PAYMENT:
		content.OpType = OPERATION_TYPE_PAYMENT
		return parsePaymentOp(b, off, network, content)
	case XDR_OPERATION_TYPE_PATH_PAYMENT:
		content.OpType = OPERATION_TYPE_PATH_PAYMENT
		return parsePathPaymentOp(b, off, network, content)
	case XDR_OPERATION_TYPE_MANAGE_OFFER:
		return parseOfferOp(b, off, network, false, content)
	case XDR_OPERATION_TYPE_CREATE_PASSIVE_OFFER:
		return parseOfferOp(b, off, network, true, content)
	case XDR_OPERATION_TYPE_SET_OPTIONS:
		content.OpType = OPERATION_TYPE_SET_OPTIONS
		return parseSetOptionsOp(b, off, network, content)
	case XDR_OPERATION_TYPE_CHANGE_TRUST:
		return parseChangeTrustOp(b, off, network, content)
	case XDR_OPERATION_TYPE_ALLOW_TRUST:
		return parseAllowTrustOp(b, off, content)
	case XDR_OPERATION_TYPE_ACCOUNT_MERGE:
		content.OpType = OPERATION_TYPE_ACCOUNT_MERGE
		return parseAccountMergeOp(b, off, content)
	case XDR_OPERATION_TYPE_INFLATION:
		content.OpType = OPERATION_TYPE_INFLATION
		return content.OpDetails[0].setString("Inflation")
	case XDR_OPERATION_TYPE_MANAGE_DATA:
		return parseManageDataOp(b, off, content)
	default:
		return serr(TX_ERR_OP_TYPE_UNKNOWN, "unknown operation type")
	}
}

func parseCreateAccountOp(b []byte, off *int, network NetworkType, content *TxContent) error {
	destination, err := readAccountID(b, off)
	if err != nil {
		return err
	}
	dst, err := PrintAccountID(destination, ACCOUNT_SUMMARY_LEFT, ACCOUNT_SUMMARY_RIGHT)
	if err != nil {
		return err
	}
	if err := content.OpDetails[0].setString(dst); err != nil {
		return err
	}
	balance, err := readU64be(b, off)
	if err != nil {
		return err
	}
	native := Asset{Type: ASSET_TYPE_NATIVE}
	amount, err := PrintAmount(balance, &native, network)
	if err != nil {
		return err
	}
	return content.OpDetails[1].setString(amount)
}

func parsePaymentOp(b []byte, off *int, network NetworkType, content *TxContent) error {
	var destination MuxedAccount
	if err := readMuxedAccount(b, off, &destination); err != nil {
		return err
	}
	dst, err := PrintMuxedAccount(&destination, ACCOUNT_SUMMARY_LEFT, ACCOUNT_SUMMARY_RIGHT)
	if err != nil {
		return err
	}
	if err := content.OpDetails[1].setString(dst); err != nil {
		return err
	}
	var asset Asset
	if err := readAsset(b, off, &asset); err != nil {
		return err
	}
	amount, err := readU64be(b, off)
	if err != nil {
		return err
	}
	amt, err := PrintAmount(amount, &asset, network)
	if err != nil {
		return err
	}
	return content.OpDetails[0].setString(amt)
}

func parsePathPaymentOp(b []byte, off *int, network NetworkType, content *TxContent) error {
	var sendAsset Asset
	if err := readAsset(b, off, &sendAsset); err != nil {
		return err
	}
	sendMax, err := readU64be(b, off)
	if err != nil {
		return err
	}
	send, err := PrintAmount(sendMax, &sendAsset, network)
	if err != nil {
		return err
	}
	if err := content.OpDetails[0].setString(send); err != nil {
		return err
	}

	var destination MuxedAccount
	if err := readMuxedAccount(b, off, &destination); err != nil {
		return err
	}
	dst, err := PrintMuxedAccount(&destination, ACCOUNT_SUMMARY_LEFT, ACCOUNT_SUMMARY_RIGHT)
	if err != nil {
		return err
	}
	if err := content.OpDetails[1].setString(dst); err != nil {
		return err
	}

	var destAsset Asset
	if err := readAsset(b, off, &destAsset); err != nil {
		return err
	}
	destAmount, err := readU64be(b, off)
	if err != nil {
		return err
	}
	receive, err := PrintAmount(destAmount, &destAsset, network)
	if err != nil {
		return err
	}
	if err := content.OpDetails[2].setString(receive); err != nil {
		return err
	}

	pathLen, err := readU32be(b, off)
	if err != nil {
		return err
	}
	if pathLen > PATH_MAX_ASSETS {
		return serr(TX_ERR_OUT_OF_RANGE, "path length exceeds cap")
	}
	for i := uint32(0); i < pathLen; i++ {
		var hop Asset
		if err := readAsset(b, off, &hop); err != nil {
			return err
		}
		name, err := PrintAssetName(&hop, network)
		if err != nil {
			return err
		}
		if i > 0 {
			if err := content.OpDetails[3].appendString(", "); err != nil {
				return err
			}
		}
		if err := content.OpDetails[3].appendString(name); err != nil {
			return err
		}
	}
	return nil
}

// parseOfferOp handles both manage-offer and create-passive-offer. For
// manage-offer, offer_id == 0 creates, amount == 0 removes, anything
// else modifies.
func parseOfferOp(b []byte, off *int, network NetworkType, passive bool, content *TxContent) error {
	var selling, buying Asset
	if err := readAsset(b, off, &selling); err != nil {
		return err
	}
	if err := readAsset(b, off, &buying); err != nil {
		return err
	}
	amount, err := readU64be(b, off)
	if err != nil {
		return err
	}
	priceN, err := readU32be(b, off)
	if err != nil {
		return err
	}
	priceD, err := readU32be(b, off)
	if err != nil {
		return err
	}
	if priceD == 0 {
		return serr(TX_ERR_OUT_OF_RANGE, "offer price denominator is zero")
	}
	price := uint64(priceN) * 10_000_000 / uint64(priceD)

	var offerID uint64
	if !passive {
		offerID, err = readU64be(b, off)
		if err != nil {
			return err
		}
	}

	switch {
	case passive:
		content.OpType = OPERATION_TYPE_CREATE_OFFER
		if err := content.OpDetails[0].setString("passive"); err != nil {
			return err
		}
	case offerID == 0:
		content.OpType = OPERATION_TYPE_CREATE_OFFER
		if err := content.OpDetails[0].setString("non-passive"); err != nil {
			return err
		}
	case amount == 0:
		content.OpType = OPERATION_TYPE_REMOVE_OFFER
		return content.OpDetails[0].setString(printUint64Num(offerID))
	default:
		content.OpType = OPERATION_TYPE_CHANGE_OFFER
		if err := content.OpDetails[0].setString(printUint64Num(offerID)); err != nil {
			return err
		}
	}

	buyName, err := PrintAssetName(&buying, network)
	if err != nil {
		return err
	}
	if err := content.OpDetails[1].setString(buyName); err != nil {
		return err
	}
	if err := content.OpDetails[2].setString(printUint64Num(price)); err != nil {
		return err
	}
	sellAmount, err := PrintAmount(amount, &selling, network)
	if err != nil {
		return err
	}
	return content.OpDetails[3].setString(sellAmount)
}

// appendJoined grows a multi-valued slot, separating entries with "; ".
func appendJoined(d *Detail, s string) error {
	if d.Len() > 0 {
		if err := d.appendString("; "); err != nil {
			return err
		}
	}
	return d.appendString(s)
}

func parseSetOptionsOp(b []byte, off *int, network NetworkType, content *TxContent) error {
	hasInflationDest, err := readBool(b, off)
	if err != nil {
		return err
	}
	if hasInflationDest {
		dest, err := readAccountID(b, off)
		if err != nil {
			return err
		}
		s, err := PrintAccountID(dest, ACCOUNT_SUMMARY_LEFT, ACCOUNT_SUMMARY_RIGHT)
		if err != nil {
			return err
		}
		if err := content.OpDetails[0].setString(s); err != nil {
			return err
		}
	}

	for _, prefix := range []string{"clear: ", "set: "} {
		hasFlags, err := readBool(b, off)
		if err != nil {
			return err
		}
		if !hasFlags {
			continue
		}
		flags, err := readU32be(b, off)
		if err != nil {
			return err
		}
		if flags == 0 {
			continue
		}
		if err := appendJoined(&content.OpDetails[1], prefix+PrintFlags(flags, FLAGS_ACCOUNT)); err != nil {
			return err
		}
	}

	for _, prefix := range []string{"master weight: ", "low: ", "med: ", "high: "} {
		hasValue, err := readBool(b, off)
		if err != nil {
			return err
		}
		if !hasValue {
			continue
		}
		value, err := readU32be(b, off)
		if err != nil {
			return err
		}
		if err := appendJoined(&content.OpDetails[2], prefix+printUint64Num(uint64(value))); err != nil {
			return err
		}
	}

	hasHomeDomain, err := readBool(b, off)
	if err != nil {
		return err
	}
	if hasHomeDomain {
		domain, err := readVarOpaque(b, off, HOME_DOMAIN_MAX_SIZE, "home domain")
		if err != nil {
			return err
		}
		if err := content.OpDetails[3].setBytes(domain); err != nil {
			return err
		}
	}

	hasSigner, err := readBool(b, off)
	if err != nil {
		return err
	}
	if hasSigner {
		signerType, err := readU32be(b, off)
		if err != nil {
			return err
		}
		key, err := readBytes(b, off, 32)
		if err != nil {
			return err
		}
		signer := &content.OpDetails[4]
		switch signerType {
		case XDR_SIGNER_KEY_TYPE_ED25519:
			s, err := PrintAccountID(key, ACCOUNT_SUMMARY_LEFT, ACCOUNT_SUMMARY_RIGHT)
			if err != nil {
				return err
			}
			if err := signer.setString("pk: " + s); err != nil {
				return err
			}
		case XDR_SIGNER_KEY_TYPE_PRE_AUTH_TX:
			s, err := PrintBinary(key, HASH_SUMMARY_LEFT, HASH_SUMMARY_RIGHT)
			if err != nil {
				return err
			}
			if err := signer.setString("pre-auth: " + s); err != nil {
				return err
			}
		case XDR_SIGNER_KEY_TYPE_HASH_X:
			s, err := PrintBinary(key, HASH_SUMMARY_LEFT, HASH_SUMMARY_RIGHT)
			if err != nil {
				return err
			}
			if err := signer.setString("hash(x): " + s); err != nil {
				return err
			}
		default:
			return serr(TX_ERR_SIGNER_TYPE_UNKNOWN, "unknown signer key type")
		}
		weight, err := readU32be(b, off)
		if err != nil {
			return err
		}
		if err := signer.appendString("; weight: " + printUint64Num(uint64(weight))); err != nil {
			return err
		}
	}
	return nil
}

func parseChangeTrustOp(b []byte, off *int, network NetworkType, content *TxContent) error {
	var asset Asset
	if err := readAsset(b, off, &asset); err != nil {
		return err
	}
	line, err := PrintAsset(&asset, network)
	if err != nil {
		return err
	}
	if err := content.OpDetails[0].setString(line); err != nil {
		return err
	}
	limit, err := readU64be(b, off)
	if err != nil {
		return err
	}
	if limit == 0 {
		content.OpType = OPERATION_TYPE_REMOVE_TRUST
		return nil
	}
	content.OpType = OPERATION_TYPE_CHANGE_TRUST
	if limit == CHANGE_TRUST_MAX_LIMIT {
		return content.OpDetails[1].setString("max")
	}
	s, err := formatUint64(limit, 7, true)
	if err != nil {
		return err
	}
	return content.OpDetails[1].setString(s)
}

func parseAllowTrustOp(b []byte, off *int, content *TxContent) error {
	trustor, err := readAccountID(b, off)
	if err != nil {
		return err
	}
	s, err := PrintAccountID(trustor, ACCOUNT_SUMMARY_LEFT, ACCOUNT_SUMMARY_RIGHT)
	if err != nil {
		return err
	}
	if err := content.OpDetails[1].setString(s); err != nil {
		return err
	}

	// AllowTrustOp carries a bare asset code with no issuer.
	assetType, err := readU32be(b, off)
	if err != nil {
		return err
	}
	var codeLen int
	switch assetType {
	case uint32(ASSET_TYPE_CREDIT_ALPHANUM4):
		codeLen = 4
	case uint32(ASSET_TYPE_CREDIT_ALPHANUM12):
		codeLen = 12
	default:
		return serr(TX_ERR_ASSET_TYPE_UNKNOWN, "unknown asset type")
	}
	code, err := readBytes(b, off, codeLen)
	if err != nil {
		return err
	}
	n := 0
	for n < len(code) && code[n] != 0 {
		n++
	}
	if err := content.OpDetails[0].setBytes(code[:n]); err != nil {
		return err
	}

	authorize, err := readU32be(b, off)
	if err != nil {
		return err
	}
	if authorize != 0 {
		content.OpType = OPERATION_TYPE_ALLOW_TRUST
	} else {
		content.OpType = OPERATION_TYPE_REVOKE_TRUST
	}
	return nil
}

func parseAccountMergeOp(b []byte, off *int, content *TxContent) error {
	var destination MuxedAccount
	if err := readMuxedAccount(b, off, &destination); err != nil {
		return err
	}
	s, err := PrintMuxedAccount(&destination, ACCOUNT_SUMMARY_LEFT, ACCOUNT_SUMMARY_RIGHT)
	if err != nil {
		return err
	}
	return content.OpDetails[0].setString(s)
}

func parseManageDataOp(b []byte, off *int, content *TxContent) error {
	name, err := readVarOpaque(b, off, DATA_NAME_MAX_SIZE, "data name")
	if err != nil {
		return err
	}
	if err := content.OpDetails[0].setBytes(name); err != nil {
		return err
	}
	value, err := readVarOpaque(b, off, DATA_VALUE_MAX_SIZE, "data value")
	if err != nil {
		return err
	}
	if len(value) == 0 {
		content.OpType = OPERATION_TYPE_REMOVE_DATA
		return nil
	}
	content.OpType = OPERATION_TYPE_SET_DATA
	return content.OpDetails[1].setString("<binary data>")
}
