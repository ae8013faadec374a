package stellar

import "testing"

func parseErr(t *testing.T, b []byte) ErrorCode {
	t.Helper()
	var content TxContent
	err := ParseTx(b, &content)
	return mustErrCode(t, err)
}

func TestParseTx_MemoTextExceedsCap(t *testing.T) {
	b := beginTxEnvelope(PublicNetworkID(), fillKey(0), 100)
	b = AppendU32be(b, XDR_MEMO_TYPE_TEXT)
	b = AppendVarOpaque(b, make([]byte, 29))
	b = appendOp(b, XDR_OPERATION_TYPE_INFLATION)
	if got := parseErr(t, b); got != TX_ERR_OUT_OF_RANGE {
		t.Fatalf("code=%s, want %s", got, TX_ERR_OUT_OF_RANGE)
	}
}

func TestParseTx_MemoTextBadPadding(t *testing.T) {
	b := beginTxEnvelope(PublicNetworkID(), fillKey(0), 100)
	b = AppendU32be(b, XDR_MEMO_TYPE_TEXT)
	b = AppendU32be(b, 5)
	b = append(b, 'h', 'e', 'l', 'l', 'o', 0x01, 0x00, 0x00)
	b = appendOp(b, XDR_OPERATION_TYPE_INFLATION)
	if got := parseErr(t, b); got != TX_ERR_BAD_PADDING {
		t.Fatalf("code=%s, want %s", got, TX_ERR_BAD_PADDING)
	}
}

func TestParseTx_UnknownMemoType(t *testing.T) {
	b := beginTxEnvelope(PublicNetworkID(), fillKey(0), 100)
	b = AppendU32be(b, 9)
	b = appendOp(b, XDR_OPERATION_TYPE_INFLATION)
	if got := parseErr(t, b); got != TX_ERR_MEMO_TYPE_UNKNOWN {
		t.Fatalf("code=%s, want %s", got, TX_ERR_MEMO_TYPE_UNKNOWN)
	}
}

func TestParseTx_OperationCountNotOne(t *testing.T) {
	for _, count := range []uint32{0, 2, 100} {
		b := beginTxEnvelope(PublicNetworkID(), fillKey(0), 100)
		b = appendMemoNone(b)
		b = AppendU32be(b, count)
		if got := parseErr(t, b); got != TX_ERR_MULTI_OPS_UNSUPPORTED {
			t.Fatalf("count %d: code=%s, want %s", count, got, TX_ERR_MULTI_OPS_UNSUPPORTED)
		}
	}
}

func TestParseTx_UnknownOperationType(t *testing.T) {
	b := beginTxEnvelope(PublicNetworkID(), fillKey(0), 100)
	b = appendMemoNone(b)
	b = appendOp(b, 99)
	if got := parseErr(t, b); got != TX_ERR_OP_TYPE_UNKNOWN {
		t.Fatalf("code=%s, want %s", got, TX_ERR_OP_TYPE_UNKNOWN)
	}
}

func TestParseTx_ForeignSourceKeyType(t *testing.T) {
	id := PublicNetworkID()
	b := AppendOpaque(nil, id[:])
	b = AppendU32be(b, 2)
	b = AppendU32be(b, 1) // not ed25519
	b = AppendOpaque(b, func() []byte { k := fillKey(0); return k[:] }())
	if got := parseErr(t, b); got != TX_ERR_KEY_TYPE_UNSUPPORTED {
		t.Fatalf("code=%s, want %s", got, TX_ERR_KEY_TYPE_UNSUPPORTED)
	}
}

func TestParseTx_ForeignIssuerKeyType(t *testing.T) {
	b := beginTxEnvelope(PublicNetworkID(), fillKey(0), 100)
	b = appendMemoNone(b)
	b = appendOp(b, XDR_OPERATION_TYPE_CHANGE_TRUST)
	b = AppendU32be(b, uint32(ASSET_TYPE_CREDIT_ALPHANUM4))
	b = AppendOpaque(b, []byte{'U', 'S', 'D', 0})
	b = AppendU32be(b, 2) // issuer key type
	b = AppendOpaque(b, func() []byte { k := fillKey(2); return k[:] }())
	b = AppendU64be(b, 1)
	if got := parseErr(t, b); got != TX_ERR_KEY_TYPE_UNSUPPORTED {
		t.Fatalf("code=%s, want %s", got, TX_ERR_KEY_TYPE_UNSUPPORTED)
	}
}

func TestParseTx_UnknownAssetType(t *testing.T) {
	b := beginTxEnvelope(PublicNetworkID(), fillKey(0), 100)
	b = appendMemoNone(b)
	b = appendOp(b, XDR_OPERATION_TYPE_PAYMENT)
	b = appendAccountID(b, fillKey(1))
	b = AppendU32be(b, 3)
	if got := parseErr(t, b); got != TX_ERR_ASSET_TYPE_UNKNOWN {
		t.Fatalf("code=%s, want %s", got, TX_ERR_ASSET_TYPE_UNKNOWN)
	}
}

func TestParseTx_UnknownSignerType(t *testing.T) {
	b := beginTxEnvelope(PublicNetworkID(), fillKey(0), 100)
	b = appendMemoNone(b)
	b = appendOp(b, XDR_OPERATION_TYPE_SET_OPTIONS)
	for i := 0; i < 8; i++ {
		b = AppendU32be(b, 0)
	}
	b = AppendU32be(b, 1) // signer present
	b = AppendU32be(b, 3) // unknown signer key type
	b = AppendOpaque(b, func() []byte { k := seqKey(); return k[:] }())
	b = AppendU32be(b, 1)
	if got := parseErr(t, b); got != TX_ERR_SIGNER_TYPE_UNKNOWN {
		t.Fatalf("code=%s, want %s", got, TX_ERR_SIGNER_TYPE_UNKNOWN)
	}
}

func TestParseTx_HomeDomainExceedsCap(t *testing.T) {
	b := beginTxEnvelope(PublicNetworkID(), fillKey(0), 100)
	b = appendMemoNone(b)
	b = appendOp(b, XDR_OPERATION_TYPE_SET_OPTIONS)
	for i := 0; i < 7; i++ {
		b = AppendU32be(b, 0)
	}
	b = AppendU32be(b, 1) // home domain present
	b = AppendVarOpaque(b, make([]byte, 33))
	b = AppendU32be(b, 0) // no signer
	if got := parseErr(t, b); got != TX_ERR_OUT_OF_RANGE {
		t.Fatalf("code=%s, want %s", got, TX_ERR_OUT_OF_RANGE)
	}
}

func TestParseTx_DataNameExceedsCap(t *testing.T) {
	b := beginTxEnvelope(PublicNetworkID(), fillKey(0), 100)
	b = appendMemoNone(b)
	b = appendOp(b, XDR_OPERATION_TYPE_MANAGE_DATA)
	b = AppendVarOpaque(b, make([]byte, 65))
	b = AppendVarOpaque(b, nil)
	if got := parseErr(t, b); got != TX_ERR_OUT_OF_RANGE {
		t.Fatalf("code=%s, want %s", got, TX_ERR_OUT_OF_RANGE)
	}
}

func TestParseTx_PathExceedsCap(t *testing.T) {
	b := beginTxEnvelope(PublicNetworkID(), fillKey(0), 100)
	b = appendMemoNone(b)
	b = appendOp(b, XDR_OPERATION_TYPE_PATH_PAYMENT)
	b = appendNativeAsset(b)
	b = AppendU64be(b, 1)
	b = appendAccountID(b, fillKey(1))
	b = appendNativeAsset(b)
	b = AppendU64be(b, 1)
	b = AppendU32be(b, 6) // path longer than the cap
	if got := parseErr(t, b); got != TX_ERR_OUT_OF_RANGE {
		t.Fatalf("code=%s, want %s", got, TX_ERR_OUT_OF_RANGE)
	}
}

func TestParseTx_OfferZeroDenominator(t *testing.T) {
	b := beginTxEnvelope(PublicNetworkID(), fillKey(0), 100)
	b = appendMemoNone(b)
	b = appendOp(b, XDR_OPERATION_TYPE_MANAGE_OFFER)
	b = appendNativeAsset(b)
	b = appendAlphanum4(b, "USD", fillKey(2))
	b = AppendU64be(b, 1)
	b = AppendU32be(b, 1)
	b = AppendU32be(b, 0)
	b = AppendU64be(b, 0)
	if got := parseErr(t, b); got != TX_ERR_OUT_OF_RANGE {
		t.Fatalf("code=%s, want %s", got, TX_ERR_OUT_OF_RANGE)
	}
}

func TestParseTx_Truncated(t *testing.T) {
	b := beginTxEnvelope(PublicNetworkID(), fillKey(0), 100)
	b = appendMemoNone(b)
	b = appendOp(b, XDR_OPERATION_TYPE_PAYMENT)
	b = appendAccountID(b, fillKey(1))
	b = appendNativeAsset(b)
	b = AppendU64be(b, 10000000)

	// every strict prefix must fail with a hard error, never panic
	for n := 0; n < len(b); n++ {
		var content TxContent
		err := ParseTx(b[:n], &content)
		if err == nil {
			t.Fatalf("prefix of %d bytes parsed successfully", n)
		}
	}
}

func TestParseTx_ErrorClearsPriorContent(t *testing.T) {
	good := beginTxEnvelope(PublicNetworkID(), fillKey(0), 100)
	good = appendMemoNone(good)
	good = appendOp(good, XDR_OPERATION_TYPE_INFLATION)

	var content TxContent
	if err := ParseTx(good, &content); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if content.OpDetails[0].Empty() {
		t.Fatalf("expected populated content")
	}

	if err := ParseTx(good[:10], &content); err == nil {
		t.Fatalf("expected error")
	}
	if !content.OpDetails[0].Empty() || content.OpType != OPERATION_TYPE_UNKNOWN {
		t.Fatalf("prior content must be cleared on reparse")
	}
}
