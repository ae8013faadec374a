package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LedgerHQ/app-stellar-sub002/stellar"
)

// The generator rebuilds conformance/fixtures deterministically: each
// vector's envelope comes from the append helpers and its expectation
// comes from running the decoder on those exact bytes, so the fixtures
// always describe what the implementation actually does.

type Expectation struct {
	Ok        bool     `json:"ok"`
	ErrorCode string   `json:"error_code,omitempty"`
	OpType    string   `json:"op_type,omitempty"`
	TxDetails []string `json:"tx_details,omitempty"`
	OpDetails []string `json:"op_details,omitempty"`
}

type Vector struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	TxHex       string      `json:"tx_hex"`
	Expect      Expectation `json:"expect"`
}

type FixtureFile struct {
	Vectors []Vector `json:"vectors"`
}

func fillKey(v byte) [32]byte {
	var k [32]byte
	for i := range k {
		k[i] = v
	}
	return k
}

func appendAccountID(b []byte, key [32]byte) []byte {
	b = stellar.AppendU32be(b, stellar.XDR_PUBLIC_KEY_TYPE_ED25519)
	return stellar.AppendOpaque(b, key[:])
}

func appendAlphanum4(b []byte, code string, issuer [32]byte) []byte {
	b = stellar.AppendU32be(b, uint32(stellar.ASSET_TYPE_CREDIT_ALPHANUM4))
	var c [4]byte
	copy(c[:], code)
	b = stellar.AppendOpaque(b, c[:])
	return appendAccountID(b, issuer)
}

func beginTxEnvelope(network [32]byte, source [32]byte, fee uint32) []byte {
	b := stellar.AppendOpaque(nil, network[:])
	b = stellar.AppendU32be(b, 2)
	b = appendAccountID(b, source)
	b = stellar.AppendU32be(b, fee)
	b = stellar.AppendU64be(b, 1)
	b = stellar.AppendU32be(b, 0)
	return b
}

func appendOp(b []byte, opType uint32) []byte {
	b = stellar.AppendU32be(b, 1)
	b = stellar.AppendU32be(b, 0)
	return stellar.AppendU32be(b, opType)
}

func expectFor(tx []byte) Expectation {
	var content stellar.TxContent
	if err := stellar.ParseTx(tx, &content); err != nil {
		se, ok := err.(*stellar.Error)
		if !ok {
			panic(fmt.Sprintf("decoder returned a foreign error: %v", err))
		}
		return Expectation{Ok: false, ErrorCode: string(se.Code)}
	}
	exp := Expectation{
		Ok:        true,
		OpType:    content.OpType.String(),
		TxDetails: make([]string, len(content.TxDetails)),
		OpDetails: make([]string, len(content.OpDetails)),
	}
	for i := range content.TxDetails {
		exp.TxDetails[i] = content.TxDetails[i].String()
	}
	for i := range content.OpDetails {
		exp.OpDetails[i] = content.OpDetails[i].String()
	}
	return exp
}

func buildVectors() []Vector {
	keyA := fillKey(0)
	keyB := fillKey(1)
	keyC := fillKey(2)

	var vectors []Vector
	add := func(name, description string, tx []byte) {
		vectors = append(vectors, Vector{
			Name:        name,
			Description: description,
			TxHex:       hex.EncodeToString(tx),
			Expect:      expectFor(tx),
		})
	}

	tx := beginTxEnvelope(stellar.PublicNetworkID(), keyA, 100)
	tx = stellar.AppendU32be(tx, stellar.XDR_MEMO_TYPE_NONE)
	tx = appendOp(tx, stellar.XDR_OPERATION_TYPE_PAYMENT)
	tx = appendAccountID(tx, keyB)
	tx = stellar.AppendU32be(tx, uint32(stellar.ASSET_TYPE_NATIVE))
	tx = stellar.AppendU64be(tx, 10000000)
	add("payment-native-public", "One-lumen payment on the public network", tx)

	tx = beginTxEnvelope(stellar.PublicNetworkID(), keyA, 100)
	tx = stellar.AppendU32be(tx, stellar.XDR_MEMO_TYPE_TEXT)
	tx = stellar.AppendVarOpaque(tx, []byte("hello"))
	tx = appendOp(tx, stellar.XDR_OPERATION_TYPE_CREATE_ACCOUNT)
	tx = appendAccountID(tx, keyC)
	tx = stellar.AppendU64be(tx, 500000000)
	add("create-account-memo-text", "Create account funded with 50 XLM, text memo", tx)

	tx = beginTxEnvelope(stellar.PublicNetworkID(), keyA, 100)
	tx = stellar.AppendU32be(tx, stellar.XDR_MEMO_TYPE_NONE)
	tx = appendOp(tx, stellar.XDR_OPERATION_TYPE_CHANGE_TRUST)
	tx = appendAlphanum4(tx, "USD", keyC)
	tx = stellar.AppendU64be(tx, stellar.CHANGE_TRUST_MAX_LIMIT)
	add("change-trust-max", "Trust line with the maximum limit", tx)

	var hash [32]byte
	for i := range hash {
		hash[i] = byte(i)
	}
	tx = beginTxEnvelope(stellar.TestNetworkID(), keyA, 100)
	tx = stellar.AppendU32be(tx, stellar.XDR_MEMO_TYPE_HASH)
	tx = stellar.AppendOpaque(tx, hash[:])
	tx = appendOp(tx, stellar.XDR_OPERATION_TYPE_INFLATION)
	add("inflation-memo-hash-testnet", "Inflation with a hash memo on the test network", tx)

	tx = beginTxEnvelope(stellar.PublicNetworkID(), keyA, 100)
	tx = stellar.AppendU32be(tx, stellar.XDR_MEMO_TYPE_NONE)
	tx = stellar.AppendU32be(tx, 2)
	add("multiple-operations-rejected", "Two operations must be refused", tx)

	tx = beginTxEnvelope(stellar.PublicNetworkID(), keyA, 100)
	tx = stellar.AppendU32be(tx, stellar.XDR_MEMO_TYPE_TEXT)
	tx = stellar.AppendU32be(tx, 5)
	tx = append(tx, 'h', 'e', 'l', 'l', 'o', 0x01, 0x00, 0x00)
	tx = appendOp(tx, stellar.XDR_OPERATION_TYPE_INFLATION)
	add("memo-text-bad-padding", "Non-zero memo padding must be refused", tx)

	return vectors
}

func run(outDir string) error {
	file := FixtureFile{Vectors: buildVectors()}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode fixtures: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(outDir, "TX-PARSE-BASIC.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %d vectors to %s\n", len(file.Vectors), path)
	return nil
}
