// stellar-companion-cli reads one JSON request from stdin, dispatches on
// "op" and writes one JSON response to stdout. It drives the same code
// paths as the device: the decoder, the strkey codec and the APDU
// handlers.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/LedgerHQ/app-stellar-sub002/device"
	"github.com/LedgerHQ/app-stellar-sub002/stellar"
	"github.com/LedgerHQ/app-stellar-sub002/store"
)

type Request struct {
	Op string `json:"op"`

	TxHex string `json:"tx_hex,omitempty"`

	Kind       string `json:"kind,omitempty"`
	KeyHex     string `json:"key_hex,omitempty"`
	MuxID      uint64 `json:"mux_id,omitempty"`
	PayloadHex string `json:"payload_hex,omitempty"`

	Value     string `json:"value,omitempty"`
	Decimals  uint8  `json:"decimals,omitempty"`
	Separator bool   `json:"separator,omitempty"`

	Seconds uint64 `json:"seconds,omitempty"`

	Mnemonic   string `json:"mnemonic,omitempty"`
	Passphrase string `json:"passphrase,omitempty"`
	Path       string `json:"path,omitempty"`

	DBPath  string `json:"db_path,omitempty"`
	Address string `json:"address,omitempty"`
	Label   string `json:"label,omitempty"`
}

type ContentJSON struct {
	OpType    string    `json:"op_type"`
	TxDetails [4]string `json:"tx_details"`
	OpDetails [5]string `json:"op_details"`
}

type Response struct {
	Ok  bool   `json:"ok"`
	Err string `json:"err,omitempty"`

	Content   *ContentJSON `json:"content,omitempty"`
	Encoded   string       `json:"encoded,omitempty"`
	Formatted string       `json:"formatted,omitempty"`
	Time      string       `json:"time,omitempty"`

	PublicKey string `json:"public_key,omitempty"`
	Signature string `json:"signature,omitempty"`

	Label string `json:"label,omitempty"`
	Found bool   `json:"found,omitempty"`
}

func main() {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		fatalf("read stdin: %v", err)
	}
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		fatalf("decode request: %v", err)
	}

	resp := dispatch(&req)
	out, err := json.Marshal(resp)
	if err != nil {
		fatalf("encode response: %v", err)
	}
	fmt.Println(string(out))
}

func dispatch(req *Request) Response {
	switch req.Op {
	case "parse_tx":
		return opParseTx(req)
	case "encode_key":
		return opEncodeKey(req)
	case "format_amount":
		return opFormatAmount(req)
	case "print_time":
		return opPrintTime(req)
	case "sign_tx":
		return opSignTx(req)
	case "book_put":
		return opBookPut(req)
	case "book_get":
		return opBookGet(req)
	default:
		return errResp(fmt.Errorf("unknown op %q", req.Op))
	}
}

func errResp(err error) Response {
	return Response{Ok: false, Err: err.Error()}
}

func contentJSON(content *stellar.TxContent) *ContentJSON {
	out := &ContentJSON{OpType: content.OpType.String()}
	for i := range content.TxDetails {
		out.TxDetails[i] = content.TxDetails[i].String()
	}
	for i := range content.OpDetails {
		out.OpDetails[i] = content.OpDetails[i].String()
	}
	return out
}

func opParseTx(req *Request) Response {
	tx, err := hex.DecodeString(req.TxHex)
	if err != nil {
		return errResp(fmt.Errorf("tx_hex: %w", err))
	}
	var content stellar.TxContent
	if err := stellar.ParseTx(tx, &content); err != nil {
		return errResp(err)
	}
	return Response{Ok: true, Content: contentJSON(&content)}
}

func opEncodeKey(req *Request) Response {
	key, err := hex.DecodeString(req.KeyHex)
	if err != nil {
		return errResp(fmt.Errorf("key_hex: %w", err))
	}
	var encoded string
	switch req.Kind {
	case "public_key", "":
		encoded, err = stellar.EncodeED25519PublicKey(key)
	case "pre_auth_tx":
		encoded, err = stellar.EncodePreAuthTxKey(key)
	case "hash_x":
		encoded, err = stellar.EncodeHashXKey(key)
	case "contract":
		encoded, err = stellar.EncodeContract(key)
	case "muxed":
		encoded, err = stellar.EncodeMuxedAccount(key, req.MuxID)
	case "signed_payload":
		var payload []byte
		payload, err = hex.DecodeString(req.PayloadHex)
		if err != nil {
			return errResp(fmt.Errorf("payload_hex: %w", err))
		}
		encoded, err = stellar.EncodeSignedPayload(key, payload)
	default:
		return errResp(fmt.Errorf("unknown key kind %q", req.Kind))
	}
	if err != nil {
		return errResp(err)
	}
	return Response{Ok: true, Encoded: encoded}
}

func opFormatAmount(req *Request) Response {
	value, err := hex.DecodeString(req.Value)
	if err != nil {
		return errResp(fmt.Errorf("value: %w", err))
	}
	formatted, err := stellar.FormatUint(value, req.Decimals, req.Separator)
	if err != nil {
		return errResp(err)
	}
	return Response{Ok: true, Formatted: formatted}
}

func opPrintTime(req *Request) Response {
	s, err := stellar.PrintTime(req.Seconds)
	if err != nil {
		return errResp(err)
	}
	return Response{Ok: true, Time: s}
}

// opSignTx runs a full APDU round trip against an in-process device and
// records the signed hash when a db path is given.
func opSignTx(req *Request) Response {
	tx, err := hex.DecodeString(req.TxHex)
	if err != nil {
		return errResp(fmt.Errorf("tx_hex: %w", err))
	}
	if req.Mnemonic == "" {
		return errResp(fmt.Errorf("mnemonic required"))
	}
	pathStr := req.Path
	if pathStr == "" {
		pathStr = "m/44'/148'/0'"
	}
	path, err := device.ParsePathString(pathStr)
	if err != nil {
		return errResp(err)
	}

	keys := device.NewSeedKeyholder(device.SeedFromMnemonic(req.Mnemonic, req.Passphrase))
	dev := device.New(keys, device.AutoApprover{}, device.DefaultSettings())

	data := device.AppendPath(nil, path)
	data = append(data, tx...)
	if len(data) > 255 {
		return errResp(fmt.Errorf("tx too large for a single command"))
	}
	apdu := []byte{device.CLA, device.INS_SIGN_TX, device.P1_FIRST, device.P2_LAST, byte(len(data))}
	apdu = append(apdu, data...)

	resp := dev.Exchange(apdu)
	sw := uint16(resp[len(resp)-2])<<8 | uint16(resp[len(resp)-1])
	if sw != device.SW_OK {
		return errResp(fmt.Errorf("device rejected transaction: sw=%#04x", sw))
	}
	sig := resp[:len(resp)-2]

	pub, err := keys.PublicKey(path)
	if err != nil {
		return errResp(err)
	}

	if req.DBPath != "" {
		db, err := store.Open(req.DBPath)
		if err != nil {
			return errResp(err)
		}
		defer db.Close()
		content := dev.Content()
		rec := store.SignedRecord{
			Network:  content.TxDetails[stellar.TX_DETAIL_NETWORK].String(),
			Summary:  content.OpType.String() + ": " + content.OpDetails[0].String(),
			SignedAt: uint64(time.Now().Unix()),
		}
		if err := db.RecordSigned(sha256.Sum256(tx), rec); err != nil {
			return errResp(err)
		}
	}

	return Response{
		Ok:        true,
		Content:   contentJSON(dev.Content()),
		PublicKey: hex.EncodeToString(pub),
		Signature: hex.EncodeToString(sig),
	}
}

func opBookPut(req *Request) Response {
	if req.DBPath == "" {
		return errResp(fmt.Errorf("db_path required"))
	}
	db, err := store.Open(req.DBPath)
	if err != nil {
		return errResp(err)
	}
	defer db.Close()
	if err := db.PutLabel(req.Address, req.Label); err != nil {
		return errResp(err)
	}
	return Response{Ok: true}
}

func opBookGet(req *Request) Response {
	if req.DBPath == "" {
		return errResp(fmt.Errorf("db_path required"))
	}
	db, err := store.Open(req.DBPath)
	if err != nil {
		return errResp(err)
	}
	defer db.Close()
	label, found, err := db.Label(req.Address)
	if err != nil {
		return errResp(err)
	}
	return Response{Ok: true, Label: label, Found: found}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
