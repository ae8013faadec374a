package stellar

import "fmt"

type ErrorCode string

const (
	TX_ERR_TRUNCATED             ErrorCode = "TX_ERR_TRUNCATED"
	TX_ERR_BAD_PADDING           ErrorCode = "TX_ERR_BAD_PADDING"
	TX_ERR_OUT_OF_RANGE          ErrorCode = "TX_ERR_OUT_OF_RANGE"
	TX_ERR_KEY_TYPE_UNSUPPORTED  ErrorCode = "TX_ERR_KEY_TYPE_UNSUPPORTED"
	TX_ERR_MEMO_TYPE_UNKNOWN     ErrorCode = "TX_ERR_MEMO_TYPE_UNKNOWN"
	TX_ERR_ASSET_TYPE_UNKNOWN    ErrorCode = "TX_ERR_ASSET_TYPE_UNKNOWN"
	TX_ERR_OP_TYPE_UNKNOWN       ErrorCode = "TX_ERR_OP_TYPE_UNKNOWN"
	TX_ERR_SIGNER_TYPE_UNKNOWN   ErrorCode = "TX_ERR_SIGNER_TYPE_UNKNOWN"
	TX_ERR_MULTI_OPS_UNSUPPORTED ErrorCode = "TX_ERR_MULTI_OPS_UNSUPPORTED"

	STR_ERR_BUFFER_TOO_SMALL ErrorCode = "STR_ERR_BUFFER_TOO_SMALL"
)

type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func serr(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}
