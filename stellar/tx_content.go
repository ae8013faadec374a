package stellar

type OperationType uint8

const (
	OPERATION_TYPE_UNKNOWN OperationType = iota
	OPERATION_TYPE_CREATE_ACCOUNT
	OPERATION_TYPE_PAYMENT
	OPERATION_TYPE_PATH_PAYMENT
	OPERATION_TYPE_CREATE_OFFER
	OPERATION_TYPE_REMOVE_OFFER
	OPERATION_TYPE_CHANGE_OFFER
	OPERATION_TYPE_SET_OPTIONS
	OPERATION_TYPE_CHANGE_TRUST
	OPERATION_TYPE_REMOVE_TRUST
	OPERATION_TYPE_ALLOW_TRUST
	OPERATION_TYPE_REVOKE_TRUST
	OPERATION_TYPE_ACCOUNT_MERGE
	OPERATION_TYPE_INFLATION
	OPERATION_TYPE_SET_DATA
	OPERATION_TYPE_REMOVE_DATA
)

func (t OperationType) String() string {
	switch t {
	case OPERATION_TYPE_CREATE_ACCOUNT:
		return "create-account"
	case OPERATION_TYPE_PAYMENT:
		return "payment"
	case OPERATION_TYPE_PATH_PAYMENT:
		return "path-payment"
	case OPERATION_TYPE_CREATE_OFFER:
		return "create-offer"
	case OPERATION_TYPE_REMOVE_OFFER:
		return "remove-offer"
	case OPERATION_TYPE_CHANGE_OFFER:
		return "change-offer"
	case OPERATION_TYPE_SET_OPTIONS:
		return "set-options"
	case OPERATION_TYPE_CHANGE_TRUST:
		return "change-trust"
	case OPERATION_TYPE_REMOVE_TRUST:
		return "remove-trust"
	case OPERATION_TYPE_ALLOW_TRUST:
		return "allow-trust"
	case OPERATION_TYPE_REVOKE_TRUST:
		return "revoke-trust"
	case OPERATION_TYPE_ACCOUNT_MERGE:
		return "merge-account"
	case OPERATION_TYPE_INFLATION:
		return "inflation"
	case OPERATION_TYPE_SET_DATA:
		return "set-data"
	case OPERATION_TYPE_REMOVE_DATA:
		return "remove-data"
	default:
		return "unknown"
	}
}

// Indexes into TxContent.TxDetails.
const (
	TX_DETAIL_MEMO    = 0
	TX_DETAIL_FEE     = 1
	TX_DETAIL_NETWORK = 2
	TX_DETAIL_SOURCE  = 3
)

// TxContent is the decoder output: pre-rendered display rows for the
// transaction level fields and for the single operation. The meaning of
// each OpDetails slot depends on OpType.
type TxContent struct {
	TxDetails [4]Detail
	OpDetails [5]Detail
	OpType    OperationType
}

func (c *TxContent) Reset() {
	c.OpType = OPERATION_TYPE_UNKNOWN
	for i := range c.TxDetails {
		c.TxDetails[i].reset()
	}
	for i := range c.OpDetails {
		c.OpDetails[i].reset()
	}
}

// HashSigningContent fills content for the hash-only signing path, where
// the envelope is not decoded and the signer authenticates the bare
// digest.
func HashSigningContent(c *TxContent, hash []byte) error {
	c.Reset()
	c.OpType = OPERATION_TYPE_UNKNOWN
	s, err := PrintBinary(hash, HASH_SUMMARY_LEFT, HASH_SUMMARY_RIGHT)
	if err != nil {
		return err
	}
	return c.OpDetails[0].setString(s)
}
