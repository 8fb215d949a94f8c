package resource

import "errors"

// Construction errors, recoverable and surfaced to the caller.
var (
	ErrMissingNullifierKey = errors.New("taiga: resource has no spending key, cannot be used as an input")
	ErrNonceNotSet         = errors.New("taiga: output resource committed before set_nonce was called")
	ErrAnchorMismatch      = errors.New("taiga: merkle path does not open to the declared anchor")
	ErrQuantityOutOfRange  = errors.New("taiga: quantity does not fit in 64 bits after field embedding")
	ErrInvalidEncoding     = errors.New("taiga: malformed resource encoding")
)
