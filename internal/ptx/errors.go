package ptx

import "errors"

// Builder-side and verification-side errors.
var (
	ErrProofGenerationFailed   = errors.New("taiga: proof generation failed")
	ErrProofInvalid            = errors.New("taiga: compliance or resource-logic proof invalid")
	ErrBindingSignatureInvalid = errors.New("taiga: binding signature invalid")
	ErrResourceTreeMismatch    = errors.New("taiga: compliance proof's ρ disagrees with a resource-logic proof's ρ")
	ErrLogicNotRegistered      = errors.New("taiga: no resource logic registered for a resource's compressed vk")
	ErrTooManyActions          = errors.New("taiga: partial transaction has no actions or exceeds the action slot limit")
	ErrRcvSumMismatch          = errors.New("taiga: rcv sum count does not match partial transaction count")
)
