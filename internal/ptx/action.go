// Package ptx implements partial-transaction assembly: actions, their
// compliance and resource-logic proofs, and transaction-level binding
// signatures.
package ptx

import (
	"github.com/anoma/taiga-core/internal/compliance"
	"github.com/anoma/taiga-core/internal/logic"
	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/resource"
	"github.com/anoma/taiga-core/internal/tree"
)

// ActionWitness is everything the builder needs to produce one action's
// compliance and resource-logic proofs. The output's nonce/psi/rcm MUST
// already be back-filled (via resource.SetNonce) before this is built.
type ActionWitness struct {
	Input  resource.Resource
	Output resource.Resource

	LedgerPath *tree.Path
	Anchor     primitives.F

	DynamicVK          primitives.F // resource.value-encoded dynamic logic vk, or logic.DefaultDynamicLogicVK
	Seed               primitives.RandomSeed
	InputLogicWitness  any
	OutputLogicWitness any
}

// Action is one assembled input/output pair with its compliance proof and
// both resources' logic proofs.
type Action struct {
	Input  resource.Resource
	Output resource.Resource

	Compliance  *compliance.Proof
	InputLogic  *logic.Proof
	OutputLogic *logic.Proof
}
