// Package compliance implements the fixed Compliance Circuit: the
// per-action relation enforcing nullifier derivation, commitment opening,
// ledger Merkle membership, authorization-key correspondence, resource-tree
// consistency, and the binding-commitment accumulator.
package compliance

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash"
	"github.com/consensys/gnark/std/permutation/poseidon2"

	"github.com/anoma/taiga-core/internal/tree"
)

// MaxActionsPerPTX bounds NUM_RESOURCE, the number of actions a single
// partial transaction's resource tree is sized for.
const MaxActionsPerPTX = 4

// LedgerTreeDepth mirrors tree.LedgerTreeDepth, fixed for circuit sizing.
const LedgerTreeDepth = tree.LedgerTreeDepth

// ResourceTreeDepth is the fixed depth of the resource tree for
// MaxActionsPerPTX actions: ⌈log2(2·MaxActionsPerPTX)⌉. Kept as a
// constant (rather than calling tree.ResourceTreeDepth) because gnark
// circuit struct fields need compile-time array sizes; BuildResourceTree
// is sized from the same MaxActionsPerPTX and must agree with this value.
const ResourceTreeDepth = 3

// ResourceTreeUpperDepth is the number of levels above the [nf_in, cm_out]
// leaf pair; the circuit folds that pair into one Merkle-Damgård step
// (constraint 7) and then walks the remaining shared path to ρ.
const ResourceTreeUpperDepth = ResourceTreeDepth - 1

// Circuit is the per-action compliance relation.
//
// Public inputs, in order: NfIn, CmOut, Anchor, Rho, DeltaX, DeltaY.
// Everything else is witness.
type Circuit struct {
	// Public inputs.
	NfIn   frontend.Variable `gnark:",public"`
	CmOut  frontend.Variable `gnark:",public"`
	Anchor frontend.Variable `gnark:",public"`
	Rho    frontend.Variable `gnark:",public"`
	DeltaX frontend.Variable `gnark:",public"`
	DeltaY frontend.Variable `gnark:",public"`

	// Input resource witness.
	InLogic       frontend.Variable
	InLabel       frontend.Variable
	InValue       frontend.Variable
	InQuantity    frontend.Variable
	InKey         frontend.Variable
	InNonce       frontend.Variable
	InPsi         frontend.Variable
	InRcm         frontend.Variable
	InIsEphemeral frontend.Variable // boolean 0/1

	// Output resource witness.
	OutLogic       frontend.Variable
	OutLabel       frontend.Variable
	OutValue       frontend.Variable
	OutQuantity    frontend.Variable
	OutNkIsKey     frontend.Variable // boolean: 1 if output.nk is Key(_)
	OutNkValue     frontend.Variable // key or pubkey value, per OutNkIsKey
	OutPsi         frontend.Variable
	OutRcm         frontend.Variable
	OutIsEphemeral frontend.Variable

	// Input ledger Merkle path (anchor membership of cm_in).
	LedgerSiblings [LedgerTreeDepth]frontend.Variable
	LedgerPathBits [LedgerTreeDepth]frontend.Variable

	// Shared path above the [nf_in, cm_out] leaf pair at positions
	// (2i, 2i+1).
	ResourceSiblings [ResourceTreeUpperDepth]frontend.Variable
	ResourcePathBits [ResourceTreeUpperDepth]frontend.Variable

	// Binding-commitment randomness.
	Rcv frontend.Variable
}

func newHasher(api frontend.API) (hash.FieldHasher, error) {
	p, err := poseidon2.NewPoseidon2FromParameters(api, 2, 6, 50)
	if err != nil {
		return nil, err
	}
	return hash.NewMerkleDamgardHasher(api, p, 0), nil
}

// twoPow128 is 2^128 as a decimal literal; frontend.Variable accepts
// string literals for compile-time constants.
const twoPow128 = "340282366920938463463374607431768211456"

// epsilonQuantity folds is_ephemeral into the high half of quantity,
// mirroring primitives.EncodeEphemeralQuantity but using circuit gates:
// ε·2^128 + quantity.
func epsilonQuantity(api frontend.API, isEphemeral, quantity frontend.Variable) frontend.Variable {
	return api.Add(api.Mul(isEphemeral, twoPow128), quantity)
}

// npk computes nk.public() in-circuit: nkValue if isKey == 0 (PubKey
// variant), else H(nkValue, 0).
func npk(api frontend.API, h hash.FieldHasher, isKey, nkValue frontend.Variable) frontend.Variable {
	h.Reset()
	h.Write(nkValue, 0)
	hashed := h.Sum()
	return api.Select(isKey, hashed, nkValue)
}

// verifyMerklePath recomputes the root from leaf, siblings, and path bits
// (1 = leaf/current is the right child), using api.Select to order each
// pair before hashing, and returns the recomputed root.
func verifyMerklePath(api frontend.API, h hash.FieldHasher, leaf frontend.Variable, siblings, pathBits []frontend.Variable) frontend.Variable {
	current := leaf
	for i := range siblings {
		api.AssertIsBoolean(pathBits[i])
		left := api.Select(pathBits[i], siblings[i], current)
		right := api.Select(pathBits[i], current, siblings[i])
		h.Reset()
		h.Write(left, right)
		current = h.Sum()
	}
	return current
}

// Define implements the per-action compliance constraints.
func (c *Circuit) Define(api frontend.API) error {
	h, err := newHasher(api)
	if err != nil {
		return err
	}

	api.AssertIsBoolean(c.InIsEphemeral)
	api.AssertIsBoolean(c.OutIsEphemeral)
	api.AssertIsBoolean(c.OutNkIsKey)

	// npk for both resources, folded into their commitments (constraint 6,
	// folded into constraints 1 and 4: the circuit never computes npk any
	// other way).
	inNpk := npk(api, h, 1, c.InKey) // an input always carries Key(_)
	outNpk := npk(api, h, c.OutNkIsKey, c.OutNkValue)

	// Constraint 1: input commitment well-formed.
	inEpsQ := epsilonQuantity(api, c.InIsEphemeral, c.InQuantity)
	h.Reset()
	h.Write(c.InLogic, c.InLabel, c.InValue, inNpk, c.InNonce, c.InPsi, inEpsQ, c.InRcm)
	cmIn := h.Sum()

	// Constraint 2: ledger membership, skipped when the input is ephemeral.
	recomputedAnchor := verifyMerklePath(api, h, cmIn, c.LedgerSiblings[:], c.LedgerPathBits[:])
	anchorCheck := api.Sub(recomputedAnchor, c.Anchor)
	anchorCheck = api.Mul(anchorCheck, api.Sub(1, c.InIsEphemeral))
	api.AssertIsEqual(anchorCheck, 0)

	// Constraint 3: nullifier derivation.
	h.Reset()
	h.Write(c.InKey, c.InNonce, c.InPsi, cmIn)
	nfIn := h.Sum()
	api.AssertIsEqual(nfIn, c.NfIn)

	// Constraint 4: output commitment well-formed.
	outEpsQ := epsilonQuantity(api, c.OutIsEphemeral, c.OutQuantity)
	h.Reset()
	h.Write(c.OutLogic, c.OutLabel, c.OutValue, outNpk, nfIn, c.OutPsi, outEpsQ, c.OutRcm)
	cmOut := h.Sum()
	api.AssertIsEqual(cmOut, c.CmOut)

	// Constraint 5: linkage to predecessor, output.nonce = nf_in, enforced
	// directly by using nfIn (not a separate witness) as the output's nonce
	// above; no further constraint is needed.

	// Constraint 7: resource-tree consistency: a two-leaf opening of
	// positions (2i, 2i+1) yields nf_in and cm_out respectively. The two
	// leaves are combined with one Merkle-Damgård step before walking the
	// remaining shared path, matching the canonical [nf_in, cm_out] leaf
	// pair order of the resource tree.
	h.Reset()
	h.Write(nfIn, cmOut)
	pairNode := h.Sum()
	recomputedRho := verifyMerklePath(api, h, pairNode, c.ResourceSiblings[:], c.ResourcePathBits[:])
	api.AssertIsEqual(recomputedRho, c.Rho)

	// Constraint 8: binding contribution Δ = quantity_in·K_in -
	// quantity_out·K_out + rcv·R, with both kind points re-derived from the
	// resource fields inside the circuit.
	deltaX, deltaY, err := bindingDelta(api, h,
		c.InLogic, c.InLabel, c.InQuantity,
		c.OutLogic, c.OutLabel, c.OutQuantity,
		c.Rcv,
	)
	if err != nil {
		return err
	}
	api.AssertIsEqual(deltaX, c.DeltaX)
	api.AssertIsEqual(deltaY, c.DeltaY)

	return nil
}
