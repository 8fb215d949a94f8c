package ptx

import (
	"github.com/anoma/taiga-core/internal/logic"
	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/resource"
	"github.com/anoma/taiga-core/internal/tree"
)

// ZeroLedgerPath is the all-zero depth-32 path ephemeral inputs carry: the
// circuit skips the membership constraint for them but still wants a
// fully-populated witness.
func ZeroLedgerPath() *tree.Path {
	return &tree.Path{
		Siblings: make([]primitives.F, tree.LedgerTreeDepth),
		PathBits: make([]bool, tree.LedgerTreeDepth),
	}
}

// PaddingAction fills one action slot of a fixed-arity partial transaction:
// an ephemeral, zero-quantity input/output pair under the trivial
// predicate. Zero quantity means the pair contributes only its rcv·R term
// to Δ, and ephemerality means the anchor carries no meaning for it.
func PaddingAction(trivialVK primitives.F, anchor primitives.F) (ActionWitness, error) {
	key, err := primitives.RandomF()
	if err != nil {
		return ActionWitness{}, err
	}
	nonce, err := primitives.RandomF()
	if err != nil {
		return ActionWitness{}, err
	}
	seed, err := primitives.NewRandomSeed()
	if err != nil {
		return ActionWitness{}, err
	}

	input, err := resource.NewInput(
		trivialVK, primitives.ZeroF(), primitives.ZeroF(),
		0, key, nonce, true, seed,
	)
	if err != nil {
		return ActionWitness{}, err
	}

	npk, err := resource.Key(key).Public()
	if err != nil {
		return ActionWitness{}, err
	}
	output := resource.NewOutput(
		trivialVK, primitives.ZeroF(), primitives.ZeroF(),
		0, npk, true,
	)
	outSeed, err := primitives.NewRandomSeed()
	if err != nil {
		return ActionWitness{}, err
	}
	if err := output.SetNonce(&input, outSeed); err != nil {
		return ActionWitness{}, err
	}

	return ActionWitness{
		Input:      input,
		Output:     output,
		LedgerPath: ZeroLedgerPath(),
		Anchor:     anchor,
		DynamicVK:  logic.DefaultDynamicLogicVK,
		Seed:       outSeed,
	}, nil
}
