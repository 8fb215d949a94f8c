package ptx

import (
	"context"

	"github.com/anoma/taiga-core/internal/compliance"
	"github.com/anoma/taiga-core/internal/logic"
	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/resource"
	"github.com/anoma/taiga-core/internal/tree"
)

// PTX is a partial transaction: the unit assembled by one party. It
// carries no secrets; the rcv sum (this party's share of the binding
// secret) is returned separately by BuildPTX.
type PTX struct {
	Actions []Action
	Rho     primitives.F
}

// BuildPTX assembles n actions into a PTX: it builds the resource tree,
// samples rcv per action, and generates every compliance and
// resource-logic proof. It does not back-fill output nonces: each
// output must already carry them (resource.SetNonce) when passed in. The second return value is Σ rcv across the PTX's
// actions, which the transaction finalizer folds into the binding secret.
func BuildPTX(
	ctx context.Context,
	cb *compliance.Builder,
	registry *LogicRegistry,
	actions []ActionWitness,
) (*PTX, primitives.F, error) {
	n := len(actions)
	if n == 0 || n > compliance.MaxActionsPerPTX {
		return nil, primitives.F{}, ErrTooManyActions
	}

	nullifiers := make([]primitives.F, n)
	commitments := make([]primitives.F, n)
	for i := range actions {
		nf, err := actions[i].Input.Nullifier()
		if err != nil {
			return nil, primitives.F{}, err
		}
		if nf == nil {
			return nil, primitives.F{}, resource.ErrMissingNullifierKey
		}
		nullifiers[i] = *nf

		cm, err := actions[i].Output.Commitment()
		if err != nil {
			return nil, primitives.F{}, err
		}
		commitments[i] = cm
	}

	// Step 2: build the resource Merkle tree over the 2n leaves, obtain ρ.
	leaves := tree.LeavesForActions(nullifiers, commitments)
	resTree, rho, err := tree.BuildResourceTree(ctx, compliance.MaxActionsPerPTX, leaves)
	if err != nil {
		return nil, primitives.F{}, err
	}

	rcvSum := primitives.ZeroF()
	builtActions := make([]Action, n)

	for i, aw := range actions {
		// Step 3: sample rcv for this action.
		rcv, err := primitives.RandomF()
		if err != nil {
			return nil, primitives.F{}, err
		}
		rcvSum = addScalar(rcvSum, rcv)

		// Step 4: generate the compliance proof.
		resourcePath, err := resTree.WitnessFor(ctx, uint64(2*i))
		if err != nil {
			return nil, primitives.F{}, err
		}
		cp, err := cb.Prove(compliance.ActionWitness{
			Input:        aw.Input,
			Output:       aw.Output,
			LedgerPath:   aw.LedgerPath,
			ResourcePath: resourcePath.Path,
			Anchor:       aw.Anchor,
			Rcv:          rcv,
		}, rho)
		if err != nil {
			return nil, primitives.F{}, err
		}

		// Step 5: per-resource logic bundles.
		inputLogic, ok := registry.Get(aw.Input.Logic)
		if !ok {
			return nil, primitives.F{}, ErrLogicNotRegistered
		}
		outputLogic, ok := registry.Get(aw.Output.Logic)
		if !ok {
			return nil, primitives.F{}, ErrLogicNotRegistered
		}

		inCm, err := logic.Commit(aw.Seed, aw.Input.Logic, aw.DynamicVK)
		if err != nil {
			return nil, primitives.F{}, err
		}
		outCm, err := logic.Commit(aw.Seed, aw.Output.Logic, aw.DynamicVK)
		if err != nil {
			return nil, primitives.F{}, err
		}

		outputWitness, err := resTree.WitnessFor(ctx, uint64(2*i+1))
		if err != nil {
			return nil, primitives.F{}, err
		}

		inputProof, err := inputLogic.Prove(ctx, logic.PublicInputs{
			LeafValue: resourcePath.LeafValue,
			Rho:       rho,
			LogicCm1:  inCm.Slot1,
			LogicCm2:  inCm.Slot2,
		}, resourcePath, aw.InputLogicWitness)
		if err != nil {
			return nil, primitives.F{}, err
		}
		outputProof, err := outputLogic.Prove(ctx, logic.PublicInputs{
			LeafValue: outputWitness.LeafValue,
			Rho:       rho,
			LogicCm1:  outCm.Slot1,
			LogicCm2:  outCm.Slot2,
		}, outputWitness, aw.OutputLogicWitness)
		if err != nil {
			return nil, primitives.F{}, err
		}

		builtActions[i] = Action{
			Input:       aw.Input,
			Output:      aw.Output,
			Compliance:  cp,
			InputLogic:  inputProof,
			OutputLogic: outputProof,
		}
	}

	return &PTX{Actions: builtActions, Rho: rho}, rcvSum, nil
}
