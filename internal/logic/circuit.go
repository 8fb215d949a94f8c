package logic

import (
	"context"

	"github.com/consensys/gnark/frontend"

	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/tree"
)

// TrivialCircuit is the fixed TrivialValidityPredicate: beyond the
// resource-tree opening every logic carries, it accepts unconditionally.
// Padding resources (ephemeral, zero-quantity) use this logic so that
// fixed-arity partial transactions can be filled out without constraining
// anything about the padding slot.
type TrivialCircuit struct {
	CommonPublic
	OpeningWitness
}

// Define enforces only the shared leaf-to-root opening; the predicate
// itself is an unconditional accept.
func (c *TrivialCircuit) Define(api frontend.API) error {
	return defineOpening(api, c.CommonPublic, c.OpeningWitness)
}

// trivialVK is the fixed compressed verifying key every padding resource's
// logic field is set to.
var trivialVK = primitives.MustHashN(primitives.FromUint64(0xFADE), primitives.FromUint64(0))

// TrivialValidityPredicate is the ResourceLogic implementation backing
// padding resources.
type TrivialValidityPredicate struct {
	builder *circuitBuilder
}

// NewTrivialValidityPredicate compiles the trivial circuit once.
func NewTrivialValidityPredicate() (*TrivialValidityPredicate, error) {
	b, err := compile(&TrivialCircuit{})
	if err != nil {
		return nil, err
	}
	return &TrivialValidityPredicate{builder: b}, nil
}

func (p *TrivialValidityPredicate) CompressedVK() primitives.F {
	return trivialVK
}

func (p *TrivialValidityPredicate) Prove(ctx context.Context, binding PublicInputs, opening *tree.ResourceExistenceWitness, witness any) (*Proof, error) {
	assignment := &TrivialCircuit{
		CommonPublic:   publicAssignment(binding),
		OpeningWitness: openingAssignment(opening),
	}
	proof, err := p.builder.prove(assignment)
	if err != nil {
		return nil, err
	}
	return &Proof{Proof: proof, Public: binding}, nil
}

func (p *TrivialValidityPredicate) Verify(ctx context.Context, proof *Proof) (bool, error) {
	assignment := &TrivialCircuit{CommonPublic: publicAssignment(proof.Public)}
	return p.builder.verify(proof.Proof, assignment)
}
