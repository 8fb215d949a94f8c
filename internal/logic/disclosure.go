package logic

import (
	"context"

	"github.com/consensys/gnark/frontend"

	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/tree"
)

// RangeCircuit proves that the witnessed Quantity lies within [MinValue,
// MaxValue] without revealing it, alongside the shared opening of
// LeafValue to ρ. Quantity is not tied to the resource at LeafValue: the
// circuit does not recompute that resource's commitment.
type RangeCircuit struct {
	CommonPublic
	OpeningWitness
	MinValue frontend.Variable `gnark:",public"`
	MaxValue frontend.Variable `gnark:",public"`

	Quantity frontend.Variable
}

func (c *RangeCircuit) Define(api frontend.API) error {
	if err := defineOpening(api, c.CommonPublic, c.OpeningWitness); err != nil {
		return err
	}
	api.AssertIsLessOrEqual(c.MinValue, c.Quantity)
	api.AssertIsLessOrEqual(c.Quantity, c.MaxValue)
	return nil
}

// RangeLogic is the ResourceLogic proving quantity membership in a range.
type RangeLogic struct {
	builder *circuitBuilder
}

// NewRangeLogic compiles the range circuit once.
func NewRangeLogic() (*RangeLogic, error) {
	b, err := compile(&RangeCircuit{})
	if err != nil {
		return nil, err
	}
	return &RangeLogic{builder: b}, nil
}

var rangeVK = primitives.MustHashN(primitives.FromUint64(0xBEEF), primitives.FromUint64(1))

func (l *RangeLogic) CompressedVK() primitives.F { return rangeVK }

// RangeWitness is the private witness for a range disclosure.
type RangeWitness struct {
	Quantity uint64
	Min      uint64
	Max      uint64
}

func (l *RangeLogic) Prove(ctx context.Context, binding PublicInputs, opening *tree.ResourceExistenceWitness, witness any) (*Proof, error) {
	w, ok := witness.(RangeWitness)
	if !ok {
		return nil, ErrProofGenerationFailed
	}
	assignment := &RangeCircuit{
		CommonPublic:   publicAssignment(binding),
		OpeningWitness: openingAssignment(opening),
		MinValue:       w.Min,
		MaxValue:       w.Max,
		Quantity:       w.Quantity,
	}
	proof, err := l.builder.prove(assignment)
	if err != nil {
		return nil, err
	}
	return &Proof{
		Proof:       proof,
		Public:      binding,
		ExtraPublic: []primitives.F{primitives.FromUint64(w.Min), primitives.FromUint64(w.Max)},
	}, nil
}

func (l *RangeLogic) Verify(ctx context.Context, proof *Proof) (bool, error) {
	if len(proof.ExtraPublic) != 2 {
		return false, nil
	}
	assignment := &RangeCircuit{
		CommonPublic: publicAssignment(proof.Public),
		MinValue:     primitives.ToBigInt(proof.ExtraPublic[0]),
		MaxValue:     primitives.ToBigInt(proof.ExtraPublic[1]),
	}
	return l.builder.verify(proof.Proof, assignment)
}

// TemporalCircuit proves that the public CurrentTime minus the witnessed
// CreationTime is at least MinDuration, alongside the shared opening of
// LeafValue to ρ. CreationTime is not tied to the resource at LeafValue:
// the circuit does not recompute that resource's commitment.
type TemporalCircuit struct {
	CommonPublic
	OpeningWitness
	CurrentTime frontend.Variable `gnark:",public"`
	MinDuration frontend.Variable `gnark:",public"`

	CreationTime frontend.Variable
}

func (c *TemporalCircuit) Define(api frontend.API) error {
	if err := defineOpening(api, c.CommonPublic, c.OpeningWitness); err != nil {
		return err
	}
	held := api.Sub(c.CurrentTime, c.CreationTime)
	api.AssertIsLessOrEqual(c.MinDuration, held)
	return nil
}

// TemporalLogic is the ResourceLogic proving minimum holding duration.
type TemporalLogic struct {
	builder *circuitBuilder
}

// NewTemporalLogic compiles the temporal circuit once.
func NewTemporalLogic() (*TemporalLogic, error) {
	b, err := compile(&TemporalCircuit{})
	if err != nil {
		return nil, err
	}
	return &TemporalLogic{builder: b}, nil
}

var temporalVK = primitives.MustHashN(primitives.FromUint64(0xC0FFEE), primitives.FromUint64(2))

func (l *TemporalLogic) CompressedVK() primitives.F { return temporalVK }

// TemporalWitness is the private witness for a temporal disclosure.
type TemporalWitness struct {
	CreationTime uint64
	CurrentTime  uint64
	MinDuration  uint64
}

func (l *TemporalLogic) Prove(ctx context.Context, binding PublicInputs, opening *tree.ResourceExistenceWitness, witness any) (*Proof, error) {
	w, ok := witness.(TemporalWitness)
	if !ok {
		return nil, ErrProofGenerationFailed
	}
	assignment := &TemporalCircuit{
		CommonPublic:   publicAssignment(binding),
		OpeningWitness: openingAssignment(opening),
		CurrentTime:    w.CurrentTime,
		MinDuration:    w.MinDuration,
		CreationTime:   w.CreationTime,
	}
	proof, err := l.builder.prove(assignment)
	if err != nil {
		return nil, err
	}
	return &Proof{
		Proof:       proof,
		Public:      binding,
		ExtraPublic: []primitives.F{primitives.FromUint64(w.CurrentTime), primitives.FromUint64(w.MinDuration)},
	}, nil
}

func (l *TemporalLogic) Verify(ctx context.Context, proof *Proof) (bool, error) {
	if len(proof.ExtraPublic) != 2 {
		return false, nil
	}
	assignment := &TemporalCircuit{
		CommonPublic: publicAssignment(proof.Public),
		CurrentTime:  primitives.ToBigInt(proof.ExtraPublic[0]),
		MinDuration:  primitives.ToBigInt(proof.ExtraPublic[1]),
	}
	return l.builder.verify(proof.Proof, assignment)
}
