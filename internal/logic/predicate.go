package logic

import (
	"context"
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/std/hash"
	"github.com/consensys/gnark/std/permutation/poseidon2"

	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/tree"
)

var ErrProofGenerationFailed = errors.New("taiga: resource logic proof generation failed")

// resourceTreeDepth is the depth of the per-PTX resource tree every logic
// circuit opens against; it must agree with the compliance circuit's
// sizing of the same tree.
const resourceTreeDepth = 3

// ResourceLogic is a user-defined zero-knowledge predicate governing a
// resource, given the resource itself and its sibling resources in the
// current partial transaction (reached through the resource-tree root ρ).
type ResourceLogic interface {
	// CompressedVK returns the logic's compressed verifying key, the value
	// committed to in the resource's logic field and opened inside its
	// logic commitment.
	CompressedVK() primitives.F

	// Prove produces a resource-logic proof attesting the predicate holds
	// for the given public binding, with opening the resource-tree path
	// from the bound leaf to ρ.
	Prove(ctx context.Context, binding PublicInputs, opening *tree.ResourceExistenceWitness, witness any) (*Proof, error)

	// Verify checks a resource-logic proof against its public binding.
	Verify(ctx context.Context, proof *Proof) (bool, error)
}

// PublicInputs are the public inputs every resource-logic proof exposes:
// the resource-tree leaf it opens, the shared root ρ, and the resource's
// two logic commitments.
type PublicInputs struct {
	LeafValue primitives.F
	Rho       primitives.F
	LogicCm1  primitives.LogicCommitment
	LogicCm2  primitives.LogicCommitment
}

// Proof bundles a Groth16 proof with the public inputs it was generated
// against. ExtraPublic carries any circuit-specific public scalars beyond
// the shared binding (e.g. a range logic's bounds), in the order the
// circuit declares them; verifiers rebuild the public witness from it.
type Proof struct {
	Proof       groth16.Proof
	Public      PublicInputs
	ExtraPublic []primitives.F
}

// circuitBuilder is the shared compile-once/prove-many scaffold every
// concrete logic circuit in this package uses, mirroring
// compliance.Builder's lifecycle.
type circuitBuilder struct {
	ccs constraint.ConstraintSystem
	pk  groth16.ProvingKey
	vk  groth16.VerifyingKey
}

func compile(circuit frontend.Circuit) (*circuitBuilder, error) {
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return nil, err
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, err
	}
	return &circuitBuilder{ccs: ccs, pk: pk, vk: vk}, nil
}

func (b *circuitBuilder) prove(assignment frontend.Circuit) (groth16.Proof, error) {
	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, err
	}
	proof, err := groth16.Prove(b.ccs, b.pk, w)
	if err != nil {
		return nil, ErrProofGenerationFailed
	}
	return proof, nil
}

func (b *circuitBuilder) verify(proof groth16.Proof, pub frontend.Circuit) (bool, error) {
	w, err := frontend.NewWitness(pub, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return false, err
	}
	if err := groth16.Verify(proof, b.vk, w); err != nil {
		return false, nil
	}
	return true, nil
}

// CommonPublic is embedded by every concrete logic circuit so they all
// expose the same resource-tree/logic-commitment binding.
type CommonPublic struct {
	LeafValue  frontend.Variable `gnark:",public"`
	Rho        frontend.Variable `gnark:",public"`
	LogicCm1Lo frontend.Variable `gnark:",public"`
	LogicCm1Hi frontend.Variable `gnark:",public"`
	LogicCm2Lo frontend.Variable `gnark:",public"`
	LogicCm2Hi frontend.Variable `gnark:",public"`
}

// OpeningWitness is the private resource-tree opening every concrete
// circuit carries alongside CommonPublic; defineOpening ties LeafValue to
// Rho through it, so a logic proof is pinned to one leaf of the tree the
// compliance proofs share.
type OpeningWitness struct {
	Siblings [resourceTreeDepth]frontend.Variable
	PathBits [resourceTreeDepth]frontend.Variable
}

// newCircuitHasher builds the in-circuit Poseidon2 Merkle-Damgård hasher
// every logic circuit hashes with.
func newCircuitHasher(api frontend.API) (hash.FieldHasher, error) {
	p, err := poseidon2.NewPoseidon2FromParameters(api, 2, 6, 50)
	if err != nil {
		return nil, err
	}
	return hash.NewMerkleDamgardHasher(api, p, 0), nil
}

// walkOpening recomputes the resource-tree root reached from leaf through
// the opening w.
func walkOpening(api frontend.API, h hash.FieldHasher, leaf frontend.Variable, w OpeningWitness) frontend.Variable {
	current := leaf
	for i := 0; i < resourceTreeDepth; i++ {
		api.AssertIsBoolean(w.PathBits[i])
		left := api.Select(w.PathBits[i], w.Siblings[i], current)
		right := api.Select(w.PathBits[i], current, w.Siblings[i])
		h.Reset()
		h.Write(left, right)
		current = h.Sum()
	}
	return current
}

// defineOpening walks the opening from LeafValue to the root and asserts
// it reaches Rho.
func defineOpening(api frontend.API, pub CommonPublic, w OpeningWitness) error {
	h, err := newCircuitHasher(api)
	if err != nil {
		return err
	}
	api.AssertIsEqual(walkOpening(api, h, pub.LeafValue, w), pub.Rho)
	return nil
}

// publicAssignment fills in the shared public-input fields every concrete
// circuit in this package embeds.
func publicAssignment(pub PublicInputs) CommonPublic {
	return CommonPublic{
		LeafValue:  primitives.ToBigInt(pub.LeafValue),
		Rho:        primitives.ToBigInt(pub.Rho),
		LogicCm1Lo: primitives.ToBigInt(pub.LogicCm1.Lo),
		LogicCm1Hi: primitives.ToBigInt(pub.LogicCm1.Hi),
		LogicCm2Lo: primitives.ToBigInt(pub.LogicCm2.Lo),
		LogicCm2Hi: primitives.ToBigInt(pub.LogicCm2.Hi),
	}
}

// openingAssignment fills the opening witness from a resource-tree
// existence witness.
func openingAssignment(opening *tree.ResourceExistenceWitness) OpeningWitness {
	var w OpeningWitness
	for i := 0; i < resourceTreeDepth; i++ {
		w.Siblings[i] = primitives.ToBigInt(opening.Path.Siblings[i])
		if opening.Path.PathBits[i] {
			w.PathBits[i] = big.NewInt(1)
		} else {
			w.PathBits[i] = big.NewInt(0)
		}
	}
	return w
}
