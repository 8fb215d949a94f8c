package primitives

// PCS is the polynomial-commitment scheme, treated as a black box:
// setup produces universal parameters, a circuit compiled against those
// parameters yields a proving/verifying key pair, prove consumes a witness
// and produces a proof, and verify checks a proof against public inputs.
// No implementation of this interface lives in this repository: the
// compliance and logic circuits are compiled and proved with Groth16
// directly (see internal/compliance and internal/logic), which is the
// concrete SNARK backend this codebase's circuit-proving code actually
// uses. This interface exists so a caller that wants to swap in a true
// universal PCS has a contract to implement against.
type PCS interface {
	Setup(maxDegree int) (UniversalParams, error)
	Prove(pk ProvingKey, witness any) (Proof, error)
	Verify(vk VerifyingKey, proof Proof, publicInputs []F) (bool, error)
}

// UniversalParams is an opaque PCS setup artifact.
type UniversalParams interface{}

// ProvingKey is an opaque, circuit-specific proving key derived from
// UniversalParams.
type ProvingKey interface{}

// VerifyingKey is an opaque, circuit-specific verifying key derived from
// UniversalParams.
type VerifyingKey interface{}

// Proof is an opaque proof object produced by Prove.
type Proof interface{}
