// Package taiga is the public surface of the shielded execution core. It
// glues the resource model, the compliance engine, the resource-logic
// machinery, and partial-transaction assembly behind the five operations
// external callers use: building partial transactions, finalizing and
// verifying transactions, and deriving a resource's commitment and
// nullifier.
package taiga

import (
	"context"

	"github.com/anoma/taiga-core/internal/compliance"
	"github.com/anoma/taiga-core/internal/ledger"
	"github.com/anoma/taiga-core/internal/logic"
	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/ptx"
	"github.com/anoma/taiga-core/internal/resource"
)

// Re-exported aliases so callers can stay on this package for the common
// types without importing the internals' paths.
type (
	Resource           = resource.Resource
	ResourceCommitment = resource.ResourceCommitment
	Nullifier          = resource.Nullifier
	NullifierKey       = resource.NullifierKey
	RandomSeed         = primitives.RandomSeed
	PTX                = ptx.PTX
	Transaction        = ptx.Transaction
	ActionWitness      = ptx.ActionWitness
	AnchorOracle       = ledger.AnchorOracle
)

// Core bundles the process-wide proving state: the compiled compliance
// circuit and the registry of known resource logics. Construction is
// expensive (it runs or reloads the trusted setup); callers create one
// Core at startup and share it across transactions.
type Core struct {
	compliance *compliance.Builder
	registry   *ptx.LogicRegistry
}

// NewCore runs the compliance circuit setup and registers the given
// resource logics.
func NewCore(logics ...logic.ResourceLogic) (*Core, error) {
	cb, err := compliance.Setup()
	if err != nil {
		return nil, err
	}
	return NewCoreWithBuilder(cb, logics...), nil
}

// NewCoreWithBuilder wraps an already-constructed (e.g. disk-reloaded)
// compliance builder.
func NewCoreWithBuilder(cb *compliance.Builder, logics ...logic.ResourceLogic) *Core {
	registry := ptx.NewLogicRegistry()
	for _, l := range logics {
		registry.Register(l)
	}
	return &Core{compliance: cb, registry: registry}
}

// Register adds a resource logic after construction.
func (c *Core) Register(l logic.ResourceLogic) {
	c.registry.Register(l)
}

// ComplianceBuilder exposes the underlying builder, e.g. for persisting
// its keys.
func (c *Core) ComplianceBuilder() *compliance.Builder {
	return c.compliance
}

// BuildPTX assembles one party's actions into a partial transaction,
// returning the PTX and its accumulated rcv sum (the party's share of the
// binding-signature secret).
func (c *Core) BuildPTX(ctx context.Context, actions []ActionWitness) (*PTX, primitives.F, error) {
	return ptx.BuildPTX(ctx, c.compliance, c.registry, actions)
}

// BuildTx finalizes a transaction from its constituent PTXs and their rcv
// sums: it sums the per-action deltas, derives the binding secret from the
// rcv sums, and signs the transaction hash.
func (c *Core) BuildTx(ptxs []*PTX, rcvSums []primitives.F) (*Transaction, error) {
	return ptx.BuildTx(ptxs, rcvSums)
}

// VerifyTx checks every compliance and resource-logic proof, checks each
// non-ephemeral input's anchor against the oracle's ledger history,
// recomputes the total delta, and verifies the binding signature.
func (c *Core) VerifyTx(ctx context.Context, oracle ledger.AnchorOracle, tx *Transaction) error {
	return ptx.VerifyTx(ctx, c.compliance, c.registry, oracle, tx)
}

// ResourceCommit derives a resource's commitment.
func ResourceCommit(r *Resource) (ResourceCommitment, error) {
	return r.Commitment()
}

// ResourceNullify derives a resource's nullifier, or nil when the
// resource carries only a public key.
func ResourceNullify(r *Resource) (*Nullifier, error) {
	return r.Nullifier()
}
