// Package ledger implements the two pieces of global state every Taiga
// transaction is checked against: the historical commitment tree (whose
// past roots are valid anchors) and the set of nullifiers already spent.
package ledger

import (
	"context"
	"errors"

	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/tree"
)

var (
	// ErrNullifierSpent is returned when a nullifier is already present in
	// the set.
	ErrNullifierSpent = errors.New("taiga: nullifier already spent")
	// ErrUnknownAnchor is returned when an anchor does not match any root
	// the oracle has recorded.
	ErrUnknownAnchor = errors.New("taiga: anchor is not a known commitment tree root")
)

// AnchorOracle answers membership queries against the historical
// commitment tree: is a given field element a root the tree has actually
// held, and what Merkle path opens a given commitment against the
// current root. Resource-kind-agnostic; every non-ephemeral resource's
// commitment is inserted here when it is created.
type AnchorOracle interface {
	// CurrentRoot returns the tree's latest root, usable as an anchor for
	// new actions.
	CurrentRoot(ctx context.Context) (primitives.F, error)

	// IsKnownAnchor reports whether root was ever the tree's root at some
	// point in its history (not just the current one), since an action's
	// anchor may lag behind the latest insertions.
	IsKnownAnchor(ctx context.Context, root primitives.F) (bool, error)

	// Append inserts a new non-ephemeral resource commitment, returning
	// its leaf position.
	Append(ctx context.Context, commitment primitives.F) (uint64, error)

	// PathTo returns the Merkle path from a given leaf position to the
	// tree's current root.
	PathTo(ctx context.Context, position uint64) (*tree.Path, error)
}

// NullifierStore tracks every nullifier that has ever been published,
// enforcing spend-once-ness.
type NullifierStore interface {
	// Contains reports whether nf has already been recorded as spent.
	Contains(ctx context.Context, nf primitives.F) (bool, error)

	// Insert records nf as spent. Returns ErrNullifierSpent if it was
	// already present; callers MUST treat that as a rejected transaction,
	// never silently idempotent.
	Insert(ctx context.Context, nf primitives.F) error
}
