package tree

import (
	"context"
	"math/bits"

	"github.com/anoma/taiga-core/internal/primitives"
)

// ResourceTreeDepth returns d_r = ⌈log2(2·maxActions)⌉, the fixed small
// depth of a single partial transaction's resource tree.
func ResourceTreeDepth(maxActions int) int {
	leaves := 2 * maxActions
	if leaves <= 1 {
		return 1
	}
	return bits.Len(uint(leaves - 1))
}

// ResourceTree is the per-PTX tree: 2n leaves, alternating
// [input.nullifier, output.commitment] for each action in order.
type ResourceTree struct {
	tree *Tree
}

// BuildResourceTree inserts leaves in canonical order and returns the
// populated tree along with its root ρ.
func BuildResourceTree(ctx context.Context, maxActions int, leaves []primitives.F) (*ResourceTree, primitives.F, error) {
	depth := ResourceTreeDepth(maxActions)
	t := New(NewMemoryStore(), depth)
	if err := t.Initialize(ctx); err != nil {
		return nil, primitives.F{}, err
	}
	for i, leaf := range leaves {
		if err := t.InsertAt(ctx, uint64(i), leaf); err != nil {
			return nil, primitives.F{}, err
		}
	}
	return &ResourceTree{tree: t}, t.Root(), nil
}

// LeavesForActions lays out the canonical 2n-leaf order for n actions:
// for each action i, [input_i.nullifier, output_i.commitment].
func LeavesForActions(nullifiers, commitments []primitives.F) []primitives.F {
	leaves := make([]primitives.F, 0, 2*len(nullifiers))
	for i := range nullifiers {
		leaves = append(leaves, nullifiers[i], commitments[i])
	}
	return leaves
}

// ResourceExistenceWitness is handed to a resource-logic circuit so it can
// reason about sibling resources sharing the same resource-tree root ρ.
type ResourceExistenceWitness struct {
	LeafValue primitives.F
	Path      *Path
}

// WitnessFor returns the opening for the leaf at position.
func (rt *ResourceTree) WitnessFor(ctx context.Context, position uint64) (*ResourceExistenceWitness, error) {
	leaf, err := rt.tree.store.GetNode(ctx, 0, position)
	if err != nil {
		return nil, err
	}
	path, err := rt.tree.PathTo(ctx, position)
	if err != nil {
		return nil, err
	}
	return &ResourceExistenceWitness{LeafValue: leaf, Path: path}, nil
}

// Root returns ρ.
func (rt *ResourceTree) Root() primitives.F {
	return rt.tree.Root()
}
