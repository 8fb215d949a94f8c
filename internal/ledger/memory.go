package ledger

import (
	"context"
	"sync"

	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/tree"
)

// MemoryLedger is an in-memory AnchorOracle and NullifierStore, used by
// tests and by the demo CLI. It keeps the full root history so anchors
// that lag behind the latest insertion remain valid.
type MemoryLedger struct {
	mu sync.RWMutex

	tree       *tree.Tree
	roots      map[primitives.F]struct{}
	nullifiers map[primitives.F]struct{}
}

// NewMemoryLedger creates an empty ledger with a fresh commitment tree of
// the standard depth.
func NewMemoryLedger(ctx context.Context) (*MemoryLedger, error) {
	t := tree.New(tree.NewMemoryStore(), tree.LedgerTreeDepth)
	if err := t.Initialize(ctx); err != nil {
		return nil, err
	}
	l := &MemoryLedger{
		tree:       t,
		roots:      make(map[primitives.F]struct{}),
		nullifiers: make(map[primitives.F]struct{}),
	}
	l.roots[t.Root()] = struct{}{}
	return l, nil
}

func (l *MemoryLedger) CurrentRoot(ctx context.Context) (primitives.F, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tree.Root(), nil
}

func (l *MemoryLedger) IsKnownAnchor(ctx context.Context, root primitives.F) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.roots[root]
	return ok, nil
}

func (l *MemoryLedger) Append(ctx context.Context, commitment primitives.F) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pos, err := l.tree.Insert(ctx, commitment)
	if err != nil {
		return 0, err
	}
	l.roots[l.tree.Root()] = struct{}{}
	return pos, nil
}

func (l *MemoryLedger) PathTo(ctx context.Context, position uint64) (*tree.Path, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tree.PathTo(ctx, position)
}

func (l *MemoryLedger) Contains(ctx context.Context, nf primitives.F) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.nullifiers[nf]
	return ok, nil
}

// Insert records nf as spent, rejecting duplicates.
func (l *MemoryLedger) Insert(ctx context.Context, nf primitives.F) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.nullifiers[nf]; ok {
		return ErrNullifierSpent
	}
	l.nullifiers[nf] = struct{}{}
	return nil
}
