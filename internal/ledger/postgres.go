package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/tree"
	"github.com/anoma/taiga-core/pkg/common"
)

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrDBConnection = errors.New("database connection error")
)

// Config holds database configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int32
}

// DefaultConfig returns default database configuration
func DefaultConfig() *Config {
	return &Config{
		Host:     "localhost",
		Port:     5432,
		User:     "taiga",
		Password: "",
		Database: "taiga",
		SSLMode:  "disable",
		MaxConns: 20,
	}
}

// PostgresLedger implements AnchorOracle and NullifierStore over
// PostgreSQL: the historical commitment tree's nodes, the set of roots it
// has held, and the spent-nullifier set all persist across restarts.
type PostgresLedger struct {
	pool *pgxpool.Pool
	tree *tree.Tree
}

// NewPostgresLedger connects to the database, ensures the schema exists,
// and loads the persisted tree state.
func NewPostgresLedger(ctx context.Context, cfg *Config) (*PostgresLedger, error) {
	connString := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode, cfg.MaxConns,
	)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDBConnection, err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDBConnection, err)
	}

	l := &PostgresLedger{pool: pool}
	if err := l.ensureSchema(ctx); err != nil {
		return nil, err
	}

	l.tree = tree.New(&pgTreeStore{pool: pool}, tree.LedgerTreeDepth)
	if err := l.tree.Initialize(ctx); err != nil {
		return nil, err
	}
	if err := l.recordAnchor(ctx, l.tree.Root()); err != nil {
		return nil, err
	}
	return l, nil
}

// Close closes the database connection pool
func (l *PostgresLedger) Close() {
	l.pool.Close()
}

func (l *PostgresLedger) ensureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS tree_nodes (
			level  BIGINT NOT NULL,
			idx    BIGINT NOT NULL,
			value  BYTEA  NOT NULL,
			PRIMARY KEY (level, idx)
		);
		CREATE TABLE IF NOT EXISTS tree_meta (
			id    INT PRIMARY KEY DEFAULT 1,
			root  BYTEA NOT NULL,
			size  BIGINT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS anchors (
			root      BYTEA PRIMARY KEY,
			position  BIGSERIAL
		);
		CREATE TABLE IF NOT EXISTS nullifiers (
			nullifier  BYTEA PRIMARY KEY,
			spent_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	if _, err := l.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// ============================================
// AnchorOracle
// ============================================

func (l *PostgresLedger) CurrentRoot(ctx context.Context) (primitives.F, error) {
	return l.tree.Root(), nil
}

func (l *PostgresLedger) IsKnownAnchor(ctx context.Context, root primitives.F) (bool, error) {
	var exists bool
	err := l.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM anchors WHERE root = $1)`,
		fieldBytes(root),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up anchor: %w", err)
	}
	return exists, nil
}

func (l *PostgresLedger) Append(ctx context.Context, commitment primitives.F) (uint64, error) {
	pos, err := l.tree.Insert(ctx, commitment)
	if err != nil {
		return 0, fmt.Errorf("failed to append commitment: %w", err)
	}
	if err := l.recordAnchor(ctx, l.tree.Root()); err != nil {
		return 0, err
	}
	return pos, nil
}

func (l *PostgresLedger) PathTo(ctx context.Context, position uint64) (*tree.Path, error) {
	return l.tree.PathTo(ctx, position)
}

func (l *PostgresLedger) recordAnchor(ctx context.Context, root primitives.F) error {
	_, err := l.pool.Exec(ctx,
		`INSERT INTO anchors (root) VALUES ($1) ON CONFLICT (root) DO NOTHING`,
		fieldBytes(root),
	)
	if err != nil {
		return fmt.Errorf("failed to record anchor: %w", err)
	}
	return nil
}

// ============================================
// NullifierStore
// ============================================

func (l *PostgresLedger) Contains(ctx context.Context, nf primitives.F) (bool, error) {
	var exists bool
	err := l.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM nullifiers WHERE nullifier = $1)`,
		fieldBytes(nf),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up nullifier: %w", err)
	}
	return exists, nil
}

func (l *PostgresLedger) Insert(ctx context.Context, nf primitives.F) error {
	tag, err := l.pool.Exec(ctx,
		`INSERT INTO nullifiers (nullifier) VALUES ($1) ON CONFLICT (nullifier) DO NOTHING`,
		fieldBytes(nf),
	)
	if err != nil {
		return fmt.Errorf("failed to insert nullifier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNullifierSpent
	}
	return nil
}

// ============================================
// tree.Store over Postgres
// ============================================

type pgTreeStore struct {
	pool *pgxpool.Pool
}

func (s *pgTreeStore) GetNode(ctx context.Context, level, index uint64) (primitives.F, error) {
	var b []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM tree_nodes WHERE level = $1 AND idx = $2`,
		int64(level), int64(index),
	).Scan(&b)
	if err == pgx.ErrNoRows {
		return primitives.F{}, ErrNotFound
	}
	if err != nil {
		return primitives.F{}, fmt.Errorf("failed to get tree node: %w", err)
	}
	return bytesToField(b), nil
}

func (s *pgTreeStore) SetNode(ctx context.Context, level, index uint64, value primitives.F) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tree_nodes (level, idx, value) VALUES ($1, $2, $3)
		 ON CONFLICT (level, idx) DO UPDATE SET value = $3`,
		int64(level), int64(index), fieldBytes(value),
	)
	if err != nil {
		return fmt.Errorf("failed to set tree node: %w", err)
	}
	return nil
}

func (s *pgTreeStore) GetRoot(ctx context.Context) (primitives.F, error) {
	var b []byte
	err := s.pool.QueryRow(ctx, `SELECT root FROM tree_meta WHERE id = 1`).Scan(&b)
	if err == pgx.ErrNoRows {
		return primitives.F{}, ErrNotFound
	}
	if err != nil {
		return primitives.F{}, fmt.Errorf("failed to get tree root: %w", err)
	}
	return bytesToField(b), nil
}

func (s *pgTreeStore) SetRoot(ctx context.Context, root primitives.F) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tree_meta (id, root, size) VALUES (1, $1, 0)
		 ON CONFLICT (id) DO UPDATE SET root = $1`,
		fieldBytes(root),
	)
	if err != nil {
		return fmt.Errorf("failed to set tree root: %w", err)
	}
	return nil
}

func (s *pgTreeStore) GetSize(ctx context.Context) (uint64, error) {
	var size int64
	err := s.pool.QueryRow(ctx, `SELECT size FROM tree_meta WHERE id = 1`).Scan(&size)
	if err == pgx.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get tree size: %w", err)
	}
	return uint64(size), nil
}

func (s *pgTreeStore) SetSize(ctx context.Context, size uint64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tree_meta (id, root, size) VALUES (1, $1, $2)
		 ON CONFLICT (id) DO UPDATE SET size = $2`,
		make([]byte, 32), int64(size),
	)
	if err != nil {
		return fmt.Errorf("failed to set tree size: %w", err)
	}
	return nil
}

// ============================================
// Helper Functions
// ============================================

func fieldBytes(f primitives.F) []byte {
	return common.BigIntToBytes(primitives.ToBigInt(f), 32)
}

func bytesToField(b []byte) primitives.F {
	var f primitives.F
	f.SetBigInt(common.BytesToBigInt(b))
	return f
}
