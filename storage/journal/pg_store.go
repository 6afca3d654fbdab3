package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists records in PostgreSQL so journals survive restarts
// and can be shared between agent instances.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(ctx context.Context, dsn string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &PGStore{pool: pool}
	if err := s.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PGStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS tool_journal (
		id TEXT PRIMARY KEY,
		tool TEXT NOT NULL,
		network TEXT NOT NULL DEFAULT '',
		project_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		tx_hashes JSONB NOT NULL DEFAULT '[]',
		addresses JSONB NOT NULL DEFAULT '{}',
		detail TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_tool_journal_tool ON tool_journal(tool);
	CREATE INDEX IF NOT EXISTS idx_tool_journal_project ON tool_journal(project_id);
	CREATE INDEX IF NOT EXISTS idx_tool_journal_created ON tool_journal(created_at DESC);
	`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("init journal schema: %w", err)
	}
	return nil
}

func (s *PGStore) Append(ctx context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("nil record")
	}
	if rec.Tool == "" {
		return fmt.Errorf("record missing tool name")
	}
	if rec.ID == "" {
		rec.ID = NewID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	txHashes := rec.TxHashes
	if txHashes == nil {
		txHashes = []string{}
	}
	addresses := rec.Addresses
	if addresses == nil {
		addresses = map[string]string{}
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tool_journal (id, tool, network, project_id, status, tx_hashes, addresses, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.Tool, rec.Network, rec.ProjectID, rec.Status, txHashes, addresses, rec.Detail, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert journal record: %w", err)
	}
	return nil
}

func (s *PGStore) Get(ctx context.Context, id string) (*Record, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, tool, network, project_id, status, tx_hashes, addresses, detail, created_at
		FROM tool_journal WHERE id = $1`, id)

	var rec Record
	if err := row.Scan(&rec.ID, &rec.Tool, &rec.Network, &rec.ProjectID, &rec.Status,
		&rec.TxHashes, &rec.Addresses, &rec.Detail, &rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("record %s not found: %w", id, err)
	}
	return &rec, nil
}

func (s *PGStore) List(ctx context.Context, filter Filter) ([]*Record, error) {
	var conds []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Tool != "" {
		conds = append(conds, "tool = "+arg(filter.Tool))
	}
	if filter.Network != "" {
		conds = append(conds, "network = "+arg(filter.Network))
	}
	if filter.ProjectID != "" {
		conds = append(conds, "project_id = "+arg(filter.ProjectID))
	}

	query := `SELECT id, tool, network, project_id, status, tx_hashes, addresses, detail, created_at FROM tool_journal`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal records: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Tool, &rec.Network, &rec.ProjectID, &rec.Status,
			&rec.TxHashes, &rec.Addresses, &rec.Detail, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan journal record: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}
