package journal

import (
	"context"
	"fmt"
	"time"
)

// Record is one journaled tool invocation that touched a chain or the
// project backend. Read-only tools are not journaled.
type Record struct {
	ID        string            `json:"id"`
	Tool      string            `json:"tool"`
	Network   string            `json:"network,omitempty"`
	ProjectID string            `json:"project_id,omitempty"`
	Status    string            `json:"status"`
	TxHashes  []string          `json:"tx_hashes,omitempty"`
	Addresses map[string]string `json:"addresses,omitempty"`
	Detail    string            `json:"detail,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Tool      string
	Network   string
	ProjectID string
	Limit     int
}

// Store persists invocation records. Implementations: memory, postgres.
type Store interface {
	Append(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, filter Filter) ([]*Record, error)
	Close() error
}

// Open selects a store by driver name.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "postgres":
		if dsn == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
		return NewPGStore(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown journal driver %q (want memory or postgres)", driver)
	}
}

// NewID builds a record ID from the current time.
func NewID() string {
	return fmt.Sprintf("jrn-%d", time.Now().UnixNano())
}
