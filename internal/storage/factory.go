package storage

import (
	"context"
	"fmt"

	"github.com/saiful-70/ai-rate-limiter/internal/models"
)

// NewStore instantiates a storage backend based on the provided configuration.
// Supported types:
//   - memory: in-memory store (for testing/development)
//   - sqlite: SQLite database store (single-node persistence)
//   - postgres: PostgreSQL database store (production-ready)
func NewStore(ctx context.Context, cfg models.StorageConfig) (Store, error) {
	switch cfg.Type {
	case models.StorageTypeMemory:
		return NewMemoryStore(), nil
	case models.StorageTypeSQLite:
		return NewSQLiteStore(cfg.Database.DSN)
	case models.StorageTypePostgres:
		return NewPostgresStore(ctx, cfg.Database)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
