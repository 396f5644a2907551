package blob

import (
	"context"
	"fmt"

	"github.com/erickmmolina/baby-shower-registry/internal/common/config"
)

// New selects a store backend from configuration. The original deployment
// grew separate handler stacks per backend; here a backend is just a value
// of the same interface.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Backend {
	case "redis":
		return OpenRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	case "file":
		return OpenFile(cfg.Store.DataDir)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Store.Backend)
	}
}
