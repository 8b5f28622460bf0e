package mirror

import (
	"context"
	"fmt"

	"github.com/talentflow-hq/talentflow/internal/config"
)

// New constructs the configured mirror backend. Called once at server
// startup. The postgres backend runs its migrations before returning.
func New(ctx context.Context, cfg config.MirrorConfig) (Mirror, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryMirror(), nil
	case "redis":
		return NewRedisMirror(cfg.RedisURL)
	case "postgres":
		if err := RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
			return nil, err
		}
		pool, err := Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return NewPostgresMirror(pool), nil
	default:
		return nil, fmt.Errorf("unknown mirror backend %q: must be one of memory, redis, postgres", cfg.Backend)
	}
}
