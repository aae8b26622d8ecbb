package kv

import (
	"fmt"

	"github.com/tahsinkabir/marketmind/internal/config"
)

// NewFromConfig creates a Store implementation based on the kv config type.
func NewFromConfig(cfg *config.Config) (Store, error) {
	switch cfg.KV.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	case "postgres":
		return NewPostgresStore(cfg.Database)
	default:
		return nil, fmt.Errorf("unknown kv type: %s", cfg.KV.Type)
	}
}
