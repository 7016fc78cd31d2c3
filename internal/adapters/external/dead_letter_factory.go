package external

import (
	"fmt"

	"budgetcache.app/internal/config"
	"budgetcache.app/internal/ports"
	"budgetcache.app/pkg/errors"
)

// CreateDeadLetterLog builds the dead-letter log selected by cfg.Type
func CreateDeadLetterLog(cfg *config.DeadLetterConfig) (ports.DeadLetterLog, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("dead letter config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.StoreTypeMemory:
		return NewMemoryDeadLetterLog(cfg.Capacity), nil
	case config.StoreTypeRedis:
		log, err := NewRedisDeadLetterLog(&cfg.Redis, cfg.RedisKey, cfg.Capacity)
		if err != nil {
			return nil, err
		}
		return log, nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported dead letter store type: %s", cfg.Type.String()), nil)
	}
}
