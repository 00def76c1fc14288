package cache

import (
	"github.com/gobeaver/cipherkit/cache/driver/memory"
	"github.com/gobeaver/cipherkit/cache/driver/redis"
)

func memoryRegister(cfg Config) (Cache, error) {
	c, err := memory.New(memory.Config{
		MaxKeys:         cfg.MaxKeys,
		DefaultTTL:      cfg.ParsedDefaultTTL(),
		CleanupInterval: cfg.ParsedCleanupInterval(),
		KeyPrefix:       cfg.prefix(),
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func redisRegister(cfg Config) (Cache, error) {
	c, err := redis.New(redis.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		Database: cfg.Database,
		URL:      cfg.URL,

		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		UseTLS:   cfg.UseTLS,
		CertFile: cfg.CertFile,
		KeyFile:  cfg.KeyFile,

		DefaultTTL: cfg.ParsedDefaultTTL(),
		KeyPrefix:  cfg.prefix(),
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
