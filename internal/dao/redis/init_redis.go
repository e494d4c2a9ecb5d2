// Package redis 封装 Refresh Token 标识的存储
// 使用 github.com/redis/go-redis/v9 作为底层客户端
package redis

import (
	"context"
	"fmt"
	"time"

	"reckue_account/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewClient 根据配置创建 Redis 客户端并做一次连通性检查
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	addr := cfg.Address()

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 50
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.Db,
		PoolSize:     poolSize,
		MinIdleConns: poolSize / 5,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}

	zap.L().Info("redis connected", zap.String("addr", addr), zap.Int("db", cfg.Db))
	return client, nil
}
