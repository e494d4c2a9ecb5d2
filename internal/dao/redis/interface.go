package redis

import (
	"context"
	"time"
)

// TokenStore 记录每个用户当前有效的 Refresh Token 标识
// Service 层依赖此接口而非具体 Redis 实现
type TokenStore interface {
	// Save 覆盖写入用户当前的 Refresh Token 标识
	Save(ctx context.Context, username, tokenID string, ttl time.Duration) error
	// Rotate 仅当当前标识等于 oldID 时替换为 newID，返回是否替换成功
	Rotate(ctx context.Context, username, oldID, newID string, ttl time.Duration) (bool, error)
	// Ping 健康检查
	Ping(ctx context.Context) error
}
