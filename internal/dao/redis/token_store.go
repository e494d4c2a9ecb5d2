package redis

import (
	"context"
	"time"

	"reckue_account/pkg/constants"
	"reckue_account/pkg/errorx"

	"github.com/redis/go-redis/v9"
)

// rotateScript 比较并替换：KEYS[1] 当前值等于 ARGV[1] 时写入 ARGV[2]，过期时间 ARGV[3] 毫秒
var rotateScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current == ARGV[1] then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
	return 1
end
return 0
`)

// RedisTokenStore TokenStore 的 Redis 实现
type RedisTokenStore struct {
	client redis.UniversalClient
}

// NewRedisTokenStore 创建 Redis Token 存储
func NewRedisTokenStore(client redis.UniversalClient) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

// tokenKey refresh_token:<username>
func tokenKey(username string) string {
	return constants.REFRESH_TOKEN_KEY_PREFIX + username
}

// Save 覆盖写入，最近一次登录签发的令牌生效
func (s *RedisTokenStore) Save(ctx context.Context, username, tokenID string, ttl time.Duration) error {
	key := tokenKey(username)
	if err := s.client.Set(ctx, key, tokenID, ttl).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis set key %s", key)
	}
	return nil
}

// Rotate 原子地把 oldID 替换为 newID，并发刷新时只有一个请求能成功
func (s *RedisTokenStore) Rotate(ctx context.Context, username, oldID, newID string, ttl time.Duration) (bool, error) {
	key := tokenKey(username)
	n, err := rotateScript.Run(ctx, s.client, []string{key}, oldID, newID, ttl.Milliseconds()).Int()
	if err != nil {
		return false, errorx.Wrapf(err, errorx.CodeCacheError, "redis rotate key %s", key)
	}
	return n == 1, nil
}

// Ping 健康检查
func (s *RedisTokenStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errorx.Wrap(err, errorx.CodeCacheError, "redis ping")
	}
	return nil
}
