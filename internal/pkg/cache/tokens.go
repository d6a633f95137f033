package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const refreshTokenKeyPrefix = "refresh_token:"

// Session 刷新令牌对应的会话
type Session struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired 会话是否已过期
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// TokenStore 刷新令牌存储
// 优先走 Redis；Redis 未配置或不可用时回落到进程内存，
// 此时令牌不跨实例、不跨重启
type TokenStore struct {
	redis *RedisCache

	mu    sync.Mutex
	local map[string]Session
}

// NewTokenStore 创建令牌存储；redis 传 nil 表示纯内存模式
func NewTokenStore(redis *RedisCache) *TokenStore {
	return &TokenStore{
		redis: redis,
		local: make(map[string]Session),
	}
}

// Put 保存刷新令牌
func (t *TokenStore) Put(ctx context.Context, token string, s Session) {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return
	}
	if t.redis != nil {
		err := t.redis.Set(ctx, refreshTokenKeyPrefix+token, s, ttl)
		if err == nil {
			return
		}
		log.Warn().Err(err).Msg("refresh token write degraded to local memory")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.local[token] = s
}

// Get 查询刷新令牌；不存在或已过期返回 nil
func (t *TokenStore) Get(ctx context.Context, token string) *Session {
	if t.redis != nil {
		var s Session
		if err := t.redis.Get(ctx, refreshTokenKeyPrefix+token, &s); err == nil {
			if s.Expired() {
				_ = t.redis.Delete(ctx, refreshTokenKeyPrefix+token)
				return nil
			}
			return &s
		}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.local[token]
	if !ok {
		return nil
	}
	if s.Expired() {
		delete(t.local, token)
		return nil
	}
	return &s
}

// Delete 吊销刷新令牌
func (t *TokenStore) Delete(ctx context.Context, token string) {
	if t.redis != nil {
		_ = t.redis.Delete(ctx, refreshTokenKeyPrefix+token)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.local, token)
}
