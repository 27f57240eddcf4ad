// Package cache は市場データスナップショット用のTTL付きキーバリューキャッシュを提供します。
// キャッシュはあくまで最適化であり、ストレージ障害は読み取り時はミス、
// 書き込み時は何もしない扱いに縮退します。
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL はキャッシュエントリのデフォルト有効期間です（1時間）。
const DefaultTTL = time.Hour

// RedisCache はRedisをバックエンドとするTTL付きキャッシュです。
// 期限切れはRedisのSET期限で処理されます。
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache はRedisCacheの新しいインスタンスを生成します。
// ttlが0以下の場合はDefaultTTLを使用します。
func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// Get はkeyに対応する値をdestにデコードします。
// TTL内のエントリが存在した場合のみtrueを返します。
func (c *RedisCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		// 破損したエントリは削除してミス扱い
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// Set は値をJSONとして保存します。同一キーは上書きされ、
// 失敗しても呼び出し元には伝播しません。
func (c *RedisCache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.rdb == nil {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		slog.Warn("キャッシュ値のエンコードに失敗", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		slog.Warn("キャッシュ保存に失敗", "key", key, "error", err)
	}
}
