package cache

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// DefaultDBPath はSQLiteキャッシュファイルのデフォルトパスです。
const DefaultDBPath = "/tmp/mundel_data/mundel_cache.db"

// LoadTTL は環境変数 CACHE_TTL_SECONDS からTTLを読み込みます。
// 未設定または不正な値の場合はDefaultTTLを返します。
func LoadTTL() time.Duration {
	s := os.Getenv("CACHE_TTL_SECONDS")
	if s == "" {
		return DefaultTTL
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		slog.Warn("CACHE_TTL_SECONDS が不正なためデフォルト値を使用します", "value", s)
		return DefaultTTL
	}
	return time.Duration(n) * time.Second
}

// LoadDBPath は環境変数 CACHE_DB_PATH からSQLiteキャッシュの
// ファイルパスを読み込みます。未設定の場合はDefaultDBPathを返します。
func LoadDBPath() string {
	if p := os.Getenv("CACHE_DB_PATH"); p != "" {
		return p
	}
	return DefaultDBPath
}
