package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CacheEntry はcacheテーブルの1行です。1キーが1つの論理リソース
// （リソース種別＋パラメータの組）に対応します。
type CacheEntry struct {
	CacheKey  string    `gorm:"primaryKey;column:cache_key"`
	DataJSON  string    `gorm:"column:data_json;not null"`
	FetchedAt time.Time `gorm:"column:fetched_at;not null"`
}

// TableName はgormが使用するテーブル名を返します。
func (CacheEntry) TableName() string { return "cache" }

// SQLiteCache はSQLiteファイルをバックエンドとするTTL付きキャッシュです。
// 期限切れ判定は読み取り時に now - fetched_at >= TTL で行います（受動的失効）。
// エントリの明示的な削除は行いません。
type SQLiteCache struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// OpenSQLiteCache は指定パスのSQLiteファイルを開き、cacheテーブルを
// 初期化したSQLiteCacheを返します。親ディレクトリは必要に応じて作成します。
func OpenSQLiteCache(path string, ttl time.Duration) (*SQLiteCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&CacheEntry{}); err != nil {
		return nil, err
	}
	return NewSQLiteCache(db, ttl), nil
}

// NewSQLiteCache は既存のgorm接続からSQLiteCacheを生成します。
// ttlが0以下の場合はDefaultTTLを使用します。
func NewSQLiteCache(db *gorm.DB, ttl time.Duration) *SQLiteCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SQLiteCache{db: db, ttl: ttl, now: time.Now}
}

// Get はkeyに対応する値をdestにデコードします。
// TTL内のエントリが存在した場合のみtrueを返します。
func (c *SQLiteCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.db == nil {
		return false
	}
	var row CacheEntry
	if err := c.db.WithContext(ctx).First(&row, "cache_key = ?", key).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Warn("キャッシュ読み込みに失敗", "key", key, "error", err)
		}
		return false
	}
	// 期限切れはミス扱い。次の取得成功時に同一キーが上書きされる
	if c.now().Sub(row.FetchedAt) >= c.ttl {
		return false
	}
	if err := json.Unmarshal([]byte(row.DataJSON), dest); err != nil {
		slog.Warn("キャッシュ値のデコードに失敗", "key", key, "error", err)
		return false
	}
	return true
}

// Set は値をJSONとして保存します。同一キーは上書きされ（INSERT OR REPLACE相当）、
// 失敗しても呼び出し元には伝播しません。
func (c *SQLiteCache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.db == nil {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		slog.Warn("キャッシュ値のエンコードに失敗", "key", key, "error", err)
		return
	}
	row := CacheEntry{CacheKey: key, DataJSON: string(b), FetchedAt: c.now()}
	err = c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data_json", "fetched_at"}),
	}).Create(&row).Error
	if err != nil {
		slog.Warn("キャッシュ保存に失敗", "key", key, "error", err)
	}
}
