// Package usecase は為替レートとマクロ経済指標の取得ロジックを提供します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mundel_backend/internal/feature/marketdata/domain/entity"
)

const (
	// DefaultPair はデフォルトの通貨ペアです。
	DefaultPair = "USD/JPY"
	// closesWindowDays は取得する日足終値の日数です。
	closesWindowDays = 7
	// macroCacheKey はマクロ指標バンドルのキャッシュキーです。
	macroCacheKey = "macro:indicators"
)

// macroSeries は取得対象のFREDシリーズと日本語ラベルの対応です。
var macroSeries = map[string]string{
	"FEDFUNDS":        "米政策金利（FF金利）",
	"CPIAUCSL":        "米消費者物価指数（CPI）",
	"IRSTCB01JPM156N": "日本政策金利",
	"JPNCPIALLMINMEI": "日本消費者物価指数（CPI）",
}

// Cache は市場データスナップショットのTTL付きキャッシュです。
// Goの慣例に従い、インターフェースは利用者（usecase/handler）側で定義します。
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
}

// QuoteRepository は為替レートの日足終値を取得するリポジトリです。
type QuoteRepository interface {
	GetDailyCloses(ctx context.Context, symbol string, days int) ([]entity.DailyClose, error)
}

// IndicatorRepository はマクロ経済指標の最新観測値を取得するリポジトリです。
type IndicatorRepository interface {
	GetLatestObservation(ctx context.Context, seriesID string) (entity.Observation, error)
}

// marketDataUsecase は為替レートとマクロ指標の取得ユースケースです。
type marketDataUsecase struct {
	quote     QuoteRepository
	indicator IndicatorRepository
	cache     Cache
	now       func() time.Time
}

// MarketDataUsecase は市場データ取得のユースケースインターフェースです。
type MarketDataUsecase interface {
	GetExchangeRate(ctx context.Context, pair string) entity.ExchangeSnapshot
	GetMacroIndicators(ctx context.Context) entity.MacroSnapshot
}

// NewMarketDataUsecase はMarketDataUsecaseの新しいインスタンスを生成します。
// quoteやindicatorがnilの場合、該当データはエラー付きスナップショットになります。
// cacheはnil可で、その場合キャッシュは使用されません。
func NewMarketDataUsecase(quote QuoteRepository, indicator IndicatorRepository, cache Cache) MarketDataUsecase {
	return &marketDataUsecase{
		quote:     quote,
		indicator: indicator,
		cache:     cache,
		now:       time.Now,
	}
}

// GetExchangeRate は指定ペアの現在値と直近7日分の終値を取得します。
// エラーはスナップショットのErrorフィールドに格納され、呼び出し元には伝播しません。
func (mu *marketDataUsecase) GetExchangeRate(ctx context.Context, pair string) entity.ExchangeSnapshot {
	if pair == "" {
		pair = DefaultPair
	}
	cacheKey := "exchange:" + pair

	if mu.cache != nil {
		var cached entity.ExchangeSnapshot
		if mu.cache.Get(ctx, cacheKey, &cached) {
			cached.FromCache = true
			return cached
		}
	}

	snapshot := entity.ExchangeSnapshot{
		Pair:      pair,
		FetchedAt: mu.now().UTC().Format(time.RFC3339),
	}

	if mu.quote == nil {
		snapshot.Error = "TWELVE_DATA_API_KEY が設定されていません"
		return snapshot
	}

	closes, err := mu.quote.GetDailyCloses(ctx, pair, closesWindowDays)
	if err != nil {
		slog.Warn("為替データの取得に失敗", "pair", pair, "error", err)
		snapshot.Error = err.Error()
		return snapshot
	}
	if len(closes) == 0 {
		snapshot.Error = "為替データが取得できませんでした"
		return snapshot
	}

	latest := closes[len(closes)-1].Close
	snapshot.CurrentPrice = &latest
	snapshot.Closes7D = closes

	// 成功したスナップショットのみキャッシュする
	if mu.cache != nil {
		mu.cache.Set(ctx, cacheKey, snapshot)
	}
	return snapshot
}

// GetMacroIndicators は日米の政策金利とCPIの最新値をまとめて取得します。
// シリーズごとの失敗は該当エントリのErrorに隔離され、他のシリーズには影響しません。
func (mu *marketDataUsecase) GetMacroIndicators(ctx context.Context) entity.MacroSnapshot {
	if mu.cache != nil {
		var cached entity.MacroSnapshot
		if mu.cache.Get(ctx, macroCacheKey, &cached) {
			cached.FromCache = true
			return cached
		}
	}

	snapshot := entity.MacroSnapshot{
		Indicators: map[string]entity.IndicatorEntry{},
		FetchedAt:  mu.now().UTC().Format(time.RFC3339),
	}

	if mu.indicator == nil {
		snapshot.Error = "FRED_API_KEY が設定されていません"
		return snapshot
	}

	failed := 0
	for seriesID, label := range macroSeries {
		entry := entity.IndicatorEntry{Label: label}
		obs, err := mu.indicator.GetLatestObservation(ctx, seriesID)
		if err != nil {
			slog.Warn("マクロ指標の取得に失敗", "series", seriesID, "error", err)
			entry.Error = err.Error()
			failed++
		} else {
			entry.LatestValue = obs.Value
			entry.LatestDate = obs.Date
		}
		snapshot.Indicators[seriesID] = entry
	}

	if failed == len(macroSeries) {
		snapshot.Error = fmt.Sprintf("全%d系列の取得に失敗しました", len(macroSeries))
		return snapshot
	}

	if mu.cache != nil {
		mu.cache.Set(ctx, macroCacheKey, snapshot)
	}
	return snapshot
}
