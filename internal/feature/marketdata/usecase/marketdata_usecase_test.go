package usecase

import (
	"context"
	"errors"
	"testing"

	"mundel_backend/internal/feature/marketdata/domain/entity"
)

// mockQuoteRepository はQuoteRepositoryのテスト用モックです。
type mockQuoteRepository struct {
	getDailyClosesFunc func(ctx context.Context, symbol string, days int) ([]entity.DailyClose, error)
	calls              int
}

func (m *mockQuoteRepository) GetDailyCloses(ctx context.Context, symbol string, days int) ([]entity.DailyClose, error) {
	m.calls++
	return m.getDailyClosesFunc(ctx, symbol, days)
}

// mockIndicatorRepository はIndicatorRepositoryのテスト用モックです。
type mockIndicatorRepository struct {
	getLatestObservationFunc func(ctx context.Context, seriesID string) (entity.Observation, error)
}

func (m *mockIndicatorRepository) GetLatestObservation(ctx context.Context, seriesID string) (entity.Observation, error) {
	return m.getLatestObservationFunc(ctx, seriesID)
}

// mockCache はCacheのテスト用インメモリ実装です。
type mockCache struct {
	store map[string]any
	sets  int
}

func newMockCache() *mockCache {
	return &mockCache{store: map[string]any{}}
}

func (m *mockCache) Get(_ context.Context, key string, dest any) bool {
	v, ok := m.store[key]
	if !ok {
		return false
	}
	switch d := dest.(type) {
	case *entity.ExchangeSnapshot:
		*d = v.(entity.ExchangeSnapshot)
	case *entity.MacroSnapshot:
		*d = v.(entity.MacroSnapshot)
	default:
		return false
	}
	return true
}

func (m *mockCache) Set(_ context.Context, key string, value any) {
	m.sets++
	m.store[key] = value
}

func floatPtr(v float64) *float64 { return &v }

func TestGetExchangeRate_Success(t *testing.T) {
	t.Parallel()

	quote := &mockQuoteRepository{
		getDailyClosesFunc: func(_ context.Context, symbol string, days int) ([]entity.DailyClose, error) {
			if symbol != "USD/JPY" {
				t.Errorf("expected symbol USD/JPY, got %s", symbol)
			}
			if days != 7 {
				t.Errorf("expected 7 days, got %d", days)
			}
			return []entity.DailyClose{
				{Date: "2025-06-02", Close: 155.90},
				{Date: "2025-06-03", Close: 156.45},
			}, nil
		},
	}
	cache := newMockCache()
	mu := NewMarketDataUsecase(quote, nil, cache)

	snap := mu.GetExchangeRate(context.Background(), "USD/JPY")

	if snap.Error != "" {
		t.Fatalf("unexpected error: %s", snap.Error)
	}
	if snap.CurrentPrice == nil || *snap.CurrentPrice != 156.45 {
		t.Errorf("expected current price 156.45 (last close), got %v", snap.CurrentPrice)
	}
	if len(snap.Closes7D) != 2 {
		t.Errorf("expected 2 closes, got %d", len(snap.Closes7D))
	}
	if snap.FromCache {
		t.Error("expected from_cache false on fresh fetch")
	}
	if cache.sets != 1 {
		t.Errorf("expected snapshot to be cached, sets=%d", cache.sets)
	}
}

func TestGetExchangeRate_EmptyPairUsesDefault(t *testing.T) {
	t.Parallel()

	quote := &mockQuoteRepository{
		getDailyClosesFunc: func(_ context.Context, symbol string, _ int) ([]entity.DailyClose, error) {
			if symbol != DefaultPair {
				t.Errorf("expected default pair %s, got %s", DefaultPair, symbol)
			}
			return []entity.DailyClose{{Date: "2025-06-03", Close: 156.45}}, nil
		},
	}
	mu := NewMarketDataUsecase(quote, nil, nil)

	snap := mu.GetExchangeRate(context.Background(), "")

	if snap.Pair != DefaultPair {
		t.Errorf("expected pair %s, got %s", DefaultPair, snap.Pair)
	}
}

func TestGetExchangeRate_CacheHit(t *testing.T) {
	t.Parallel()

	quote := &mockQuoteRepository{
		getDailyClosesFunc: func(_ context.Context, _ string, _ int) ([]entity.DailyClose, error) {
			return []entity.DailyClose{{Date: "2025-06-03", Close: 156.45}}, nil
		},
	}
	cache := newMockCache()
	cache.store["exchange:USD/JPY"] = entity.ExchangeSnapshot{
		Pair:         "USD/JPY",
		CurrentPrice: floatPtr(155.00),
	}
	mu := NewMarketDataUsecase(quote, nil, cache)

	snap := mu.GetExchangeRate(context.Background(), "USD/JPY")

	if !snap.FromCache {
		t.Error("expected from_cache true on cache hit")
	}
	if snap.CurrentPrice == nil || *snap.CurrentPrice != 155.00 {
		t.Errorf("expected cached price 155.00, got %v", snap.CurrentPrice)
	}
	if quote.calls != 0 {
		t.Errorf("expected no provider call on cache hit, got %d", quote.calls)
	}
}

func TestGetExchangeRate_ProviderError(t *testing.T) {
	t.Parallel()

	quote := &mockQuoteRepository{
		getDailyClosesFunc: func(_ context.Context, _ string, _ int) ([]entity.DailyClose, error) {
			return nil, errors.New("twelvedata http 429")
		},
	}
	cache := newMockCache()
	mu := NewMarketDataUsecase(quote, nil, cache)

	snap := mu.GetExchangeRate(context.Background(), "USD/JPY")

	if snap.Error != "twelvedata http 429" {
		t.Errorf("expected provider error in snapshot, got %q", snap.Error)
	}
	if snap.CurrentPrice != nil {
		t.Error("expected nil current price on error")
	}
	// エラー結果はキャッシュしない
	if cache.sets != 0 {
		t.Errorf("expected no cache write on error, sets=%d", cache.sets)
	}
}

func TestGetExchangeRate_EmptyCloses(t *testing.T) {
	t.Parallel()

	quote := &mockQuoteRepository{
		getDailyClosesFunc: func(_ context.Context, _ string, _ int) ([]entity.DailyClose, error) {
			return []entity.DailyClose{}, nil
		},
	}
	mu := NewMarketDataUsecase(quote, nil, nil)

	snap := mu.GetExchangeRate(context.Background(), "USD/JPY")

	if snap.Error != "為替データが取得できませんでした" {
		t.Errorf("unexpected error message %q", snap.Error)
	}
}

func TestGetExchangeRate_NoCredential(t *testing.T) {
	t.Parallel()

	mu := NewMarketDataUsecase(nil, nil, nil)

	snap := mu.GetExchangeRate(context.Background(), "USD/JPY")

	if snap.Error != "TWELVE_DATA_API_KEY が設定されていません" {
		t.Errorf("unexpected error message %q", snap.Error)
	}
}

func TestGetMacroIndicators_Success(t *testing.T) {
	t.Parallel()

	values := map[string]float64{
		"FEDFUNDS":        4.33,
		"CPIAUCSL":        320.321,
		"IRSTCB01JPM156N": 0.50,
		"JPNCPIALLMINMEI": 110.9,
	}
	indicator := &mockIndicatorRepository{
		getLatestObservationFunc: func(_ context.Context, seriesID string) (entity.Observation, error) {
			v := values[seriesID]
			return entity.Observation{Date: "2025-05-01", Value: &v}, nil
		},
	}
	cache := newMockCache()
	mu := NewMarketDataUsecase(nil, indicator, cache)

	snap := mu.GetMacroIndicators(context.Background())

	if snap.Error != "" {
		t.Fatalf("unexpected error: %s", snap.Error)
	}
	if len(snap.Indicators) != 4 {
		t.Fatalf("expected 4 indicators, got %d", len(snap.Indicators))
	}
	fed := snap.Indicators["FEDFUNDS"]
	if fed.LatestValue == nil || *fed.LatestValue != 4.33 {
		t.Errorf("expected FEDFUNDS 4.33, got %v", fed.LatestValue)
	}
	if fed.Label != "米政策金利（FF金利）" {
		t.Errorf("unexpected label %q", fed.Label)
	}
	if cache.sets != 1 {
		t.Errorf("expected snapshot to be cached, sets=%d", cache.sets)
	}
}

func TestGetMacroIndicators_PartialFailureIsolated(t *testing.T) {
	t.Parallel()

	indicator := &mockIndicatorRepository{
		getLatestObservationFunc: func(_ context.Context, seriesID string) (entity.Observation, error) {
			if seriesID == "CPIAUCSL" {
				return entity.Observation{}, errors.New("fred http 500")
			}
			v := 1.0
			return entity.Observation{Date: "2025-05-01", Value: &v}, nil
		},
	}
	mu := NewMarketDataUsecase(nil, indicator, nil)

	snap := mu.GetMacroIndicators(context.Background())

	if snap.Error != "" {
		t.Fatalf("expected no top-level error on partial failure, got %q", snap.Error)
	}
	if snap.Indicators["CPIAUCSL"].Error != "fred http 500" {
		t.Errorf("expected per-series error, got %q", snap.Indicators["CPIAUCSL"].Error)
	}
	if snap.Indicators["FEDFUNDS"].Error != "" {
		t.Errorf("expected other series unaffected, got %q", snap.Indicators["FEDFUNDS"].Error)
	}
}

func TestGetMacroIndicators_AllFailed(t *testing.T) {
	t.Parallel()

	indicator := &mockIndicatorRepository{
		getLatestObservationFunc: func(_ context.Context, _ string) (entity.Observation, error) {
			return entity.Observation{}, errors.New("fred http 500")
		},
	}
	cache := newMockCache()
	mu := NewMarketDataUsecase(nil, indicator, cache)

	snap := mu.GetMacroIndicators(context.Background())

	if snap.Error == "" {
		t.Error("expected top-level error when all series fail")
	}
	if cache.sets != 0 {
		t.Errorf("expected no cache write when all series fail, sets=%d", cache.sets)
	}
}

func TestGetMacroIndicators_NoCredential(t *testing.T) {
	t.Parallel()

	mu := NewMarketDataUsecase(nil, nil, nil)

	snap := mu.GetMacroIndicators(context.Background())

	if snap.Error != "FRED_API_KEY が設定されていません" {
		t.Errorf("unexpected error message %q", snap.Error)
	}
	if len(snap.Indicators) != 0 {
		t.Errorf("expected no per-series attempts, got %d entries", len(snap.Indicators))
	}
}

func TestGetMacroIndicators_CacheHit(t *testing.T) {
	t.Parallel()

	indicatorCalls := 0
	indicator := &mockIndicatorRepository{
		getLatestObservationFunc: func(_ context.Context, _ string) (entity.Observation, error) {
			indicatorCalls++
			return entity.Observation{}, nil
		},
	}
	cache := newMockCache()
	cache.store[macroCacheKey] = entity.MacroSnapshot{
		Indicators: map[string]entity.IndicatorEntry{
			"FEDFUNDS": {Label: "米政策金利（FF金利）", LatestValue: floatPtr(4.33)},
		},
	}
	mu := NewMarketDataUsecase(nil, indicator, cache)

	snap := mu.GetMacroIndicators(context.Background())

	if !snap.FromCache {
		t.Error("expected from_cache true on cache hit")
	}
	if indicatorCalls != 0 {
		t.Errorf("expected no provider calls on cache hit, got %d", indicatorCalls)
	}
}
