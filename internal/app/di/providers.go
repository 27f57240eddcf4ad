// Package di provides dependency injection factories for creating application components.
package di

import (
	"mundel_backend/internal/feature/analysis/usecase"
	calendarusecase "mundel_backend/internal/feature/calendar/usecase"
	marketusecase "mundel_backend/internal/feature/marketdata/usecase"
	"mundel_backend/internal/platform/externalapi/fred"
	"mundel_backend/internal/platform/externalapi/langfuse"
	"mundel_backend/internal/platform/externalapi/newsapi"
	"mundel_backend/internal/platform/externalapi/tradingeconomics"
	"mundel_backend/internal/platform/externalapi/twelvedata"
	infrahttp "mundel_backend/internal/platform/http"
)

// NewQuoteRepository は為替レートリポジトリを構築します。
// TWELVE_DATA_API_KEY が未設定の場合はnilを返し、ユースケース側で縮退します。
func NewQuoteRepository() marketusecase.QuoteRepository {
	cfg := twelvedata.LoadConfig()
	if cfg.TwelveDataAPIKey == "" {
		return nil
	}
	return twelvedata.NewTwelveDataQuote(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
}

// NewIndicatorRepository はマクロ指標リポジトリを構築します。
// FRED_API_KEY が未設定の場合はnilを返します。
func NewIndicatorRepository() marketusecase.IndicatorRepository {
	cfg := fred.LoadConfig()
	if cfg.FredAPIKey == "" {
		return nil
	}
	return fred.NewFredIndicator(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
}

// NewCalendarRepository は経済指標カレンダーリポジトリを構築します。
// TRADING_ECONOMICS_API_KEY が未設定の場合はnilを返します。
func NewCalendarRepository() calendarusecase.CalendarRepository {
	cfg := tradingeconomics.LoadConfig()
	if cfg.TradingEconomicsAPIKey == "" {
		return nil
	}
	return tradingeconomics.NewTradingEconomicsCalendar(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
}

// NewNewsRepository はニュース検索リポジトリを構築します。
// NEWS_API_KEY が未設定の場合はnilを返します。
func NewNewsRepository() calendarusecase.NewsRepository {
	cfg := newsapi.LoadConfig()
	if cfg.NewsAPIKey == "" {
		return nil
	}
	return newsapi.NewNewsAPIRepository(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
}

// NewTracer はLLMトレース送信クライアントを構築します。
// Langfuseの認証情報が未設定の場合はnilを返し、トレースは無効になります。
func NewTracer() usecase.Tracer {
	cfg := langfuse.LoadConfig()
	if !cfg.Enabled() {
		return nil
	}
	return langfuse.NewClient(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
}
