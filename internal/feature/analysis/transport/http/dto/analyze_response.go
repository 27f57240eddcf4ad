package dto

import (
	marketentity "mundel_backend/internal/feature/marketdata/domain/entity"
)

// AnalysisResult はAI分析結果です。失敗時はErrorのみが設定されます。
type AnalysisResult struct {
	ISShift string `json:"is_shift,omitempty"` // IS曲線のシフト方向
	LMShift string `json:"lm_shift,omitempty"` // LM曲線のシフト方向
	BPShift string `json:"bp_shift,omitempty"` // BP曲線のシフト方向
	LogicJP string `json:"logic_jp,omitempty"` // 日本語での経済学的解説
	Error   string `json:"error,omitempty"`    // 分析失敗時のエラー
}

// ExchangeData は為替データ部分です。
type ExchangeData struct {
	Pair         string                    `json:"pair"`
	CurrentPrice *float64                  `json:"current_price"`
	Closes7D     []marketentity.DailyClose `json:"closes_7d"`
	FromCache    bool                      `json:"from_cache"`
	Error        string                    `json:"error,omitempty"`
}

// IndicatorsData はマクロ指標部分です。主要4指標をフラットに持ち、
// rawに全シリーズの詳細を含めます。
type IndicatorsData struct {
	USPolicyRate *float64                                `json:"us_policy_rate"`
	USCPI        *float64                                `json:"us_cpi"`
	JPPolicyRate *float64                                `json:"jp_policy_rate"`
	JPCPI        *float64                                `json:"jp_cpi"`
	FromCache    bool                                    `json:"from_cache"`
	Raw          map[string]marketentity.IndicatorEntry `json:"raw"`
}

// MarketData は市場データの統合部分です。取得失敗はErrorsに集約されます。
type MarketData struct {
	Exchange   *ExchangeData   `json:"exchange"`
	Indicators *IndicatorsData `json:"indicators"`
	Errors     []string        `json:"errors"`
}

// AnalyzeResponse はPOST /api/analyze のレスポンスです。
type AnalyzeResponse struct {
	Analysis   AnalysisResult `json:"analysis"`
	MarketData MarketData     `json:"market_data"`
	Timestamp  string         `json:"timestamp"`
}

// ErrorResponse はエラー応答の共通DTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}
