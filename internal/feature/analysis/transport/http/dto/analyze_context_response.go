package dto

import (
	calendarentity "mundel_backend/internal/feature/calendar/domain/entity"
)

// AnalyzeWithContextResponse はPOST /api/analyze/context のレスポンスです。
// 分析結果に加え、プロンプトに利用した市場コンテキストをそのまま返します。
type AnalyzeWithContextResponse struct {
	Analysis      AnalysisResult               `json:"analysis"`
	MarketContext calendarentity.MarketContext `json:"market_context"`
	Timestamp     string                       `json:"timestamp"`
}
