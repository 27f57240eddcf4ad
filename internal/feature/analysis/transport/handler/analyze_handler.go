// Package handler はanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	analysisentity "mundel_backend/internal/feature/analysis/domain/entity"
	"mundel_backend/internal/feature/analysis/transport/http/dto"
	"mundel_backend/internal/feature/analysis/usecase"
	calendarentity "mundel_backend/internal/feature/calendar/domain/entity"
	marketentity "mundel_backend/internal/feature/marketdata/domain/entity"
)

// 主要指標のFREDシリーズIDです。
const (
	seriesUSPolicyRate = "FEDFUNDS"
	seriesUSCPI        = "CPIAUCSL"
	seriesJPPolicyRate = "IRSTCB01JPM156N"
	seriesJPCPI        = "JPNCPIALLMINMEI"
)

// AggregateUsecase は統合分析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AggregateUsecase interface {
	Aggregate(ctx context.Context, newsText, pair string) usecase.AggregatedResult
}

// ContextAnalyzeUsecase は市場コンテキスト付き分析のユースケースインターフェースです。
type ContextAnalyzeUsecase interface {
	AnalyzeWithMarketContext(ctx context.Context, newsText string) (analysisentity.ImpactVerdict, calendarentity.MarketContext, error)
}

// AnalyzeHandler はニュース分析のHTTPリクエストを処理します。
type AnalyzeHandler struct {
	aggregate AggregateUsecase
	contextUC ContextAnalyzeUsecase
	now       func() time.Time
}

// NewAnalyzeHandler は指定されたusecaseでAnalyzeHandlerの新しいインスタンスを生成します。
func NewAnalyzeHandler(aggregate AggregateUsecase, contextUC ContextAnalyzeUsecase) *AnalyzeHandler {
	return &AnalyzeHandler{aggregate: aggregate, contextUC: contextUC, now: time.Now}
}

// Analyze はニュースを分析し、AI判定と市場データを統合して返します。
// 各データソースの失敗はレスポンス内のエラーとして返し、常に200を返します。
//
// エンドポイント例:
// POST /api/analyze {"news_text": "...", "pair": "USD/JPY"}
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "news_text が必要です"})
		return
	}

	result := h.aggregate.Aggregate(c.Request.Context(), req.NewsText, req.Pair)

	c.JSON(http.StatusOK, buildAnalyzeResponse(result))
}

// AnalyzeWithContext は経済指標カレンダーとニュースをプロンプトに添えた分析を行います。
//
// エンドポイント例:
// POST /api/analyze/context {"news_text": "..."}
func (h *AnalyzeHandler) AnalyzeWithContext(c *gin.Context) {
	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "news_text が必要です"})
		return
	}

	verdict, mctx, err := h.contextUC.AnalyzeWithMarketContext(c.Request.Context(), req.NewsText)

	resp := dto.AnalyzeWithContextResponse{
		Analysis:      buildAnalysisResult(verdict, err),
		MarketContext: mctx,
		Timestamp:     h.now().UTC().Format(time.RFC3339),
	}
	c.JSON(http.StatusOK, resp)
}

// buildAnalyzeResponse は集約結果をレスポンスDTOに変換します。
func buildAnalyzeResponse(result usecase.AggregatedResult) dto.AnalyzeResponse {
	resp := dto.AnalyzeResponse{
		Analysis: buildAnalysisResult(result.Analysis.Verdict, result.Analysis.Err),
		MarketData: dto.MarketData{
			Errors: []string{},
		},
		Timestamp: result.Timestamp,
	}

	if result.Exchange.Err != nil {
		resp.MarketData.Errors = append(resp.MarketData.Errors, "為替データ: "+result.Exchange.Err.Error())
	} else {
		snap := result.Exchange.Snapshot
		closes := snap.Closes7D
		if closes == nil {
			closes = []marketentity.DailyClose{}
		}
		resp.MarketData.Exchange = &dto.ExchangeData{
			Pair:         snap.Pair,
			CurrentPrice: snap.CurrentPrice,
			Closes7D:     closes,
			FromCache:    snap.FromCache,
			Error:        snap.Error,
		}
	}

	if result.Macro.Err != nil {
		resp.MarketData.Errors = append(resp.MarketData.Errors, "マクロ指標: "+result.Macro.Err.Error())
	} else {
		snap := result.Macro.Snapshot
		raw := snap.Indicators
		if raw == nil {
			raw = map[string]marketentity.IndicatorEntry{}
		}
		resp.MarketData.Indicators = &dto.IndicatorsData{
			USPolicyRate: latestValue(raw, seriesUSPolicyRate),
			USCPI:        latestValue(raw, seriesUSCPI),
			JPPolicyRate: latestValue(raw, seriesJPPolicyRate),
			JPCPI:        latestValue(raw, seriesJPCPI),
			FromCache:    snap.FromCache,
			Raw:          raw,
		}
		if snap.Error != "" {
			resp.MarketData.Errors = append(resp.MarketData.Errors, snap.Error)
		}
	}

	return resp
}

// buildAnalysisResult は判定結果またはエラーをDTOに変換します。
func buildAnalysisResult(verdict analysisentity.ImpactVerdict, err error) dto.AnalysisResult {
	if err != nil {
		return dto.AnalysisResult{Error: err.Error()}
	}
	return dto.AnalysisResult{
		ISShift: verdict.ISShift,
		LMShift: verdict.LMShift,
		BPShift: verdict.BPShift,
		LogicJP: verdict.LogicJP,
	}
}

// latestValue は指定シリーズの最新値を返します。エントリがない場合はnilです。
func latestValue(indicators map[string]marketentity.IndicatorEntry, seriesID string) *float64 {
	entry, ok := indicators[seriesID]
	if !ok {
		return nil
	}
	return entry.LatestValue
}
