// Package handler はcalendarフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mundel_backend/internal/feature/calendar/domain/entity"
)

// MarketContextUsecase は市場コンテキスト取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MarketContextUsecase interface {
	GetIntegratedMarketData(ctx context.Context) entity.MarketContext
}

// CalendarHandler は経済指標カレンダーのHTTPリクエストを処理します。
type CalendarHandler struct {
	uc  MarketContextUsecase
	now func() time.Time
}

// NewCalendarHandler は指定されたusecaseでCalendarHandlerの新しいインスタンスを生成します。
func NewCalendarHandler(uc MarketContextUsecase) *CalendarHandler {
	return &CalendarHandler{uc: uc, now: time.Now}
}

// GetCalendar は経済指標カレンダーと関連ニュースの統合データをJSONで返します。
// データソースの失敗はレスポンス内のerrorsとして返し、常に200を返します。
//
// エンドポイント例:
// GET /api/calendar
func (h *CalendarHandler) GetCalendar(c *gin.Context) {
	result := h.uc.GetIntegratedMarketData(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"economic_calendar": result.EconomicCalendar,
		"news":              result.News,
		"errors":            result.Errors,
		"timestamp":         h.now().UTC().Format(time.RFC3339),
	})
}
