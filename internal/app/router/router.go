// Package router はHTTPルーティングの定義を提供します。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	analysishandler "mundel_backend/internal/feature/analysis/transport/handler"
	calendarhandler "mundel_backend/internal/feature/calendar/transport/handler"
	"mundel_backend/internal/platform/http/handler"
)

// NewRouter はすべてのエンドポイントを登録したginエンジンを構築します。
func NewRouter(analyze *analysishandler.AnalyzeHandler, calendar *calendarhandler.CalendarHandler) *gin.Engine {
	r := gin.Default()

	// フロントエンド（React / Next.js）からのアクセスを許可
	r.Use(cors.Default())

	api := r.Group("/api")
	{
		// 導通確認用
		api.GET("/health", handler.Health)
		// ニュース分析＋市場データ統合
		api.POST("/analyze", analyze.Analyze)
		// 市場コンテキスト付き分析
		api.POST("/analyze/context", analyze.AnalyzeWithContext)
		// 経済指標カレンダーとニュース
		api.GET("/calendar", calendar.GetCalendar)
	}

	return r
}
