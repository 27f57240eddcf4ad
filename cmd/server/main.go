package main

import (
	"context"
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"mundel_backend/internal/app/di"
	"mundel_backend/internal/app/router"
	"mundel_backend/internal/feature/analysis/adapters/gemini"
	analysishandler "mundel_backend/internal/feature/analysis/transport/handler"
	analysisusecase "mundel_backend/internal/feature/analysis/usecase"
	calendarhandler "mundel_backend/internal/feature/calendar/transport/handler"
	calendarusecase "mundel_backend/internal/feature/calendar/usecase"
	marketusecase "mundel_backend/internal/feature/marketdata/usecase"
	"mundel_backend/internal/platform/cache"
	infraredis "mundel_backend/internal/platform/redis"
)

func main() {
	ctx := context.Background()

	// Gemini（必須。未設定なら起動しない）
	judge, err := gemini.NewGeminiJudge(ctx)
	if err != nil {
		log.Fatal(err)
	}

	// キャッシュ: Redisが使えなければSQLiteにフォールバック
	ttl := cache.LoadTTL()
	var marketCache marketusecase.Cache
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Falling back to SQLite cache.")
		sqliteCache, err := cache.OpenSQLiteCache(cache.LoadDBPath(), ttl)
		if err != nil {
			log.Println("[WARN] SQLite cache unavailable. Running without cache.")
		} else {
			marketCache = sqliteCache
		}
	} else {
		rdb = tmp
		marketCache = cache.NewRedisCache(rdb, ttl)
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	quoteRepo := di.NewQuoteRepository()
	indicatorRepo := di.NewIndicatorRepository()
	calendarRepo := di.NewCalendarRepository()
	newsRepo := di.NewNewsRepository()
	tracer := di.NewTracer()
	if tracer == nil {
		log.Println("[WARN] Langfuse credentials are not set. Tracing disabled.")
	}

	// Usecase
	marketUC := marketusecase.NewMarketDataUsecase(quoteRepo, indicatorRepo, marketCache)
	contextUC := calendarusecase.NewMarketContextUsecase(calendarRepo, newsRepo)
	analysisUC := analysisusecase.NewAnalysisUsecase(judge, tracer, contextUC)
	aggregateUC := analysisusecase.NewAggregateUsecase(analysisUC, marketUC, marketUC)

	// Handler
	analyzeH := analysishandler.NewAnalyzeHandler(aggregateUC, analysisUC)
	calendarH := calendarhandler.NewCalendarHandler(contextUC)

	// ルータ生成
	r := router.NewRouter(analyzeH, calendarH)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
