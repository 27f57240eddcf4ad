// Package usecase は経済指標カレンダーと金融ニュースの統合取得ロジックを提供します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"mundel_backend/internal/feature/calendar/domain/entity"
)

const (
	// maxCalendarEvents はレスポンスに含める最大イベント数です。
	maxCalendarEvents = 30
	// newsPageSize は取得するニュース記事数です。
	newsPageSize = 10
	// calendarWindowDays はカレンダーの先読み日数です。
	calendarWindowDays = 7
	// newsLookbackDays はニュース検索の遡り日数です。
	newsLookbackDays = 3
	// newsQuery はドル円関連ニュースの検索クエリです。
	newsQuery = "USD JPY 経済指標 OR 雇用統計 OR CPI"
)

// calendarCountries はカレンダー取得対象の国です。
var calendarCountries = []string{"united states", "japan"}

// CalendarRepository は経済指標カレンダーを取得するリポジトリです。
// Goの慣例に従い、インターフェースは利用者（usecase/handler）側で定義します。
type CalendarRepository interface {
	GetEvents(ctx context.Context, countries []string, from, to time.Time) ([]entity.CalendarEvent, error)
}

// NewsRepository は金融ニュースを検索するリポジトリです。
type NewsRepository interface {
	Search(ctx context.Context, query string, from time.Time, pageSize int) ([]entity.NewsArticle, error)
}

// marketContextUsecase はカレンダーとニュースの統合取得ユースケースです。
type marketContextUsecase struct {
	calendar CalendarRepository
	news     NewsRepository
	now      func() time.Time
}

// MarketContextUsecase は市場コンテキスト取得のユースケースインターフェースです。
type MarketContextUsecase interface {
	GetIntegratedMarketData(ctx context.Context) entity.MarketContext
}

// NewMarketContextUsecase はMarketContextUsecaseの新しいインスタンスを生成します。
// calendarやnewsがnilの場合、該当データは空のままエラーが記録されます。
func NewMarketContextUsecase(calendar CalendarRepository, news NewsRepository) MarketContextUsecase {
	return &marketContextUsecase{
		calendar: calendar,
		news:     news,
		now:      time.Now,
	}
}

// GetIntegratedMarketData は今後1週間の日米経済指標カレンダーと
// 直近のドル円関連ニュースをまとめて取得します。
// 片方の失敗はErrorsに記録され、もう片方の結果には影響しません。
func (mc *marketContextUsecase) GetIntegratedMarketData(ctx context.Context) entity.MarketContext {
	result := entity.MarketContext{
		EconomicCalendar: []entity.CalendarEvent{},
		News:             []entity.NewsArticle{},
		Errors:           []string{},
	}
	now := mc.now()

	if mc.calendar == nil {
		result.Errors = append(result.Errors, "TRADING_ECONOMICS_API_KEY が設定されていません")
	} else {
		events, err := mc.calendar.GetEvents(ctx, calendarCountries, now, now.AddDate(0, 0, calendarWindowDays))
		if err != nil {
			slog.Warn("経済指標カレンダーの取得に失敗", "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("経済指標カレンダー: %v", err))
		} else {
			result.EconomicCalendar = sortAndLimitEvents(events)
		}
	}

	if mc.news == nil {
		result.Errors = append(result.Errors, "NEWS_API_KEY が設定されていません")
	} else {
		articles, err := mc.news.Search(ctx, newsQuery, now.AddDate(0, 0, -newsLookbackDays), newsPageSize)
		if err != nil {
			slog.Warn("ニュースの取得に失敗", "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("ニュース: %v", err))
		} else {
			result.News = sortNewsByRecency(articles)
		}
	}

	return result
}

// sortAndLimitEvents はイベントを重要度の高い順（同率は日付の早い順）に
// 安定ソートし、最大maxCalendarEvents件に切り詰めます。
func sortAndLimitEvents(events []entity.CalendarEvent) []entity.CalendarEvent {
	sorted := make([]entity.CalendarEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Importance != sorted[j].Importance {
			return sorted[i].Importance > sorted[j].Importance
		}
		return sorted[i].Date < sorted[j].Date
	})
	if len(sorted) > maxCalendarEvents {
		sorted = sorted[:maxCalendarEvents]
	}
	return sorted
}

// sortNewsByRecency は記事を公開日時の新しい順に安定ソートします。
func sortNewsByRecency(articles []entity.NewsArticle) []entity.NewsArticle {
	sorted := make([]entity.NewsArticle, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt > sorted[j].PublishedAt
	})
	return sorted
}
