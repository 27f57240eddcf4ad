// Package entity はcalendarフィーチャーのドメインモデルを定義します。
package entity

// CalendarEvent は経済指標カレンダーの1イベントです。
type CalendarEvent struct {
	Date       string `json:"date"`       // 発表日時
	Country    string `json:"country"`    // 対象国
	Event      string `json:"event"`      // イベント名
	Importance int    `json:"importance"` // 重要度（大きいほど重要。不明な場合は0）
	Actual     string `json:"actual,omitempty"`
	Forecast   string `json:"forecast,omitempty"`
	Previous   string `json:"previous,omitempty"`
}

// NewsArticle は為替市場関連のニュース記事1件です。
type NewsArticle struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
}

// MarketContext は経済指標カレンダーとニュースを統合したスナップショットです。
// 片方のプロバイダが失敗しても、取得できた側と Errors を含めて返されます。
type MarketContext struct {
	EconomicCalendar []CalendarEvent `json:"economic_calendar"`
	News             []NewsArticle   `json:"news"`
	Errors           []string        `json:"errors"`
}
