// Package entity はmarketdataフィーチャーのドメインモデルを定義します。
package entity

// DailyClose は1営業日分の終値です。
type DailyClose struct {
	Date  string  `json:"date"`  // 日付（YYYY-MM-DD）
	Close float64 `json:"close"` // 終値
}

// ExchangeSnapshot は為替レートのスナップショットです。
// Error が設定されている場合、CurrentPrice と Closes7D は空になります。
// スナップショットは完全に取得できたか、エラーのみを持つかのどちらかです。
type ExchangeSnapshot struct {
	Pair         string       `json:"pair"`          // 通貨ペアのティッカー（例: USD/JPY）
	CurrentPrice *float64     `json:"current_price"` // 現在価格（直近の終値）
	Closes7D     []DailyClose `json:"closes_7d"`     // 直近7日分の終値（日付昇順）
	FetchedAt    string       `json:"fetched_at"`    // 取得時刻（RFC3339）
	FromCache    bool         `json:"from_cache"`    // キャッシュから返したかどうか
	Error        string       `json:"error,omitempty"`
}

// IndicatorEntry は1系列分のマクロ指標です。系列単位の取得失敗は
// Error に記録され、スナップショット全体の失敗にはなりません。
type IndicatorEntry struct {
	Label       string   `json:"label"`                 // 日本語ラベル
	LatestValue *float64 `json:"latest_value"`          // 最新観測値（欠測時はnull）
	LatestDate  string   `json:"latest_date,omitempty"` // 最新観測日
	Error       string   `json:"error,omitempty"`
}

// MacroSnapshot はマクロ指標バンドルのスナップショットです。
// トップレベルの Error（認証情報の欠如など）が設定されている場合、
// Indicators は空のままです。
type MacroSnapshot struct {
	Indicators map[string]IndicatorEntry `json:"indicators"`
	FetchedAt  string                    `json:"fetched_at"`
	FromCache  bool                      `json:"from_cache"`
	Error      string                    `json:"error,omitempty"`
}

// Observation はマクロ指標の最新観測値1件です。
// プロバイダの欠測センチネル値は Value=nil に正規化されます（ゼロにはしません）。
type Observation struct {
	Date  string
	Value *float64
}
