package dto

// TimeSeriesResponse はTwelve Data /time_series のレスポンスです。
// エラー時は status が "error" になり message に詳細が入ります。
type TimeSeriesResponse struct {
	Meta    Meta          `json:"meta"`
	Values  []SeriesValue `json:"values"`
	Status  string        `json:"status"`
	Message string        `json:"message"`
}

// Meta はシンボルと時間足のメタ情報です。
type Meta struct {
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`
}

// SeriesValue は1本分のローソク足データです。数値は文字列で返されます。
type SeriesValue struct {
	Datetime string `json:"datetime"`
	Open     string `json:"open"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Close    string `json:"close"`
}
