package dto

import "encoding/json"

// CalendarItem はTrading Economics /calendar/country の1イベントです。
// Importanceは数値または数値文字列で返ることがあるためjson.Numberで受けます。
type CalendarItem struct {
	Date       string      `json:"Date"`
	Country    string      `json:"Country"`
	Event      string      `json:"Event"`
	Importance json.Number `json:"Importance"`
	Actual     string      `json:"Actual"`
	Forecast   string      `json:"Forecast"`
	Previous   string      `json:"Previous"`
}
