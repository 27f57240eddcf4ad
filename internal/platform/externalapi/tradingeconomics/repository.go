package tradingeconomics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"mundel_backend/internal/feature/calendar/domain/entity"
	"mundel_backend/internal/feature/calendar/usecase"
	"mundel_backend/internal/platform/externalapi/tradingeconomics/dto"
)

// TradingEconomicsCalendar はTrading Economics外部APIから経済指標カレンダーを
// 取得するCalendarRepository実装です。
type TradingEconomicsCalendar struct {
	cfg    Config
	client *http.Client
}

// TradingEconomicsCalendarがCalendarRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.CalendarRepository = (*TradingEconomicsCalendar)(nil)

// NewTradingEconomicsCalendar は指定された設定とHTTPクライアントで
// TradingEconomicsCalendarの新しいインスタンスを生成します。
func NewTradingEconomicsCalendar(cfg Config, client *http.Client) *TradingEconomicsCalendar {
	return &TradingEconomicsCalendar{cfg: cfg, client: client}
}

// GetEvents は指定国群のfromからtoまでの経済指標イベントを取得します。
func (t *TradingEconomicsCalendar) GetEvents(ctx context.Context, countries []string, from, to time.Time) ([]entity.CalendarEvent, error) {
	q := url.Values{}
	q.Set("c", t.cfg.TradingEconomicsAPIKey)
	q.Set("d1", from.Format("2006-01-02"))
	q.Set("d2", to.Format("2006-01-02"))

	// 国名はパスセグメントとしてカンマ区切りで指定する
	countryPath := ""
	for i, c := range countries {
		if i > 0 {
			countryPath += ","
		}
		countryPath += c
	}
	u := fmt.Sprintf("%s/calendar/country/%s?%s", t.cfg.BaseURL, url.PathEscape(countryPath), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("tradingeconomics http %d", res.StatusCode)
	}

	var body []dto.CalendarItem
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}

	events := make([]entity.CalendarEvent, 0, len(body))
	for _, item := range body {
		events = append(events, entity.CalendarEvent{
			Date:       item.Date,
			Country:    item.Country,
			Event:      item.Event,
			Importance: parseImportance(item.Importance),
			Actual:     item.Actual,
			Forecast:   item.Forecast,
			Previous:   item.Previous,
		})
	}
	return events, nil
}

// parseImportance は重要度を整数に変換します。変換できない値は0扱いです。
func parseImportance(n json.Number) int {
	f, err := n.Float64()
	if err != nil {
		return 0
	}
	return int(f)
}
