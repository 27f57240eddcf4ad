package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"mundel_backend/internal/feature/marketdata/domain/entity"
	"mundel_backend/internal/feature/marketdata/usecase"
	"mundel_backend/internal/platform/externalapi/twelvedata/dto"
)

// TwelveDataQuote はTwelve Data外部APIから為替レートを取得するQuoteRepository実装です。
type TwelveDataQuote struct {
	cfg    Config
	client *http.Client
}

// TwelveDataQuoteがQuoteRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.QuoteRepository = (*TwelveDataQuote)(nil)

// NewTwelveDataQuote は指定された設定とHTTPクライアントでTwelveDataQuoteの新しいインスタンスを生成します。
func NewTwelveDataQuote(cfg Config, client *http.Client) *TwelveDataQuote {
	return &TwelveDataQuote{cfg: cfg, client: client}
}

// GetDailyCloses はTwelve Data APIから直近days日分の日足終値を取得し、
// 日付昇順で返します。
func (t *TwelveDataQuote) GetDailyCloses(ctx context.Context, symbol string, days int) ([]entity.DailyClose, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("symbol", symbol)
	q.Set("interval", "1day")
	q.Set("outputsize", strconv.Itoa(days))
	q.Set("apikey", t.cfg.TwelveDataAPIKey)

	// URLを生成
	u := fmt.Sprintf("%s/time_series?%s", t.cfg.BaseURL, q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	// リクエストを実行
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
		return nil, fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.TimeSeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("twelvedata: %s", body.Message)
	}

	closes := make([]entity.DailyClose, 0, len(body.Values))
	// Twelve Dataは新しい日付から返すため、逆順に走査して昇順に揃える
	for i := len(body.Values) - 1; i >= 0; i-- {
		v := body.Values[i]

		// 日付をパース（日足は "2006-01-02" 形式）
		tm, err := time.Parse("2006-01-02", v.Datetime)
		if err != nil {
			tm, err = time.Parse("2006-01-02 15:04:05", v.Datetime)
			if err != nil {
				return nil, fmt.Errorf("parse time %q: %w", v.Datetime, err)
			}
		}
		// 終値をパース
		c, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", v.Close, err)
		}

		closes = append(closes, entity.DailyClose{
			Date:  tm.Format("2006-01-02"),
			Close: c,
		})
	}
	return closes, nil
}
