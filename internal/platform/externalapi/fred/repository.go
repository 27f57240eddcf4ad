package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"mundel_backend/internal/feature/marketdata/domain/entity"
	"mundel_backend/internal/feature/marketdata/usecase"
	"mundel_backend/internal/platform/externalapi/fred/dto"
)

// FredIndicator はFRED外部APIからマクロ経済指標を取得するIndicatorRepository実装です。
type FredIndicator struct {
	cfg    Config
	client *http.Client
}

// FredIndicatorがIndicatorRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.IndicatorRepository = (*FredIndicator)(nil)

// NewFredIndicator は指定された設定とHTTPクライアントでFredIndicatorの新しいインスタンスを生成します。
func NewFredIndicator(cfg Config, client *http.Client) *FredIndicator {
	return &FredIndicator{cfg: cfg, client: client}
}

// GetLatestObservation は指定シリーズの最新観測値を1件取得します。
// 観測値が空の場合はエラーを返します。欠損値（"."）や数値に変換できない値は
// Valueがnilの観測として返します。
func (f *FredIndicator) GetLatestObservation(ctx context.Context, seriesID string) (entity.Observation, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("series_id", seriesID)
	q.Set("api_key", f.cfg.FredAPIKey)
	q.Set("file_type", "json")
	q.Set("sort_order", "desc")
	q.Set("limit", "1")

	// URLを生成
	u := fmt.Sprintf("%s/fred/series/observations?%s", f.cfg.BaseURL, q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.Observation{}, err
	}

	// リクエストを実行
	res, err := f.client.Do(req)
	if err != nil {
		return entity.Observation{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return entity.Observation{}, fmt.Errorf("fred http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.ObservationsResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.Observation{}, err
	}
	if len(body.Observations) == 0 {
		return entity.Observation{}, fmt.Errorf("データなし")
	}

	obs := body.Observations[0]
	out := entity.Observation{Date: obs.Date}
	// "." は欠損値。数値化できない値も欠損扱いにする
	if obs.Value != "." {
		if v, err := strconv.ParseFloat(obs.Value, 64); err == nil {
			out.Value = &v
		}
	}
	return out, nil
}
