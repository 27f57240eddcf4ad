package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"mundel_backend/internal/feature/calendar/domain/entity"
	"mundel_backend/internal/feature/calendar/usecase"
	"mundel_backend/internal/platform/externalapi/newsapi/dto"
)

// NewsAPIRepository はNewsAPI外部APIから金融ニュースを検索するNewsRepository実装です。
type NewsAPIRepository struct {
	cfg    Config
	client *http.Client
}

// NewsAPIRepositoryがNewsRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.NewsRepository = (*NewsAPIRepository)(nil)

// NewNewsAPIRepository は指定された設定とHTTPクライアントでNewsAPIRepositoryの
// 新しいインスタンスを生成します。
func NewNewsAPIRepository(cfg Config, client *http.Client) *NewsAPIRepository {
	return &NewsAPIRepository{cfg: cfg, client: client}
}

// Search はfrom以降に公開された日本語記事を新着順に最大pageSize件検索します。
func (n *NewsAPIRepository) Search(ctx context.Context, query string, from time.Time, pageSize int) ([]entity.NewsArticle, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("language", "ja")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", strconv.Itoa(pageSize))
	q.Set("from", from.Format("2006-01-02"))

	u := fmt.Sprintf("%s/everything?%s", n.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	// NewsAPIはクエリではなくヘッダでの認証を推奨している
	req.Header.Set("X-Api-Key", n.cfg.NewsAPIKey)

	res, err := n.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("newsapi http %d", res.StatusCode)
	}

	var body dto.EverythingResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status != "ok" {
		return nil, fmt.Errorf("newsapi: %s", body.Message)
	}

	articles := make([]entity.NewsArticle, 0, len(body.Articles))
	for _, a := range body.Articles {
		articles = append(articles, entity.NewsArticle{
			Title:       a.Title,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}
