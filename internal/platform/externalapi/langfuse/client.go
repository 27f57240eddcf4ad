package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// traceEvent はLangfuse ingestion APIのtrace-createイベントです。
type traceEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Body      traceBody `json:"body"`
}

type traceBody struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Input     any       `json:"input,omitempty"`
	Output    any       `json:"output,omitempty"`
	Metadata  any       `json:"metadata,omitempty"`
}

// Client はLLM呼び出しのトレースをバッファし、まとめてLangfuseへ送信します。
// トレース送信は分析結果に影響しないベストエフォートです。
type Client struct {
	cfg    Config
	client *http.Client

	mu     sync.Mutex
	buffer []traceEvent
}

// NewClient はLangfuseクライアントの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// Record は1回のLLM呼び出しをバッファに記録します。
// errが非nilの場合はメタデータにエラー内容を含めます。
func (c *Client) Record(name string, input, output any, callErr error) {
	if c == nil {
		return
	}
	var meta any
	if callErr != nil {
		meta = map[string]string{"error": callErr.Error()}
	}
	now := time.Now().UTC()
	id := uuid.NewString()
	ev := traceEvent{
		ID:        id,
		Type:      "trace-create",
		Timestamp: now,
		Body: traceBody{
			ID:        id,
			Name:      name,
			Timestamp: now,
			Input:     input,
			Output:    output,
			Metadata:  meta,
		},
	}

	c.mu.Lock()
	c.buffer = append(c.buffer, ev)
	c.mu.Unlock()
}

// Flush はバッファ済みイベントをLangfuseへ送信します。
// 送信の成否によらずバッファはクリアされます。
func (c *Client) Flush(ctx context.Context) {
	if c == nil {
		return
	}
	c.mu.Lock()
	events := c.buffer
	c.buffer = nil
	c.mu.Unlock()

	if len(events) == 0 {
		return
	}

	payload, err := json.Marshal(map[string]any{"batch": events})
	if err != nil {
		slog.Warn("トレースのエンコードに失敗", "error", err)
		return
	}

	u := fmt.Sprintf("%s/api/public/ingestion", c.cfg.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		slog.Warn("トレース送信リクエストの作成に失敗", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.PublicKey, c.cfg.SecretKey)

	res, err := c.client.Do(req)
	if err != nil {
		slog.Warn("トレース送信に失敗", "error", err)
		return
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		slog.Warn("トレース送信がエラー応答", "status", res.StatusCode)
	}
}
