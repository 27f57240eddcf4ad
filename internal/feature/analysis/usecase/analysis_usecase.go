// Package usecase はニュースのIS-LM-BP分析と結果集約のロジックを提供します。
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"mundel_backend/internal/feature/analysis/domain/entity"
	calendarentity "mundel_backend/internal/feature/calendar/domain/entity"
)

// userPromptTemplate はLLMに渡すユーザープロンプトの雛形です。
const userPromptTemplate = `以下のニュースを分析し、マンデル＝フレミング・モデルにおける
IS曲線・LM曲線・BP曲線がどの方向にシフトするかを判定してください。

【ニュース】
%s

上記のJSON形式で、以下のルールに従って厳格に出力してください：
- is_shift: IS曲線のシフト（right / left / none）
- lm_shift: LM曲線のシフト（right / left / none）
- bp_shift: BP曲線のシフト（upward / downward / none）
- logic_jp: 日本語での詳細な経済学的解説。IS-LM-BPのどれがなぜ動いたか、利子率と為替への影響を説明してください。`

// contextSectionTemplate は市場コンテキストをプロンプトに追記する際の雛形です。
const contextSectionTemplate = `

【参考：直近の市場コンテキスト】
%s
上記のコンテキストも踏まえて判定してください。`

// MacroJudge はプロンプトからシフト判定のJSON文字列を生成するLLMクライアントです。
// Goの慣例に従い、インターフェースは利用者（usecase/handler）側で定義します。
type MacroJudge interface {
	Judge(ctx context.Context, prompt string) (string, error)
}

// Tracer はLLM呼び出しのトレースを記録します。実装はnil可です。
type Tracer interface {
	Record(name string, input, output any, err error)
	Flush(ctx context.Context)
}

// MarketContextRepository は経済指標カレンダーとニュースの統合データを取得します。
type MarketContextRepository interface {
	GetIntegratedMarketData(ctx context.Context) calendarentity.MarketContext
}

// analysisUsecase はニュース分析ユースケースです。
type analysisUsecase struct {
	judge         MacroJudge
	tracer        Tracer
	marketContext MarketContextRepository
}

// AnalysisUsecase はニュース分析のユースケースインターフェースです。
type AnalysisUsecase interface {
	AnalyzeMacroImpact(ctx context.Context, newsText string) (entity.ImpactVerdict, error)
	AnalyzeWithMarketContext(ctx context.Context, newsText string) (entity.ImpactVerdict, calendarentity.MarketContext, error)
}

// NewAnalysisUsecase はAnalysisUsecaseの新しいインスタンスを生成します。
// tracerとmarketContextはnil可です。
func NewAnalysisUsecase(judge MacroJudge, tracer Tracer, marketContext MarketContextRepository) AnalysisUsecase {
	return &analysisUsecase{judge: judge, tracer: tracer, marketContext: marketContext}
}

// AnalyzeMacroImpact はニュースを分析し、IS曲線・LM曲線・BP曲線の
// シフト判定を返します。空入力はLLMを呼び出さずにエラーを返します。
func (au *analysisUsecase) AnalyzeMacroImpact(ctx context.Context, newsText string) (entity.ImpactVerdict, error) {
	trimmed := strings.TrimSpace(newsText)
	if trimmed == "" {
		return entity.ImpactVerdict{}, ErrEmptyNewsText
	}
	return au.analyze(ctx, fmt.Sprintf(userPromptTemplate, trimmed), trimmed)
}

// AnalyzeWithMarketContext は経済指標カレンダーと直近ニュースの要約を
// プロンプトに添えて分析します。コンテキスト取得の失敗は分析を妨げません。
func (au *analysisUsecase) AnalyzeWithMarketContext(ctx context.Context, newsText string) (entity.ImpactVerdict, calendarentity.MarketContext, error) {
	trimmed := strings.TrimSpace(newsText)
	if trimmed == "" {
		return entity.ImpactVerdict{}, calendarentity.MarketContext{}, ErrEmptyNewsText
	}

	mctx := calendarentity.MarketContext{
		EconomicCalendar: []calendarentity.CalendarEvent{},
		News:             []calendarentity.NewsArticle{},
		Errors:           []string{},
	}
	if au.marketContext != nil {
		mctx = au.marketContext.GetIntegratedMarketData(ctx)
	}

	prompt := fmt.Sprintf(userPromptTemplate, trimmed)
	if digest := marketContextDigest(mctx); digest != "" {
		prompt += fmt.Sprintf(contextSectionTemplate, digest)
	}

	verdict, err := au.analyze(ctx, prompt, trimmed)
	return verdict, mctx, err
}

// analyze はプロンプトをLLMに渡し、応答を検証済みの判定に変換します。
// トレースは成功・失敗を問わず記録し、呼び出し後にまとめて送信します。
func (au *analysisUsecase) analyze(ctx context.Context, prompt, input string) (verdict entity.ImpactVerdict, err error) {
	if au.tracer != nil {
		defer func() {
			au.tracer.Record("macro_impact_analysis", input, verdict, err)
			au.tracer.Flush(ctx)
		}()
	}

	raw, err := au.judge.Judge(ctx, prompt)
	if err != nil {
		return entity.ImpactVerdict{}, fmt.Errorf("Gemini API の呼び出しに失敗しました: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return entity.ImpactVerdict{}, ErrEmptyResponse
	}

	verdict, err = decodeVerdict(raw)
	if err != nil {
		slog.Warn("LLM応答の検証に失敗", "error", err)
		return entity.ImpactVerdict{}, err
	}
	return verdict, nil
}

// decodeVerdict はLLMの応答JSONを検証付きでデコードします。
// 必須4フィールドのいずれかが欠けている（空文字を含む）場合はエラーです。
func decodeVerdict(raw string) (entity.ImpactVerdict, error) {
	var v entity.ImpactVerdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return entity.ImpactVerdict{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	required := []struct {
		name  string
		value string
	}{
		{"is_shift", v.ISShift},
		{"lm_shift", v.LMShift},
		{"bp_shift", v.BPShift},
		{"logic_jp", v.LogicJP},
	}
	for _, f := range required {
		if f.value == "" {
			return entity.ImpactVerdict{}, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return v, nil
}

// marketContextDigest は市場コンテキストをプロンプト用の短いテキストに要約します。
// 含められる情報がない場合は空文字を返します。
func marketContextDigest(mctx calendarentity.MarketContext) string {
	var b strings.Builder

	if len(mctx.EconomicCalendar) > 0 {
		b.WriteString("今後の主要経済指標:\n")
		limit := len(mctx.EconomicCalendar)
		if limit > 5 {
			limit = 5
		}
		for _, ev := range mctx.EconomicCalendar[:limit] {
			fmt.Fprintf(&b, "- %s %s（%s）\n", ev.Date, ev.Event, ev.Country)
		}
	}

	if len(mctx.News) > 0 {
		b.WriteString("直近の関連ニュース:\n")
		limit := len(mctx.News)
		if limit > 3 {
			limit = 3
		}
		for _, a := range mctx.News[:limit] {
			fmt.Fprintf(&b, "- %s\n", a.Title)
		}
	}

	return b.String()
}
