package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mundel_backend/internal/feature/analysis/domain/entity"
	marketentity "mundel_backend/internal/feature/marketdata/domain/entity"
)

// MacroAnalyzer はニューステキストからシフト判定を行います。
type MacroAnalyzer interface {
	AnalyzeMacroImpact(ctx context.Context, newsText string) (entity.ImpactVerdict, error)
}

// ExchangeFetcher は為替レートのスナップショットを取得します。
type ExchangeFetcher interface {
	GetExchangeRate(ctx context.Context, pair string) marketentity.ExchangeSnapshot
}

// MacroFetcher はマクロ指標のスナップショットを取得します。
type MacroFetcher interface {
	GetMacroIndicators(ctx context.Context) marketentity.MacroSnapshot
}

// AnalysisOutcome はAI分析ブランチの結果です。ErrがnilならVerdictが有効です。
type AnalysisOutcome struct {
	Verdict entity.ImpactVerdict
	Err     error
}

// ExchangeOutcome は為替取得ブランチの結果です。
type ExchangeOutcome struct {
	Snapshot marketentity.ExchangeSnapshot
	Err      error
}

// MacroOutcome はマクロ指標取得ブランチの結果です。
type MacroOutcome struct {
	Snapshot marketentity.MacroSnapshot
	Err      error
}

// AggregatedResult は3ブランチの結果と完了時刻をまとめたものです。
// 各ブランチの失敗は対応するOutcomeに隔離され、他のブランチには影響しません。
type AggregatedResult struct {
	Analysis  AnalysisOutcome
	Exchange  ExchangeOutcome
	Macro     MacroOutcome
	Timestamp string
}

// aggregateUsecase は分析と市場データ取得を並行実行するユースケースです。
type aggregateUsecase struct {
	analyzer MacroAnalyzer
	exchange ExchangeFetcher
	macro    MacroFetcher
	now      func() time.Time
}

// AggregateUsecase は統合分析のユースケースインターフェースです。
type AggregateUsecase interface {
	Aggregate(ctx context.Context, newsText, pair string) AggregatedResult
}

// NewAggregateUsecase はAggregateUsecaseの新しいインスタンスを生成します。
func NewAggregateUsecase(analyzer MacroAnalyzer, exchange ExchangeFetcher, macro MacroFetcher) AggregateUsecase {
	return &aggregateUsecase{
		analyzer: analyzer,
		exchange: exchange,
		macro:    macro,
		now:      time.Now,
	}
}

// Aggregate はAI分析・為替取得・マクロ指標取得の3つを並行実行し、
// すべての完了を待ってから結果を返します。ブランチ内のパニックも
// エラーとして回収し、呼び出し元には伝播させません。
func (ag *aggregateUsecase) Aggregate(ctx context.Context, newsText, pair string) AggregatedResult {
	var result AggregatedResult

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		defer recoverInto(&result.Analysis.Err)
		result.Analysis.Verdict, result.Analysis.Err = ag.analyzer.AnalyzeMacroImpact(ctx, newsText)
	}()

	go func() {
		defer wg.Done()
		defer recoverInto(&result.Exchange.Err)
		result.Exchange.Snapshot = ag.exchange.GetExchangeRate(ctx, pair)
	}()

	go func() {
		defer wg.Done()
		defer recoverInto(&result.Macro.Err)
		result.Macro.Snapshot = ag.macro.GetMacroIndicators(ctx)
	}()

	wg.Wait()

	result.Timestamp = ag.now().UTC().Format(time.RFC3339)
	return result
}

// recoverInto はゴルーチン内のパニックを回収してエラーに変換します。
func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("panic: %v", r)
	}
}
