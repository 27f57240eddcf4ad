// Package gemini はGoogle Gemini APIを使用したIS-LM-BP分析クライアントを提供します。
package gemini

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"mundel_backend/internal/feature/analysis/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.0-flash"
)

// systemInstruction は分析時にモデルへ与えるシステム指示です。
const systemInstruction = "あなたはマクロ経済学と外国為替市場の専門家です。" +
	"入力されたニュースについて、マンデル＝フレミング・モデルにおける" +
	"IS曲線・LM曲線・BP曲線への影響を分析し、指定されたJSON形式で出力してください。"

// macroImpactSchema は構造化出力のレスポンススキーマです。
// 4つのフィールドすべてが必須で、シフト方向は列挙値に制約されます。
var macroImpactSchema = &genai.Schema{
	Type:     genai.TypeObject,
	Required: []string{"is_shift", "lm_shift", "bp_shift", "logic_jp"},
	Properties: map[string]*genai.Schema{
		"is_shift": {
			Type:        genai.TypeString,
			Enum:        []string{"right", "left", "none"},
			Description: "IS曲線のシフト方向",
		},
		"lm_shift": {
			Type:        genai.TypeString,
			Enum:        []string{"right", "left", "none"},
			Description: "LM曲線のシフト方向",
		},
		"bp_shift": {
			Type:        genai.TypeString,
			Enum:        []string{"upward", "downward", "none"},
			Description: "BP曲線のシフト方向",
		},
		"logic_jp": {
			Type:        genai.TypeString,
			Description: "日本語での詳細な経済学的解説",
		},
	},
}

// GeminiJudge はGoogle Gemini APIを使用してシフト判定JSONを生成します。
type GeminiJudge struct {
	client *genai.Client
	model  string
}

// GeminiJudgeがMacroJudgeを実装していることをコンパイル時に検証します。
var _ usecase.MacroJudge = (*GeminiJudge)(nil)

// NewGeminiJudge はGEMINI_API_KEYを使用してGeminiJudgeの新しいインスタンスを生成します。
func NewGeminiJudge(ctx context.Context) (*GeminiJudge, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY が設定されていません")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiJudge{client: client, model: DefaultModel}, nil
}

// Judge はプロンプトからスキーマ制約付きのJSON応答を生成します。
func (g *GeminiJudge) Judge(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    macroImpactSchema,
		Temperature:       genai.Ptr(float32(0.2)),
		MaxOutputTokens:   2048,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
