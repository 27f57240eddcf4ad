package usecase

import "errors"

// 分析ユースケースが返すエラーです。
var (
	// ErrEmptyNewsText は入力ニュースが空の場合のエラーです。
	ErrEmptyNewsText = errors.New("news_text が空です。分析対象のニュースを入力してください")
	// ErrEmptyResponse はLLMが空の応答を返した場合のエラーです。
	ErrEmptyResponse = errors.New("Gemini API が空の応答を返しました")
	// ErrMalformedResponse はLLM応答をJSONとして解析できない場合のエラーです。
	ErrMalformedResponse = errors.New("Gemini API の応答をJSONとして解析できませんでした")
	// ErrMissingField はLLM応答に必須フィールドが欠けている場合のエラーです。
	ErrMissingField = errors.New("Gemini API の応答に必須キーが含まれていません")
)
