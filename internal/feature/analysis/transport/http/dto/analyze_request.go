package dto

// AnalyzeRequest はPOST /api/analyze のリクエストボディです。
type AnalyzeRequest struct {
	NewsText string `json:"news_text" binding:"required,min=1"` // 分析対象のニューステキスト
	Pair     string `json:"pair"`                               // 通貨ペア（省略時はUSD/JPY）
}
