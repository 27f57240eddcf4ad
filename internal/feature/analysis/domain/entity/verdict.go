// Package entity はanalysisフィーチャーのドメインモデルを定義します。
package entity

// シフト方向の取りうる値です。IS・LM曲線は right / left / none、
// BP曲線は upward / downward / none を取ります。
const (
	ShiftRight    = "right"
	ShiftLeft     = "left"
	ShiftUpward   = "upward"
	ShiftDownward = "downward"
	ShiftNone     = "none"
)

// ImpactVerdict はマンデル＝フレミング・モデルに基づく
// IS曲線・LM曲線・BP曲線のシフト判定結果を表します。
// 4つのフィールドすべてが揃っている場合のみ有効な判定として扱います。
type ImpactVerdict struct {
	ISShift string `json:"is_shift"` // IS曲線のシフト方向（right / left / none）
	LMShift string `json:"lm_shift"` // LM曲線のシフト方向（right / left / none）
	BPShift string `json:"bp_shift"` // BP曲線のシフト方向（upward / downward / none）
	LogicJP string `json:"logic_jp"` // 日本語での詳細な経済学的解説
}
