package models

// Benefit 私用公司车的应税货币利益（德国 1% 规则及其电动车减免）
type Benefit struct {
	Rate    *float64 `json:"rate,omitempty"`    // 每月应税金额，价格未知时为 nil
	Percent *float64 `json:"percent,omitempty"` // 0.25 / 0.5 / 1.0
	Label   string   `json:"label"`             // 类别名，如 Elektro / Hybrid / Verbrenner
}
