package models

import "time"

// BookingCalendar 单辆车的稀疏预订日历
// 键为 ISO 日期 (YYYY-MM-DD)，值为当天的占用率 [0,1]
// 不在映射中的日期视为空闲
type BookingCalendar map[string]float64

// 占用率达到 1.0 即视为整天被占用，比较用 >= 而不是 >
const blockedRatio = 1.0

// IsBlocked 判断某个日期键是否整天被占用
func (c BookingCalendar) IsBlocked(dateKey string) bool {
	ratio, ok := c[dateKey]
	return ok && ratio >= blockedRatio
}

// 整体可用状态
const (
	AvailabilityFree    = "free"
	AvailabilitySoon    = "soon"
	AvailabilityBlocked = "blocked"
	AvailabilityUnknown = "unknown"
)

// 单月分类状态
const (
	MonthFree    = "free"
	MonthPartial = "partial"
	MonthBlocked = "blocked"
	MonthPast    = "past" // 没有可计的天数（超出合同期）
)

// MonthClassification 12 个月热力图中的单月条目
type MonthClassification struct {
	Month       string `json:"month"` // 德语月份名
	Year        int    `json:"year"`
	Status      string `json:"status"`
	FreeDays    int    `json:"freeDays"`
	BlockedDays int    `json:"blockedDays"`
	TotalDays   int    `json:"totalDays"`
}

// AvailabilityResult 单辆车的可用性聚合结果
type AvailabilityResult struct {
	Status       string                `json:"status"`
	Label        string                `json:"label"`
	NextFreeDate *time.Time            `json:"nextFreeDate,omitempty"`
	FreeMonths   int                   `json:"freeMonths"`
	Months       []MonthClassification `json:"months"`
}

// UnresolvedAvailability 数据源不可用时的结果
// 未知状态不等同于空闲或占用，调用方据此区别展示
func UnresolvedAvailability() *AvailabilityResult {
	return &AvailabilityResult{
		Status: AvailabilityUnknown,
		Label:  "Unbekannt",
	}
}
