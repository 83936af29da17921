// Package availability 把稀疏的预订日历聚合成前瞻可用性视图：
// 整体状态 + 展示标签 + 未来 12 个月热力图
package availability

import (
	"fmt"
	"time"

	"github.com/langchou/fleetgazer/internal/models"
)

const dateKeyLayout = "2006-01-02"

var germanMonths = [12]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// 空日历短路时每个月的占位天数，没有数据可迭代
const placeholderDays = 30

// Aggregate 对单辆车的预订日历做分类
// contractEnd 之后的日期不再计入；today 只取日期部分
func Aggregate(cal models.BookingCalendar, contractEnd, today time.Time) models.AvailabilityResult {
	today = truncateDay(today)
	contractEnd = truncateDay(contractEnd)

	// 日历完全没有键（不是过滤后没有占用日）：短路为全空闲
	if len(cal) == 0 {
		return emptyCalendarResult(today)
	}

	isTodayFree := !cal.IsBlocked(dateKey(today))

	// 今天被占用时，从今天起逐日向前找第一个空闲日，最远到合同到期日
	var nextFree *time.Time
	if !isTodayFree {
		for d := today; !d.After(contractEnd); d = d.AddDate(0, 0, 1) {
			if !cal.IsBlocked(dateKey(d)) {
				free := d
				nextFree = &free
				break
			}
		}
	}

	months := classifyMonths(cal, contractEnd, today)

	// 从当月开始连续的 free/partial 月份数，遇到其他状态立即停止
	freeMonths := 0
	for _, m := range months {
		if m.Status != models.MonthFree && m.Status != models.MonthPartial {
			break
		}
		freeMonths++
	}

	result := models.AvailabilityResult{
		NextFreeDate: nextFree,
		FreeMonths:   freeMonths,
		Months:       months,
	}

	switch {
	case isTodayFree:
		result.Status = models.AvailabilityFree
		if freeMonths > 0 && freeMonths < 12 {
			result.Label = fmt.Sprintf("Frei (%dM)", freeMonths)
		} else {
			result.Label = "Frei"
		}
	case nextFree != nil:
		result.Status = models.AvailabilitySoon
		result.Label = fmt.Sprintf("Ab %02d.%02d", nextFree.Day(), int(nextFree.Month()))
	default:
		result.Status = models.AvailabilityBlocked
		result.Label = "Blockiert"
	}

	return result
}

// classifyMonths 构建从当月开始的 12 个月窗口
// 每个月只统计 [本月天数] ∩ [today, contractEnd] 的交集
func classifyMonths(cal models.BookingCalendar, contractEnd, today time.Time) []models.MonthClassification {
	months := make([]models.MonthClassification, 0, 12)

	for i := 0; i < 12; i++ {
		first := time.Date(today.Year(), today.Month()+time.Month(i), 1, 0, 0, 0, 0, today.Location())
		entry := models.MonthClassification{
			Month: germanMonths[first.Month()-1],
			Year:  first.Year(),
		}

		if first.After(contractEnd) {
			// 超出合同期：复用 past 表示"没有可计的天数"
			entry.Status = models.MonthPast
			months = append(months, entry)
			continue
		}

		start := first
		if start.Before(today) {
			start = today
		}
		end := first.AddDate(0, 1, -1)
		if end.After(contractEnd) {
			end = contractEnd
		}

		total, blocked := 0, 0
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			total++
			if cal.IsBlocked(dateKey(d)) {
				blocked++
			}
		}

		entry.TotalDays = total
		entry.BlockedDays = blocked
		entry.FreeDays = total - blocked

		switch {
		case total == 0:
			entry.Status = models.MonthPast
		case blocked == total:
			entry.Status = models.MonthBlocked
		case blocked == 0:
			entry.Status = models.MonthFree
		default:
			entry.Status = models.MonthPartial
		}
		months = append(months, entry)
	}

	return months
}

// emptyCalendarResult 没有任何预订数据时的结果：12 个月全部空闲，
// 用 30/30 占位天数，不做逐日迭代
func emptyCalendarResult(today time.Time) models.AvailabilityResult {
	months := make([]models.MonthClassification, 0, 12)
	for i := 0; i < 12; i++ {
		first := time.Date(today.Year(), today.Month()+time.Month(i), 1, 0, 0, 0, 0, today.Location())
		months = append(months, models.MonthClassification{
			Month:     germanMonths[first.Month()-1],
			Year:      first.Year(),
			Status:    models.MonthFree,
			FreeDays:  placeholderDays,
			TotalDays: placeholderDays,
		})
	}
	return models.AvailabilityResult{
		Status:     models.AvailabilityFree,
		Label:      "Frei",
		FreeMonths: 12,
		Months:     months,
	}
}

// DefaultContractEnd 合同到期日缺失或无法解析时的默认视野
func DefaultContractEnd(today time.Time) time.Time {
	return truncateDay(today).AddDate(2, 0, 0)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}
