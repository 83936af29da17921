package availability

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langchou/fleetgazer/internal/models"
)

var berlin = time.Local

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, berlin)
}

// blockRange 把 [from, to] 的每一天都标记为整天占用
func blockRange(cal models.BookingCalendar, from, to time.Time) {
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		cal[d.Format("2006-01-02")] = 1.0
	}
}

func TestAggregateEmptyCalendar(t *testing.T) {
	today := day(2026, time.March, 15)
	result := Aggregate(models.BookingCalendar{}, day(2028, time.March, 15), today)

	assert.Equal(t, models.AvailabilityFree, result.Status)
	assert.Equal(t, "Frei", result.Label)
	assert.Equal(t, 12, result.FreeMonths)
	assert.Nil(t, result.NextFreeDate)
	require.Len(t, result.Months, 12)
	for _, m := range result.Months {
		assert.Equal(t, models.MonthFree, m.Status)
		assert.Equal(t, m.TotalDays, m.FreeDays)
		assert.Zero(t, m.BlockedDays)
	}
	assert.Equal(t, "März", result.Months[0].Month)
	assert.Equal(t, "Februar", result.Months[11].Month)
	assert.Equal(t, 2027, result.Months[11].Year)
}

func TestAggregateBlockedRatioThreshold(t *testing.T) {
	today := day(2026, time.March, 15)
	contractEnd := day(2028, time.March, 15)

	t.Run("RatioOneBlocksDay", func(t *testing.T) {
		cal := models.BookingCalendar{"2026-03-15": 1.0}
		result := Aggregate(cal, contractEnd, today)

		assert.Equal(t, models.AvailabilitySoon, result.Status)
		assert.Equal(t, "Ab 16.03", result.Label)
		require.NotNil(t, result.NextFreeDate)
		assert.Equal(t, day(2026, time.March, 16), *result.NextFreeDate)
	})

	t.Run("PartialRatioStaysFree", func(t *testing.T) {
		cal := models.BookingCalendar{"2026-03-15": 0.999}
		result := Aggregate(cal, contractEnd, today)

		assert.Equal(t, models.AvailabilityFree, result.Status)
	})
}

func TestAggregateFullyBlocked(t *testing.T) {
	today := day(2026, time.March, 15)
	contractEnd := day(2026, time.June, 30)

	cal := models.BookingCalendar{}
	blockRange(cal, today, contractEnd)

	result := Aggregate(cal, contractEnd, today)

	assert.Equal(t, models.AvailabilityBlocked, result.Status)
	assert.Equal(t, "Blockiert", result.Label)
	assert.Nil(t, result.NextFreeDate)
	assert.Zero(t, result.FreeMonths)
}

func TestAggregateFreeMonthsLabel(t *testing.T) {
	today := day(2026, time.March, 1)
	contractEnd := day(2028, time.March, 1)

	// 今天空闲，5 月整月被占用 → 连续空闲只有 März 和 April
	cal := models.BookingCalendar{}
	blockRange(cal, day(2026, time.May, 1), day(2026, time.May, 31))

	result := Aggregate(cal, contractEnd, today)

	assert.Equal(t, models.AvailabilityFree, result.Status)
	assert.Equal(t, 2, result.FreeMonths)
	assert.Equal(t, "Frei (2M)", result.Label)

	require.Len(t, result.Months, 12)
	assert.Equal(t, models.MonthFree, result.Months[0].Status)
	assert.Equal(t, models.MonthFree, result.Months[1].Status)
	assert.Equal(t, models.MonthBlocked, result.Months[2].Status)
	// 被占用月之后的空闲月不再计入连续数
	assert.Equal(t, models.MonthFree, result.Months[3].Status)
}

func TestAggregateMonthClassification(t *testing.T) {
	today := day(2026, time.March, 1)
	contractEnd := day(2028, time.March, 1)

	// 4 月前 10 天被占用 → partial
	cal := models.BookingCalendar{}
	blockRange(cal, day(2026, time.April, 1), day(2026, time.April, 10))

	result := Aggregate(cal, contractEnd, today)
	april := result.Months[1]

	assert.Equal(t, models.MonthPartial, april.Status)
	assert.Equal(t, 30, april.TotalDays)
	assert.Equal(t, 10, april.BlockedDays)
	assert.Equal(t, 20, april.FreeDays)
	assert.Equal(t, april.TotalDays, april.FreeDays+april.BlockedDays)
}

func TestAggregateDayPartitionInvariant(t *testing.T) {
	today := day(2026, time.March, 15)
	contractEnd := day(2027, time.March, 15)

	cal := models.BookingCalendar{}
	blockRange(cal, day(2026, time.March, 20), day(2026, time.April, 5))
	blockRange(cal, day(2026, time.August, 1), day(2026, time.August, 15))

	result := Aggregate(cal, contractEnd, today)
	for _, m := range result.Months {
		assert.Equal(t, m.TotalDays, m.FreeDays+m.BlockedDays,
			fmt.Sprintf("month %s %d", m.Month, m.Year))
	}
}

func TestAggregateContractEndCutsWindow(t *testing.T) {
	today := day(2026, time.March, 15)
	// 合同 5 月中旬到期：6 月起没有可计天数
	contractEnd := day(2026, time.May, 15)

	cal := models.BookingCalendar{"2026-03-20": 1.0}
	result := Aggregate(cal, contractEnd, today)

	require.Len(t, result.Months, 12)
	assert.Equal(t, models.MonthPartial, result.Months[0].Status)
	assert.Equal(t, 15, result.Months[2].TotalDays) // Mai: 1.–15.
	for _, m := range result.Months[3:] {
		assert.Equal(t, models.MonthPast, m.Status)
		assert.Zero(t, m.TotalDays)
	}
}

func TestAggregateFirstMonthStartsToday(t *testing.T) {
	today := day(2026, time.March, 15)
	contractEnd := day(2028, time.March, 15)

	// 月初的占用在 today 之前，不计入
	cal := models.BookingCalendar{"2026-03-01": 1.0}
	result := Aggregate(cal, contractEnd, today)

	march := result.Months[0]
	assert.Equal(t, models.MonthFree, march.Status)
	assert.Equal(t, 17, march.TotalDays) // 15.–31.
}

func TestDefaultContractEnd(t *testing.T) {
	today := time.Date(2026, 8, 31, 14, 30, 0, 0, berlin)
	assert.Equal(t, day(2028, time.August, 31), DefaultContractEnd(today))
}
