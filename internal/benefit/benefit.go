// Package benefit 计算私用公司车的应税货币利益（德国 1% 规则）
// 电动车按 0.25%（毛价 ≤ 70000 €）或 0.5%，混动 0.5%，燃油车 1%
package benefit

import (
	"math"
	"strings"

	"github.com/langchou/fleetgazer/internal/models"
)

// 0.25% 档的毛价上限（含）
const electricPriceCap = 70000.0

// Calculate 由毛价与燃料类型推导每月应税金额
// 价格缺失或 ≤ 0 时没有金额，类别为 Unbekannt
func Calculate(grossPrice *float64, fuelType string) models.Benefit {
	if grossPrice == nil || *grossPrice <= 0 {
		return models.Benefit{Label: "Unbekannt"}
	}

	percent, label := classify(*grossPrice, fuelType)
	rate := math.Round(*grossPrice*percent) / 100

	return models.Benefit{
		Rate:    &rate,
		Percent: &percent,
		Label:   label,
	}
}

// classify 按顺序判定：纯电 → 混动 → 其他（燃油）
func classify(price float64, fuelType string) (float64, string) {
	fuel := strings.ToLower(fuelType)

	isHybrid := strings.Contains(fuel, "hybrid") || strings.Contains(fuel, "phev")
	isElectric := !isHybrid &&
		(strings.Contains(fuel, "elektr") || strings.Contains(fuel, "electric") || strings.Contains(fuel, "bev"))

	switch {
	case isElectric && price <= electricPriceCap:
		return 0.25, "Elektro"
	case isElectric:
		return 0.5, "Elektro"
	case isHybrid:
		return 0.5, "Hybrid"
	default:
		return 1.0, "Verbrenner"
	}
}
