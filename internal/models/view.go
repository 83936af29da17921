package models

import (
	"sort"
	"strings"
)

// ViewState 展示层的显式视图状态
// 由调用方（前端/Handler）持有并传入，核心组件不读任何全局状态
type ViewState struct {
	SortKey    string `json:"sortKey"`
	Descending bool   `json:"descending"`
	Query      string `json:"query"`
	Minimized  bool   `json:"minimized"`
}

// 可排序字段
const (
	SortByPlate       = "kennzeichen"
	SortByBrand       = "marke"
	SortByModel       = "modell"
	SortByContractEnd = "vertragsende"
	SortByRate        = "leasingrate"
	SortByLocation    = "standort"
	SortByNew         = "isNew"
)

// FilterVehicles 按子串过滤，匹配车牌/品牌/型号/所在地/到期日
// 返回新切片，不修改输入
func FilterVehicles(vehicles []Vehicle, query string) []Vehicle {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]Vehicle, len(vehicles))
		copy(out, vehicles)
		return out
	}

	out := make([]Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if strings.Contains(strings.ToLower(v.Plate), q) ||
			strings.Contains(strings.ToLower(v.Brand), q) ||
			strings.Contains(strings.ToLower(v.Model), q) ||
			strings.Contains(strings.ToLower(v.Location), q) ||
			strings.Contains(v.ContractEnd, q) {
			out = append(out, v)
		}
	}
	return out
}

// SortVehicles 按视图状态排序，返回新切片
func SortVehicles(vehicles []Vehicle, key string, descending bool) []Vehicle {
	out := make([]Vehicle, len(vehicles))
	copy(out, vehicles)

	less := func(a, b Vehicle) bool {
		switch key {
		case SortByNew:
			// 新车优先
			va, vb := 0, 0
			if a.IsNew {
				va = 1
			}
			if b.IsNew {
				vb = 1
			}
			return va < vb
		case SortByRate:
			va, vb := 0.0, 0.0
			if a.MonthlyRate != nil {
				va = *a.MonthlyRate
			}
			if b.MonthlyRate != nil {
				vb = *b.MonthlyRate
			}
			return va < vb
		case SortByContractEnd:
			// DD.MM.YYYY 按 YYYYMMDD 比较，缺失排最前
			return sortableDate(a.ContractEnd) < sortableDate(b.ContractEnd)
		case SortByBrand:
			return strings.ToLower(a.Brand) < strings.ToLower(b.Brand)
		case SortByModel:
			return strings.ToLower(a.Model) < strings.ToLower(b.Model)
		case SortByLocation:
			return strings.ToLower(a.Location) < strings.ToLower(b.Location)
		default:
			return strings.ToLower(a.Plate) < strings.ToLower(b.Plate)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// sortableDate 把 DD.MM.YYYY 翻转成可字典序比较的 YYYYMMDD
func sortableDate(d string) string {
	parts := strings.Split(d, ".")
	if len(parts) != 3 {
		return "00000000"
	}
	return parts[2] + parts[1] + parts[0]
}
