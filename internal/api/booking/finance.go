package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// FinanceDetails 财务 feed 返回的车辆财务信息
type FinanceDetails struct {
	GrossPrice *float64 // 毛目录价，缺失时为 nil
	FuelType   string   // 自由文本的燃料类型
}

// financeResponse 毛价字段可能是纯数字、逗号小数的字符串，
// 或带 value/raw 两个字段的对象
type financeResponse struct {
	GrossListPrice json.RawMessage `json:"bruttolistenpreis"`
	FuelType       string          `json:"treibstoff"`
}

// FetchFinanceDetails 获取单辆车的财务明细
func (c *Client) FetchFinanceDetails(ctx context.Context, vehicleID string) (*FinanceDetails, error) {
	query := url.Values{}
	query.Set("vehicleId", vehicleID)

	body, err := c.get(ctx, "/api/fleet/finance?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetch finance details: %w", err)
	}

	var resp financeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode finance response: %w", err)
	}

	return &FinanceDetails{
		GrossPrice: parseGrossPrice(resp.GrossListPrice),
		FuelType:   resp.FuelType,
	}, nil
}

// parsedPrice 对象形状：解析好的数值，带原始字符串兜底
type parsedPrice struct {
	Value *float64 `json:"value"`
	Raw   string   `json:"raw"`
}

// parseGrossPrice 依次尝试三种形状，都失败时返回 nil
func parseGrossPrice(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return finitePrice(number)
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return parseGermanDecimal(text)
	}

	var obj parsedPrice
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Value != nil {
			return finitePrice(*obj.Value)
		}
		return parseGermanDecimal(obj.Raw)
	}

	return nil
}

// parseGermanDecimal 德式格式（. 千分位，, 小数点）转十进制
func parseGermanDecimal(text string) *float64 {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return nil
	}
	return finitePrice(value)
}

func finitePrice(value float64) *float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}
