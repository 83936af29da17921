// Package booking 封装门户的预订占用 feed 与车辆财务 feed
// 两个 feed 都是单次请求，失败不重试：调用方拿到"无数据"而不是零值
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"time"

	"github.com/langchou/fleetgazer/internal/models"
)

// ErrUnresolvableShape 预订 feed 的响应不属于任何已知形状
var ErrUnresolvableShape = errors.New("unresolvable booking response shape")

var dateKeyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Client 预订/财务 feed 客户端
type Client struct {
	httpClient *http.Client
	apiHost    string
}

// NewClient 创建 feed 客户端
func NewClient(apiHost string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiHost: apiHost,
	}
}

// FetchCalendar 获取单辆车在给定日期窗口（含两端）内的预订日历
func (c *Client) FetchCalendar(ctx context.Context, vehicleID string, from, to time.Time) (models.BookingCalendar, error) {
	query := url.Values{}
	query.Set("vehicleId", vehicleID)
	query.Set("from", from.Format("2006-01-02"))
	query.Set("to", to.Format("2006-01-02"))

	body, err := c.get(ctx, "/api/fleet/occupancy?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetch calendar: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode calendar response: %w", err)
	}

	return resolveCalendar(raw, vehicleID)
}

// resolveCalendar 对多形状的 feed 响应按固定顺序消歧：
// (a) 顶层存在以车辆 ID 为键的对象 → 用该嵌套对象
// (b) 响应没有任何键 → 完全空闲（空映射）
// (c) 响应的键本身就是日期 → 整个响应就是日历
// (d) 取排序后第一个值为对象的键：嵌套对象为空则完全空闲，否则作为日历
// (e) 其余形状无法解析
func resolveCalendar(raw map[string]json.RawMessage, vehicleID string) (models.BookingCalendar, error) {
	if nested, ok := raw[vehicleID]; ok && isObject(nested) {
		return parseCalendar(nested)
	}

	if len(raw) == 0 {
		return models.BookingCalendar{}, nil
	}

	allDates := true
	for key := range raw {
		if !dateKeyRe.MatchString(key) {
			allDates = false
			break
		}
	}
	if allDates {
		cal := make(models.BookingCalendar, len(raw))
		for key, value := range raw {
			var ratio float64
			if err := json.Unmarshal(value, &ratio); err == nil {
				cal[key] = ratio
			}
		}
		return cal, nil
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if isObject(raw[key]) {
			return parseCalendar(raw[key])
		}
	}

	return nil, ErrUnresolvableShape
}

// parseCalendar 把嵌套对象解析为日历，非数值的条目被忽略
func parseCalendar(raw json.RawMessage) (models.BookingCalendar, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decode nested calendar: %w", err)
	}

	cal := make(models.BookingCalendar, len(obj))
	for key, value := range obj {
		var ratio float64
		if err := json.Unmarshal(value, &ratio); err == nil {
			cal[key] = ratio
		}
	}
	return cal, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// get 执行单次 GET 请求并读取响应体
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiHost+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: status=%d body=%s", resp.StatusCode, string(body))
	}
	return body, nil
}
