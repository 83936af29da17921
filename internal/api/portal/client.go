// Package portal 负责抓取车队门户已渲染的车辆列表页
// 提取器只关心文档结构，不关心它从哪来
package portal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// 门户里车辆列表所在的页面路径
const listingPath = "/fleet/cars"

// Client 门户页面客户端
type Client struct {
	httpClient    *http.Client
	baseURL       string
	sessionCookie string
}

// NewClient 创建门户客户端
// sessionCookie 为整条 Cookie 头的值，由运维从已登录会话中取出
func NewClient(baseURL, sessionCookie string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:       baseURL,
		sessionCookie: sessionCookie,
	}
}

// FetchListing 抓取列表页并解析为可查询的文档
func (c *Client) FetchListing(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+listingPath, nil)
	if err != nil {
		return nil, fmt.Errorf("create listing request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", "FleetGazer/1.0")
	if c.sessionCookie != "" {
		req.Header.Set("Cookie", c.sessionCookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch listing failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse listing document: %w", err)
	}
	return doc, nil
}
