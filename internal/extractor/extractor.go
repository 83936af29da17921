package extractor

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/langchou/fleetgazer/internal/models"
)

// 门户列表页的选择器，与门户的 Materialize 栅格结构对应
const (
	selContainer     = "#pc-cars-content"
	selRow           = "div.content-row"
	selLogoColumn    = "div.col.s1"
	selInfoColumn    = "div.col.s3"
	selSecondaryInfo = "div.font-size-12"
	selProgressBar   = `div[style*='4CAF50']`
	selVehicleLink   = "a[data-vehicle-id]"
	attrVehicleLink  = "data-vehicle-id"
)

// ErrContainerNotFound 页面上找不到车辆列表容器
// 区别于"容器存在但没有行"（后者是合法的零结果）
var ErrContainerNotFound = errors.New("vehicle container not found")

// RowError 单行解析失败的记录，扫描不会因此中断
type RowError struct {
	Row   int
	Cause error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Cause)
}

var (
	downloadPayloadRe = regexp.MustCompile(`/download/([A-Za-z0-9+/=]+)`)
	contractEndRe     = regexp.MustCompile(`(?i)Vertragsende:\s*(\d{2}\.\d{2}\.\d{4})`)
	monthlyRateRe     = regexp.MustCompile(`(?i)Leasingrate:\s*([\d.,]+)\s*€`)
	progressWidthRe   = regexp.MustCompile(`width:\s*([\d.]+)%`)
	percentTextRe     = regexp.MustCompile(`(\d{1,3})%`)
	digitsOnlyRe      = regexp.MustCompile(`^\d+$`)
)

// ScanDocument 扫描整个列表文档
// 所有行都会被处理：单行失败只记入错误列表，不中断扫描；
// 没有车牌的行被整行丢弃（无法追踪身份）
func ScanDocument(doc *goquery.Document, now time.Time) ([]models.Vehicle, []RowError, error) {
	if doc.Find(selContainer).Length() == 0 {
		return nil, nil, ErrContainerNotFound
	}

	var (
		vehicles []models.Vehicle
		rowErrs  []RowError
	)

	doc.Find(selContainer).Find(selRow).Each(func(i int, row *goquery.Selection) {
		v, err := parseRow(row, i, now)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 1, Cause: err})
			return
		}
		if v.Plate == "" {
			return
		}
		vehicles = append(vehicles, v)
	})

	return vehicles, rowErrs, nil
}

// parseRow 解析单个列表行
// 每个字段提取器互相隔离：单字段失败只让该字段未知，不影响其余字段
func parseRow(row *goquery.Selection, index int, now time.Time) (v models.Vehicle, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse row: %v", r)
		}
	}()

	plate := extractPlate(row)

	v = models.Vehicle{
		ID:               plate,
		Plate:            plate,
		Brand:            extractBrand(row),
		Model:            extractModel(row),
		ContractEnd:      extractContractEnd(row),
		MonthlyRate:      extractMonthlyRate(row),
		Location:         extractLocation(row),
		ContractProgress: extractContractProgress(row),
		ExternalID:       extractExternalID(row),
		ScannedAt:        now,
	}
	if v.ID == "" {
		v.ID = fmt.Sprintf("unknown_%d", index)
	}
	if plate != "" {
		v.PlateDisplay = FormatPlate(plate)
	}
	return v, nil
}

// extractPlate 身份区域内第一个加粗文本
func extractPlate(row *goquery.Selection) string {
	return strings.TrimSpace(row.Find(selInfoColumn + " b").First().Text())
}

// extractModel 加粗车牌之后第一个非空的纯文本兄弟节点
func extractModel(row *goquery.Selection) string {
	bold := row.Find(selInfoColumn + " b").First()
	if bold.Length() == 0 {
		return ""
	}
	for n := bold.Get(0).NextSibling; n != nil; n = n.NextSibling {
		if n.Type != html.TextNode {
			continue
		}
		if text := strings.TrimSpace(n.Data); text != "" {
			return text
		}
	}
	return ""
}

// extractBrand 两段解析：
// 1) logo 的 src 里带 /download/<base64> 负载，解码后形如 BRANDIMG|<品牌>
// 2) 否则按声明顺序在 alt/title 中找品牌关键字
func extractBrand(row *goquery.Selection) string {
	img := row.Find(selLogoColumn + " img").First()
	if img.Length() == 0 {
		return ""
	}

	if m := downloadPayloadRe.FindStringSubmatch(img.AttrOr("src", "")); m != nil {
		if decoded, err := base64.StdEncoding.DecodeString(m[1]); err == nil {
			parts := strings.Split(string(decoded), "|")
			if len(parts) >= 2 && parts[0] == "BRANDIMG" {
				return parts[1]
			}
		}
	}

	alt := strings.ToLower(img.AttrOr("alt", ""))
	title := strings.ToLower(img.AttrOr("title", ""))
	for _, sig := range brandSignatures {
		if strings.Contains(alt, sig.keyword) || strings.Contains(title, sig.keyword) {
			return sig.name
		}
	}
	return ""
}

func extractContractEnd(row *goquery.Selection) string {
	if m := contractEndRe.FindStringSubmatch(row.Text()); m != nil {
		return m[1]
	}
	return ""
}

// extractMonthlyRate 德式金额（. 千分位，, 小数点）归一化为十进制
func extractMonthlyRate(row *goquery.Selection) *float64 {
	m := monthlyRateRe.FindStringSubmatch(row.Text())
	if m == nil {
		return nil
	}
	normalized := strings.ReplaceAll(m[1], ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	rate, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil
	}
	return &rate
}

// extractLocation 副信息块里最后一个短文本，长度须在 (1,50) 之间
func extractLocation(row *goquery.Selection) string {
	text := strings.TrimSpace(row.Find(selSecondaryInfo + " span").Last().Text())
	if n := utf8.RuneCountInString(text); n > 1 && n < 50 {
		return text
	}
	return ""
}

// extractContractProgress 优先取进度条的内联宽度百分比，
// 退化为副信息块里的通用百分数
func extractContractProgress(row *goquery.Selection) *int {
	if style, ok := row.Find(selProgressBar).First().Attr("style"); ok {
		if m := progressWidthRe.FindStringSubmatch(style); m != nil {
			if value, err := strconv.ParseFloat(m[1], 64); err == nil && value >= 0 && value <= 100 {
				pct := int(math.Round(value))
				return &pct
			}
		}
	}

	text := row.Find(selSecondaryInfo).Text()
	if m := percentTextRe.FindStringSubmatch(text); m != nil {
		if value, err := strconv.Atoi(m[1]); err == nil && value >= 0 && value <= 100 {
			return &value
		}
	}
	return nil
}

// extractExternalID 指定链接的 data 属性，只接受纯数字
func extractExternalID(row *goquery.Selection) string {
	id := row.Find(selVehicleLink).First().AttrOr(attrVehicleLink, "")
	if digitsOnlyRe.MatchString(id) {
		return id
	}
	return ""
}
