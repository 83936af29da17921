package models

import (
	"strings"
	"time"
)

// Vehicle 从车队门户列表行提取出来的规范化车辆记录
// JSON 字段名保持门户原始的德语存储键，便于与旧快照数据兼容
type Vehicle struct {
	ID               string     `json:"id"`                            // 身份键：原始车牌，缺失时为 unknown_<index>，永不为空
	Plate            string     `json:"kennzeichen,omitempty"`         // 原始车牌
	PlateDisplay     string     `json:"kennzeichenDisplay,omitempty"`  // 格式化后的展示车牌（仅用于展示）
	Brand            string     `json:"marke,omitempty"`               // 品牌，未知时为空
	Model            string     `json:"modell,omitempty"`              // 型号，未知时为空
	ContractEnd      string     `json:"vertragsende,omitempty"`        // 合同到期日，DD.MM.YYYY
	MonthlyRate      *float64   `json:"leasingrate,omitempty"`         // 月租金，未知时为 nil
	Location         string     `json:"standort,omitempty"`            // 所在地
	ContractProgress *int       `json:"vertragsProzent,omitempty"`     // 合同进度百分比 0-100
	ExternalID       string     `json:"fahrzeugId,omitempty"`          // 门户内部车辆 ID，纯数字，用于远程查询
	ScannedAt        time.Time  `json:"scannedAt"`                     // 扫描时间
	IsNew            bool       `json:"isNew"`                         // 相对上一份快照是否为新增
}

// ContractEndDate 解析合同到期日
// 无法解析时返回 false，调用方自行决定默认值
func (v Vehicle) ContractEndDate() (time.Time, bool) {
	s := strings.TrimSpace(v.ContractEnd)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("02.01.2006", s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
