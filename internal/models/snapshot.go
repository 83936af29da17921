package models

import "time"

// Snapshot 持久化的整体快照
// 每次成功扫描后整体替换，不与旧数据合并
type Snapshot struct {
	Vehicles []Vehicle  `json:"vehicles"`
	LastScan *time.Time `json:"lastScan"`
	NewCount int        `json:"newCount"`
}

// Stats 快照统计信息（弹窗/概览用）
type Stats struct {
	TotalVehicles int        `json:"totalVehicles"`
	LastScan      *time.Time `json:"lastScan"`
	NewCount      int        `json:"newCount"`
}

// Stats 从快照计算统计信息
func (s *Snapshot) Stats() Stats {
	return Stats{
		TotalVehicles: len(s.Vehicles),
		LastScan:      s.LastScan,
		NewCount:      s.NewCount,
	}
}
