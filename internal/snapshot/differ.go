// Package snapshot 实现扫描结果与已持久化快照之间的纯函数对比
// 不修改输入：调用方保留的旧引用不会被打标污染
package snapshot

import (
	"time"

	"github.com/langchou/fleetgazer/internal/models"
)

// Diff 对比新扫描的记录与旧快照里的记录
// id 不在旧快照中的记录被标记为 isNew，返回打标后的新切片与新增数量
// 旧快照里缺席的车辆直接消失，不做合并
func Diff(scanned []models.Vehicle, existing []models.Vehicle) ([]models.Vehicle, int) {
	existingIDs := make(map[string]struct{}, len(existing))
	for _, v := range existing {
		existingIDs[v.ID] = struct{}{}
	}

	tagged := make([]models.Vehicle, len(scanned))
	newCount := 0
	for i, v := range scanned {
		_, known := existingIDs[v.ID]
		v.IsNew = !known
		if v.IsNew {
			newCount++
		}
		tagged[i] = v
	}
	return tagged, newCount
}

// Apply 用打标后的记录构造替换用的快照
func Apply(tagged []models.Vehicle, newCount int, scannedAt time.Time) models.Snapshot {
	return models.Snapshot{
		Vehicles: tagged,
		LastScan: &scannedAt,
		NewCount: newCount,
	}
}

// ClearMarkers 清除所有 isNew 标记
// 只动 isNew 与 newCount，其余字段与时间戳保持不变
func ClearMarkers(s models.Snapshot) models.Snapshot {
	cleared := make([]models.Vehicle, len(s.Vehicles))
	for i, v := range s.Vehicles {
		v.IsNew = false
		cleared[i] = v
	}
	return models.Snapshot{
		Vehicles: cleared,
		LastScan: s.LastScan,
		NewCount: 0,
	}
}
