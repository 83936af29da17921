package service

import (
	"context"
	"fmt"
	"time"

	"github.com/langchou/fleetgazer/internal/models"
	"github.com/langchou/fleetgazer/internal/snapshot"
)

// SnapshotStore 持久化边界
// 实现方保证三个槽位的读写整体原子
type SnapshotStore interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Replace(ctx context.Context, snap models.Snapshot) error
	Reset(ctx context.Context) error
}

// Request 持久化边界的请求变体，集合封闭
type Request interface {
	isRequest()
}

// SaveVehiclesRequest 保存一次扫描的结果（先对比打标再整体替换）
type SaveVehiclesRequest struct {
	Vehicles  []models.Vehicle
	ScannedAt time.Time
}

// GetVehiclesRequest 读取当前记录列表
type GetVehiclesRequest struct{}

// GetStatsRequest 读取快照统计
type GetStatsRequest struct{}

// ClearNewMarkersRequest 清除所有新增标记
type ClearNewMarkersRequest struct{}

// ClearDataRequest 清空全部持久化数据
type ClearDataRequest struct{}

func (SaveVehiclesRequest) isRequest()    {}
func (GetVehiclesRequest) isRequest()     {}
func (GetStatsRequest) isRequest()        {}
func (ClearNewMarkersRequest) isRequest() {}
func (ClearDataRequest) isRequest()       {}

// Result 持久化边界的结果变体
type Result interface {
	isResult()
}

// SaveVehiclesResult 保存结果
type SaveVehiclesResult struct {
	Total       int              `json:"total"`
	NewCount    int              `json:"newCount"`
	NewVehicles []models.Vehicle `json:"newVehicles"`
}

// VehiclesResult 记录列表与其中新增车辆的车牌
type VehiclesResult struct {
	Vehicles  []models.Vehicle `json:"vehicles"`
	NewPlates []string         `json:"newPlates"`
}

// StatsResult 快照统计
type StatsResult struct {
	Stats models.Stats `json:"stats"`
}

// ClearedResult 清除/清空完成
type ClearedResult struct{}

// FailureResult 未知请求变体的结构化失败，绝不让未处理的请求炸掉边界
type FailureResult struct {
	Reason string `json:"reason"`
}

func (SaveVehiclesResult) isResult() {}
func (VehiclesResult) isResult()     {}
func (StatsResult) isResult()        {}
func (ClearedResult) isResult()      {}
func (FailureResult) isResult()      {}

// Dispatch 持久化边界的统一入口
// 每个请求变体对应一个处理分支；存储错误原样返回，未知变体得到 FailureResult
func Dispatch(ctx context.Context, store SnapshotStore, req Request) (Result, error) {
	switch req := req.(type) {
	case SaveVehiclesRequest:
		return saveVehicles(ctx, store, req)

	case GetVehiclesRequest:
		snap, err := store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("get vehicles: %w", err)
		}
		newPlates := make([]string, 0)
		for _, v := range snap.Vehicles {
			if v.IsNew {
				newPlates = append(newPlates, v.Plate)
			}
		}
		return VehiclesResult{Vehicles: snap.Vehicles, NewPlates: newPlates}, nil

	case GetStatsRequest:
		snap, err := store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("get stats: %w", err)
		}
		return StatsResult{Stats: snap.Stats()}, nil

	case ClearNewMarkersRequest:
		snap, err := store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("clear markers: %w", err)
		}
		cleared := snapshot.ClearMarkers(*snap)
		if err := store.Replace(ctx, cleared); err != nil {
			return nil, fmt.Errorf("clear markers: %w", err)
		}
		return ClearedResult{}, nil

	case ClearDataRequest:
		if err := store.Reset(ctx); err != nil {
			return nil, fmt.Errorf("clear data: %w", err)
		}
		return ClearedResult{}, nil

	default:
		return FailureResult{Reason: fmt.Sprintf("unknown request: %T", req)}, nil
	}
}

// saveVehicles 对比旧快照打标后整体替换
// 对比用的是本次更新前的已持久化列表
func saveVehicles(ctx context.Context, store SnapshotStore, req SaveVehiclesRequest) (Result, error) {
	existing, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("save vehicles: %w", err)
	}

	tagged, newCount := snapshot.Diff(req.Vehicles, existing.Vehicles)

	scannedAt := req.ScannedAt
	if scannedAt.IsZero() {
		scannedAt = time.Now()
	}
	if err := store.Replace(ctx, snapshot.Apply(tagged, newCount, scannedAt)); err != nil {
		return nil, fmt.Errorf("save vehicles: %w", err)
	}

	newVehicles := make([]models.Vehicle, 0, newCount)
	for _, v := range tagged {
		if v.IsNew {
			newVehicles = append(newVehicles, v)
		}
	}
	return SaveVehiclesResult{Total: len(tagged), NewCount: newCount, NewVehicles: newVehicles}, nil
}
