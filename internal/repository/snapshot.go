package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/langchou/fleetgazer/internal/models"
)

// 三个逻辑槽位，键名与旧版扩展的 storage.local 保持一致
const (
	slotVehicles = "vehicles"
	slotLastScan = "lastScan"
	slotNewCount = "newCount"
)

// SnapshotRepository 快照仓库
// 读写都在一个事务里完成，对外表现为原子的三槽位操作
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository 创建快照仓库
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Load 读取当前快照，槽位不存在时返回空快照
func (r *SnapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	query := `SELECT key, value FROM snapshot_store WHERE key = ANY($1)`
	rows, err := r.db.Pool.Query(ctx, query, []string{slotVehicles, slotLastScan, slotNewCount})
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	defer rows.Close()

	snap := &models.Snapshot{Vehicles: []models.Vehicle{}}
	for rows.Next() {
		var (
			key   string
			value []byte
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan snapshot slot: %w", err)
		}

		switch key {
		case slotVehicles:
			if err := json.Unmarshal(value, &snap.Vehicles); err != nil {
				return nil, fmt.Errorf("decode vehicles slot: %w", err)
			}
		case slotLastScan:
			if err := json.Unmarshal(value, &snap.LastScan); err != nil {
				return nil, fmt.Errorf("decode last scan slot: %w", err)
			}
		case slotNewCount:
			if err := json.Unmarshal(value, &snap.NewCount); err != nil {
				return nil, fmt.Errorf("decode new count slot: %w", err)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot slots: %w", err)
	}
	if snap.Vehicles == nil {
		snap.Vehicles = []models.Vehicle{}
	}

	return snap, nil
}

// Replace 整体替换快照的三个槽位
func (r *SnapshotRepository) Replace(ctx context.Context, snap models.Snapshot) error {
	vehicles := snap.Vehicles
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}

	vehiclesJSON, err := json.Marshal(vehicles)
	if err != nil {
		return fmt.Errorf("encode vehicles slot: %w", err)
	}
	lastScanJSON, err := json.Marshal(snap.LastScan)
	if err != nil {
		return fmt.Errorf("encode last scan slot: %w", err)
	}
	newCountJSON, err := json.Marshal(snap.NewCount)
	if err != nil {
		return fmt.Errorf("encode new count slot: %w", err)
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO snapshot_store (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	now := time.Now()
	for _, slot := range []struct {
		key   string
		value []byte
	}{
		{slotVehicles, vehiclesJSON},
		{slotLastScan, lastScanJSON},
		{slotNewCount, newCountJSON},
	} {
		if _, err := tx.Exec(ctx, query, slot.key, slot.value, now); err != nil {
			return fmt.Errorf("write slot %s: %w", slot.key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot tx: %w", err)
	}
	return nil
}

// Reset 清空全部数据，回到安装时的初始槽位
func (r *SnapshotRepository) Reset(ctx context.Context) error {
	return r.Replace(ctx, models.Snapshot{Vehicles: []models.Vehicle{}})
}
