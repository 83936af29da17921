package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/langchou/fleetgazer/internal/api/booking"
	"github.com/langchou/fleetgazer/internal/api/portal"
	"github.com/langchou/fleetgazer/internal/availability"
	"github.com/langchou/fleetgazer/internal/benefit"
	"github.com/langchou/fleetgazer/internal/config"
	"github.com/langchou/fleetgazer/internal/extractor"
	"github.com/langchou/fleetgazer/internal/models"
	"github.com/langchou/fleetgazer/internal/state"
	"github.com/langchou/fleetgazer/pkg/ws"
)

// ErrNoExternalID 记录没有门户内部车辆 ID，无法做远程查询
var ErrNoExternalID = errors.New("vehicle has no external id")

// ScanService 扫描服务：抓取列表页 → 提取 → 对比打标 → 持久化 → 推送
type ScanService struct {
	cfg           *config.Config
	logger        *zap.Logger
	portalClient  *portal.Client
	bookingClient *booking.Client
	store         SnapshotStore
	session       *state.ScanSession
	wsHub         *ws.Hub
}

// ScanResult 一次扫描的结果摘要
type ScanResult struct {
	Total    int      `json:"total"`
	NewCount int      `json:"newCount"`
	Errors   []string `json:"errors,omitempty"`
}

// NewScanService 创建扫描服务
func NewScanService(
	cfg *config.Config,
	logger *zap.Logger,
	portalClient *portal.Client,
	bookingClient *booking.Client,
	store SnapshotStore,
	wsHub *ws.Hub,
) *ScanService {
	s := &ScanService{
		cfg:           cfg,
		logger:        logger,
		portalClient:  portalClient,
		bookingClient: bookingClient,
		store:         store,
		wsHub:         wsHub,
	}

	s.session = state.NewScanSession(func(from, to string) {
		logger.Debug("Scan session transition", zap.String("from", from), zap.String("to", to))
	})

	return s
}

// Scan 执行一次完整扫描
// 单行提取错误只记入结果，不中断；并发触发会被状态机拒绝
func (s *ScanService) Scan(ctx context.Context) (*ScanResult, error) {
	if err := s.session.Begin(); err != nil {
		return nil, err
	}

	doc, err := s.portalClient.FetchListing(ctx)
	if err != nil {
		s.session.Fail(err)
		return nil, fmt.Errorf("scan: %w", err)
	}

	now := time.Now()
	vehicles, rowErrs, err := extractor.ScanDocument(doc, now)
	if err != nil {
		s.session.Fail(err)
		return nil, fmt.Errorf("scan: %w", err)
	}

	for _, rowErr := range rowErrs {
		s.logger.Warn("Row extraction failed", zap.Int("row", rowErr.Row), zap.Error(rowErr.Cause))
	}

	s.session.Persist()
	result, err := Dispatch(ctx, s.store, SaveVehiclesRequest{Vehicles: vehicles, ScannedAt: now})
	if err != nil {
		s.session.Fail(err)
		return nil, fmt.Errorf("scan: %w", err)
	}
	saved := result.(SaveVehiclesResult)
	s.session.Finish()

	s.logger.Info("Scan completed",
		zap.Int("total", saved.Total),
		zap.Int("new", saved.NewCount),
		zap.Int("row_errors", len(rowErrs)))

	scanResult := &ScanResult{Total: saved.Total, NewCount: saved.NewCount}
	for _, rowErr := range rowErrs {
		scanResult.Errors = append(scanResult.Errors, rowErr.Error())
	}

	if s.wsHub != nil {
		s.wsHub.BroadcastScanUpdate(scanResult)
	}

	return scanResult, nil
}

// Session 当前扫描会话状态
func (s *ScanService) Session() state.SessionStatus {
	return s.session.Status()
}

// Availability 获取单辆车的可用性分类
// 合同到期日缺失或无法解析时按 today+2 年兜底
func (s *ScanService) Availability(ctx context.Context, v models.Vehicle, today time.Time) (*models.AvailabilityResult, error) {
	if v.ExternalID == "" {
		return nil, ErrNoExternalID
	}

	contractEnd, ok := v.ContractEndDate()
	if !ok {
		contractEnd = availability.DefaultContractEnd(today)
	}

	cal, err := s.bookingClient.FetchCalendar(ctx, v.ExternalID, today, today.AddDate(1, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("availability for %s: %w", v.ID, err)
	}

	result := availability.Aggregate(cal, contractEnd, today)
	return &result, nil
}

// AvailabilityBatch 为一批车辆获取可用性
// 固定扇出并发，批与批之间插入固定延迟以尊重远端限流；
// 单辆车失败只让该车保持未解析，不中断也不重试；一旦开始就跑完整批
func (s *ScanService) AvailabilityBatch(ctx context.Context, vehicles []models.Vehicle) map[string]*models.AvailabilityResult {
	today := time.Now()
	results := make(map[string]*models.AvailabilityResult)

	var mu sync.Mutex
	fanOut := s.cfg.BookingConcurrency
	if fanOut < 1 {
		fanOut = 1
	}

	for start := 0; start < len(vehicles); start += fanOut {
		end := start + fanOut
		if end > len(vehicles) {
			end = len(vehicles)
		}

		var wg sync.WaitGroup
		for _, v := range vehicles[start:end] {
			if v.ExternalID == "" {
				continue
			}
			wg.Add(1)
			go func(v models.Vehicle) {
				defer wg.Done()
				result, err := s.Availability(ctx, v, today)
				if err != nil {
					s.logger.Warn("Availability unresolved", zap.String("id", v.ID), zap.Error(err))
					result = models.UnresolvedAvailability()
				}
				mu.Lock()
				results[v.ID] = result
				mu.Unlock()
			}(v)
		}
		wg.Wait()

		if end < len(vehicles) {
			time.Sleep(s.cfg.BookingBatchDelay)
		}
	}

	return results
}

// Benefit 获取单辆车的应税货币利益
func (s *ScanService) Benefit(ctx context.Context, v models.Vehicle) (*models.Benefit, error) {
	if v.ExternalID == "" {
		return nil, ErrNoExternalID
	}

	details, err := s.bookingClient.FetchFinanceDetails(ctx, v.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("benefit for %s: %w", v.ID, err)
	}

	result := benefit.Calculate(details.GrossPrice, details.FuelType)
	return &result, nil
}
