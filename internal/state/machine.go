// Package state 用状态机管理扫描会话的生命周期
// 保存操作按设计只会被串行触发，状态机负责把并发触发拒绝掉
package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/looplab/fsm"
)

// 扫描会话状态常量
const (
	StateIdle       = "idle"
	StateScanning   = "scanning"
	StatePersisting = "persisting"
)

// 事件常量
const (
	EventStartScan = "start_scan"
	EventPersist   = "persist"
	EventFinish    = "finish"
	EventFail      = "fail"
)

// ErrScanInProgress 已有扫描在进行中
var ErrScanInProgress = errors.New("scan already in progress")

// SessionStatus 对外暴露的会话状态
type SessionStatus struct {
	State     string    `json:"state"`
	Since     time.Time `json:"since"`
	LastError string    `json:"lastError,omitempty"`
}

// ScanSession 扫描会话状态机
type ScanSession struct {
	mu        sync.RWMutex
	fsm       *fsm.FSM
	since     time.Time
	lastError string
	onChange  func(from, to string)
}

// NewScanSession 创建会话状态机
func NewScanSession(onChange func(from, to string)) *ScanSession {
	s := &ScanSession{
		since:    time.Now(),
		onChange: onChange,
	}

	s.fsm = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: EventStartScan, Src: []string{StateIdle}, Dst: StateScanning},
			{Name: EventPersist, Src: []string{StateScanning}, Dst: StatePersisting},
			{Name: EventFinish, Src: []string{StatePersisting}, Dst: StateIdle},
			{Name: EventFail, Src: []string{StateScanning, StatePersisting}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"after_event": func(ctx context.Context, e *fsm.Event) {
				if s.onChange != nil && e.Src != e.Dst {
					s.onChange(e.Src, e.Dst)
				}
			},
		},
	)

	return s
}

// Begin 进入扫描状态，已有扫描时返回 ErrScanInProgress
func (s *ScanSession) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fsm.Event(context.Background(), EventStartScan); err != nil {
		return ErrScanInProgress
	}
	s.since = time.Now()
	s.lastError = ""
	return nil
}

// Persist 进入持久化状态
func (s *ScanSession) Persist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.fsm.Event(context.Background(), EventPersist)
}

// Finish 扫描成功结束，回到空闲
func (s *ScanSession) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fsm.Event(context.Background(), EventFinish); err == nil {
		s.since = time.Now()
	}
}

// Fail 扫描失败，记录原因并回到空闲
func (s *ScanSession) Fail(cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cause != nil {
		s.lastError = cause.Error()
	}
	if err := s.fsm.Event(context.Background(), EventFail); err == nil {
		s.since = time.Now()
	}
}

// Current 当前状态
func (s *ScanSession) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fsm.Current()
}

// Status 当前会话状态快照
func (s *ScanSession) Status() SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionStatus{
		State:     s.fsm.Current(),
		Since:     s.since,
		LastError: s.lastError,
	}
}
