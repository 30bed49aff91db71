package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/madtung/sanghak2/internal/ledger"
	"github.com/madtung/sanghak2/internal/model"
	"github.com/madtung/sanghak2/internal/repository"
	pkgerrors "github.com/madtung/sanghak2/pkg/errors"
)

// ErrLedgerConflict 其他终端已修改台账，本次操作未生效，可重试
var ErrLedgerConflict = errors.New("다른 단말기에서 먼저 변경되었습니다. 다시 시도해주세요")

// ChangeNotifier 台账提交后的通知对象（现况看板）
type ChangeNotifier interface {
	NotifyLedgerChanged(records []string)
}

type persistedRecord struct {
	value   string
	version int
}

// LedgerStore 持有台账状态，负责加载、原子变更与持久化。
//
// 每次变更在互斥锁内完成：调用方函数基于当前状态计算新状态，
// 只有发生变化的记录会在同一事务中写入；写入成功后才替换内存状态。
type LedgerStore struct {
	repo     repository.RecordRepository
	defaults func() ledger.State
	notifier ChangeNotifier
	logger   *zap.Logger

	mu        sync.Mutex
	state     ledger.State
	persisted map[string]persistedRecord
}

// NewLedgerStore 创建台账存储；defaults 提供记录缺失或损坏时的初始值
func NewLedgerStore(repo repository.RecordRepository, defaults func() ledger.State, notifier ChangeNotifier, logger *zap.Logger) *LedgerStore {
	return &LedgerStore{
		repo:      repo,
		defaults:  defaults,
		notifier:  notifier,
		logger:    logger,
		state:     defaults(),
		persisted: make(map[string]persistedRecord),
	}
}

// Load 从数据库加载全部记录。缺失或无法解析的记录使用默认值。
func (s *LedgerStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *LedgerStore) load(ctx context.Context) error {
	records, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("加载台账记录失败: %w", err)
	}

	byKey := make(map[string]model.Record, len(records))
	for _, r := range records {
		byKey[r.Key] = r
	}

	state := s.defaults()
	persisted := make(map[string]persistedRecord, len(records))
	for _, key := range model.RecordKeys {
		rec, ok := byKey[key]
		if !ok {
			s.logger.Info("台账记录不存在，使用默认值", zap.String("key", key))
			continue
		}
		persisted[key] = persistedRecord{value: rec.Value, version: rec.Version}
		if err := decodeRecord(&state, key, rec.Value); err != nil {
			s.logger.Warn("台账记录无法解析，使用默认值",
				zap.String("key", key), zap.Error(err))
			continue
		}
	}

	s.state = state
	s.persisted = persisted
	return nil
}

// Snapshot 当前状态。返回值不可修改（各切片与存储共享）。
func (s *LedgerStore) Snapshot() ledger.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Mutate 基于当前状态原子地计算并持久化新状态。
// fn 返回错误时状态不变；持久化遇到版本冲突时重新加载并返回 ErrLedgerConflict。
// onCommit 仅在提交成功后于同一临界区内按顺序调用，可用于按提交顺序发出事件。
func (s *LedgerStore) Mutate(
	ctx context.Context,
	fn func(ledger.State) (ledger.State, error),
	onCommit ...func(ledger.State),
) (ledger.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.state)
	if err != nil {
		return s.state, err
	}

	encoded, err := encodeState(next)
	if err != nil {
		s.logger.Error("序列化台账失败", zap.Error(err))
		return s.state, err
	}

	var changed []*model.Record
	for _, key := range model.RecordKeys {
		p, ok := s.persisted[key]
		if ok && p.value == encoded[key] {
			continue
		}
		rec := &model.Record{Key: key, Value: encoded[key]}
		rec.Version = p.version
		changed = append(changed, rec)
	}
	if len(changed) == 0 {
		s.state = next
		for _, f := range onCommit {
			f(next)
		}
		return next, nil
	}

	if err := s.repo.SaveAll(ctx, changed); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			s.logger.Warn("台账版本冲突，重新加载", zap.Int("records", len(changed)))
			if rerr := s.load(ctx); rerr != nil {
				s.logger.Error("冲突后重新加载失败", zap.Error(rerr))
			}
			return s.state, ErrLedgerConflict
		}
		s.logger.Error("保存台账失败", zap.Error(err))
		return s.state, err
	}

	keys := make([]string, len(changed))
	for i, rec := range changed {
		s.persisted[rec.Key] = persistedRecord{value: rec.Value, version: rec.Version}
		keys[i] = rec.Key
	}
	s.state = next

	if s.notifier != nil {
		s.notifier.NotifyLedgerChanged(keys)
	}
	for _, f := range onCommit {
		f(next)
	}
	return next, nil
}

// ── 编解码 ──

func encodeState(st ledger.State) (map[string]string, error) {
	values := map[string]any{
		model.RecordStudents:              nonNil(st.Students),
		model.RecordSeatReservations:      nonNil(st.SeatReservations),
		model.RecordStudyRoomReservations: nonNil(st.StudyRoomReservations),
		model.RecordLogs:                  nonNil(st.Logs),
		model.RecordAdminPassword:         st.AdminPassword,
		model.RecordSeatLayout:            nonNil(st.SeatLayout),
		model.RecordLogoURL:               st.LogoURL,
		model.RecordAnnouncements:         st.Announcements,
	}

	out := make(map[string]string, len(values))
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// 公告 HTML 按原文存储
	enc.SetEscapeHTML(false)
	for key, v := range values {
		buf.Reset()
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("序列化 %s 失败: %w", key, err)
		}
		out[key] = string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	}
	return out, nil
}

func decodeRecord(st *ledger.State, key, value string) error {
	data := []byte(value)
	switch key {
	case model.RecordStudents:
		return decodeSlice(data, &st.Students)
	case model.RecordSeatReservations:
		return decodeSlice(data, &st.SeatReservations)
	case model.RecordStudyRoomReservations:
		return decodeSlice(data, &st.StudyRoomReservations)
	case model.RecordLogs:
		return decodeSlice(data, &st.Logs)
	case model.RecordSeatLayout:
		return decodeSlice(data, &st.SeatLayout)
	case model.RecordAdminPassword:
		return decodeString(data, &st.AdminPassword)
	case model.RecordLogoURL:
		return decodeString(data, &st.LogoURL)
	case model.RecordAnnouncements:
		return decodeString(data, &st.Announcements)
	}
	return fmt.Errorf("未知记录键 %q", key)
}

// decodeSlice 解析成功才覆盖 dst；JSON null 视为损坏
func decodeSlice[T any](data []byte, dst *[]T) error {
	var v []T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		return errors.New("记录值为 null")
	}
	*dst = v
	return nil
}

func decodeString(data []byte, dst *string) error {
	var v *string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		return errors.New("记录值为 null")
	}
	*dst = *v
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
