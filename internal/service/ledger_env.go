package service

import (
	"fmt"
	"time"

	"github.com/madtung/sanghak2/config"
	"github.com/madtung/sanghak2/internal/ledger"
)

const dateLayout = "2006-01-02"

// Ledger 各台账服务共享的依赖：存储、规则引擎、运营参数与时钟
type Ledger struct {
	Store  *LedgerStore
	Engine *ledger.Engine
	Kiosk  config.KioskConfig
	Now    func() time.Time
}

// NewLedger 按运营参数构建规则引擎，时钟固定在运营时区
func NewLedger(cfg *config.KioskConfig, store *LedgerStore) (*Ledger, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("加载时区失败: %w", err)
	}
	return &Ledger{
		Store:  store,
		Engine: NewEngine(cfg),
		Kiosk:  *cfg,
		Now:    func() time.Time { return time.Now().In(loc) },
	}, nil
}

// NewEngine 按运营参数创建规则引擎
func NewEngine(cfg *config.KioskConfig) *ledger.Engine {
	return ledger.NewEngine(ledger.NewSlots(cfg.OpenHour, cfg.CloseHour, cfg.SlotMinutes), cfg.StudyRoomCount)
}

// Today 运营时区的当天日期（YYYY-MM-DD）
func (l *Ledger) Today() string {
	return l.Now().Format(dateLayout)
}

// InBookingWindow 日期是否在 今天 ~ 今天+(窗口天数-1) 范围内
func (l *Ledger) InBookingWindow(date string) bool {
	now := l.Now()
	d, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	last := today.AddDate(0, 0, l.Kiosk.BookingWindowDays-1)
	return !d.Before(today) && !d.After(last)
}
