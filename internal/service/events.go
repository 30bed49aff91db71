package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/madtung/sanghak2/pkg/queue"
)

const (
	publishTimeout  = 5 * time.Second
	eventBufferSize = 256
)

// EventPublisher 台账事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, event queue.LedgerEvent) error
}

// EventSink 由单个后台协程按提交顺序发布台账事件；发布失败只记录日志，不影响请求结果
type EventSink struct {
	pub    EventPublisher
	logger *zap.Logger

	events  chan queue.LedgerEvent
	done    chan struct{}
	pending sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewEventSink pub 为 nil 时所有事件被丢弃
func NewEventSink(pub EventPublisher, logger *zap.Logger) *EventSink {
	e := &EventSink{pub: pub, logger: logger}
	if pub == nil {
		return e
	}
	e.events = make(chan queue.LedgerEvent, eventBufferSize)
	e.done = make(chan struct{})
	go e.run()
	return e
}

func (e *EventSink) run() {
	defer close(e.done)
	for event := range e.events {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := e.pub.Publish(ctx, event); err != nil {
			e.logger.Warn("台账事件发布失败",
				zap.String("type", string(event.Type)), zap.Error(err))
		}
		cancel()
		e.pending.Done()
	}
}

// Emit 将事件加入发布队列，队列满时阻塞
func (e *EventSink) Emit(event queue.LedgerEvent) {
	if e == nil || e.pub == nil {
		return
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		e.logger.Warn("事件队列已关闭，丢弃事件", zap.String("type", string(event.Type)))
		return
	}
	e.pending.Add(1)
	e.events <- event
}

// Wait 等待已入队的事件全部发布完成
func (e *EventSink) Wait() {
	if e == nil {
		return
	}
	e.pending.Wait()
}

// Close 停止接收新事件，发布完剩余事件后返回（优雅关闭时调用）
func (e *EventSink) Close() {
	if e == nil || e.pub == nil {
		return
	}
	e.mu.Lock()
	if !e.closed {
		e.closed = true
		close(e.events)
	}
	e.mu.Unlock()
	<-e.done
}
