package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/madtung/sanghak2/config"
)

// EventType 台账事件类型
type EventType string

const (
	EventCheckIn    EventType = "seat.check_in"
	EventCheckOut   EventType = "seat.check_out"
	EventRoomBooked EventType = "study_room.booked"
)

// LedgerEvent 发布到队列的台账事件
type LedgerEvent struct {
	Type       EventType `json:"type"`
	StudentID  string    `json:"student_id"`
	Name       string    `json:"name"`
	Seat       string    `json:"seat,omitempty"`
	Room       int       `json:"room,omitempty"`
	Date       string    `json:"date,omitempty"`
	StartTime  string    `json:"start_time,omitempty"`
	EndTime    string    `json:"end_time,omitempty"`
	Attendees  int       `json:"attendees,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher RabbitMQ 事件发布器。
// 每次发布独立建立连接，发布量很小（每次入退室一条）。
// nil Publisher 的 Publish 为空操作，未配置 queue.url 时即为 nil。
type Publisher struct {
	url    string
	queue  string
	logger *zap.Logger
}

// NewPublisher 创建发布器；cfg.URL 为空时返回 nil
func NewPublisher(cfg *config.QueueConfig, logger *zap.Logger) *Publisher {
	if cfg.URL == "" {
		return nil
	}
	return &Publisher{url: cfg.URL, queue: cfg.Name, logger: logger}
}

// Publish 发布一条持久化消息到默认交换机，路由键为队列名
func (p *Publisher) Publish(ctx context.Context, event LedgerEvent) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("连接 RabbitMQ 失败: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("打开 channel 失败: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("声明队列失败: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt.UTC(),
		Type:         string(event.Type),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("发布事件失败: %w", err)
	}

	p.logger.Debug("台账事件已发布", zap.String("type", string(event.Type)), zap.String("queue", p.queue))
	return nil
}
