package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

// MessageLedgerChanged 台账已提交变更，看板应重新拉取 /status
const MessageLedgerChanged = "ledger_changed"

// StatusMessage 推送给现况看板的消息
type StatusMessage struct {
	Type    string    `json:"type"`
	Records []string  `json:"records"`
	At      time.Time `json:"at"`
}

// StatusHub 管理现况看板的 websocket 连接
type StatusHub struct {
	register   chan *statusClient
	unregister chan *statusClient
	broadcast  chan []byte
	done       chan struct{}
	clients    map[*statusClient]struct{}
	logger     *zap.Logger
}

// NewStatusHub 创建 Hub；需要另起 goroutine 调用 Run
func NewStatusHub(logger *zap.Logger) *StatusHub {
	return &StatusHub{
		register:   make(chan *statusClient),
		unregister: make(chan *statusClient),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		clients:    make(map[*statusClient]struct{}),
		logger:     logger,
	}
}

// Run 事件循环，Stop 后关闭所有连接并返回
func (h *StatusHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			h.drop(client)
		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// 慢客户端直接断开
					h.drop(client)
				}
			}
		case <-h.done:
			for client := range h.clients {
				h.drop(client)
			}
			return
		}
	}
}

// Stop 停止事件循环
func (h *StatusHub) Stop() {
	close(h.done)
}

func (h *StatusHub) drop(client *statusClient) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	client.conn.Close()
}

// NotifyLedgerChanged 通知所有看板台账已变更。不阻塞调用方，缓冲区满时丢弃。
func (h *StatusHub) NotifyLedgerChanged(records []string) {
	if h == nil {
		return
	}
	data, err := json.Marshal(StatusMessage{Type: MessageLedgerChanged, Records: records, At: time.Now()})
	if err != nil {
		h.logger.Error("序列化看板消息失败", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("看板广播队列已满，丢弃本次通知")
	}
}

type statusClient struct {
	hub  *StatusHub
	conn *websocket.Conn
	send chan []byte
}

func (c *statusClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *statusClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
