package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func TestStatusHub_BroadcastReachesClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewStatusHub(zap.NewNop())
	go hub.Run()
	defer hub.Stop()

	r := gin.New()
	r.GET("/ws/status", StatusHandler(hub, NewUpgrader(nil)))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/status"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("连接 websocket 失败: %v", err)
	}
	defer conn.Close()

	// 注册是异步的，重复通知直到收到消息
	received := make(chan StatusMessage, 1)
	go func() {
		var msg StatusMessage
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if json.Unmarshal(data, &msg) == nil {
			received <- msg
		}
	}()

	deadline := time.After(3 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case msg := <-received:
			if msg.Type != MessageLedgerChanged || len(msg.Records) != 1 || msg.Records[0] != "logs" {
				t.Errorf("消息内容不正确: %+v", msg)
			}
			return
		case <-ticker.C:
			hub.NotifyLedgerChanged([]string{"logs"})
		case <-deadline:
			t.Fatal("超时未收到广播")
		}
	}
}

func TestStatusHub_NilSafe(t *testing.T) {
	var hub *StatusHub
	hub.NotifyLedgerChanged([]string{"students"})
}

func TestNewUpgrader_CheckOrigin(t *testing.T) {
	up := NewUpgrader([]string{"http://kiosk.local"})

	req := httptest.NewRequest("GET", "/ws/status", nil)
	req.Header.Set("Origin", "http://kiosk.local")
	if !up.CheckOrigin(req) {
		t.Error("允许的来源应通过")
	}
	req.Header.Set("Origin", "http://evil.example")
	if up.CheckOrigin(req) {
		t.Error("未允许的来源应被拒绝")
	}
}
