package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// RoomAdmin 管理端实时通知房间
const RoomAdmin = "admin-room"

// writeWait 单次写入的最长等待时间，超时的连接按写失败剔除
const writeWait = 5 * time.Second

// Message 推送消息信封
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub 基于房间的 WebSocket 广播中心
//
// 设计说明：
//   - 连接以会话为粒度加入/离开房间，不做持久化
//   - Publish 尽力而为：无订阅者时直接丢弃，写失败或超时仅记日志并剔除该连接
//   - 不做重试、不做排队、不向调用方返回错误
//   - 由 main 构造一次并通过接口注入到业务层，禁止包级单例
type Hub struct {
	mu     sync.Mutex
	rooms  map[string]map[*websocket.Conn]bool
	logger *zap.Logger
}

// NewHub 创建广播中心
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*websocket.Conn]bool),
		logger: logger,
	}
}

// Join 将连接加入指定房间
func (h *Hub) Join(room string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*websocket.Conn]bool)
	}
	h.rooms[room][conn] = true
}

// Leave 将连接从所有房间移除（连接关闭时调用）
func (h *Hub) Leave(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room, conns := range h.rooms {
		if conns[conn] {
			delete(conns, conn)
			if len(conns) == 0 {
				delete(h.rooms, room)
			}
		}
	}
}

// Publish 向房间内所有连接广播事件
// 写入失败的连接被就地剔除；房间为空时事件被丢弃
func (h *Hub) Publish(room, event string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.rooms[room]
	if len(conns) == 0 {
		return
	}

	msg := Message{Event: event, Data: payload}
	for conn := range conns {
		// 慢消费者不允许拖住触发推送的业务请求
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Warn("实时推送失败，移除连接",
				zap.String("room", room),
				zap.String("event", event),
				zap.Error(err),
			)
			delete(conns, conn)
			conn.Close()
		}
	}
	if len(conns) == 0 {
		delete(h.rooms, room)
	}
}

// RoomSize 返回房间当前连接数
func (h *Hub) RoomSize(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}

// Shutdown 关闭所有连接并清空房间（服务器优雅关闭时调用）
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, conns := range h.rooms {
		for conn := range conns {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"))
			conn.Close()
		}
	}
	h.rooms = make(map[string]map[*websocket.Conn]bool)
}

