package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"presensia/backend/pkg/realtime"
)

// RealtimeHandler 实时通知 WebSocket 处理器
// 管理端会话加入 admin-room 后即可收到刷卡广播；会话关闭即退出，不持久化
type RealtimeHandler struct {
	hub    *realtime.Hub
	logger *zap.Logger

	upgrader websocket.Upgrader
}

// NewRealtimeHandler 创建 RealtimeHandler
func NewRealtimeHandler(hub *realtime.Hub, logger *zap.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 浏览器跨域由 CORS 中间件统一治理
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// AdminSocket 管理端实时通道
// GET /api/v1/ws/admin
func (h *RealtimeHandler) AdminSocket(c *gin.Context) {
	if _, ok := MustGetUserID(c); !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket 升级失败", zap.Error(err))
		return
	}

	h.hub.Join(realtime.RoomAdmin, conn)
	h.logger.Info("管理端已订阅实时通知",
		zap.Int("room_size", h.hub.RoomSize(realtime.RoomAdmin)))

	// 读循环仅用于感知连接关闭，入站消息一律忽略
	go func() {
		defer func() {
			h.hub.Leave(conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

