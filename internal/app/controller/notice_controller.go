package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/ikkim/catalog-console/internal/app/service"
	"github.com/ikkim/catalog-console/internal/middleware"
	"github.com/ikkim/catalog-console/internal/notify"
	"github.com/ikkim/catalog-console/internal/storage"
)

// NoticeController streams session notices and serves staged previews
type NoticeController struct {
	hub      *notify.Hub
	editor   service.EditorService
	previews *storage.MemoryPreviewStore
	upgrader websocket.Upgrader
}

// NewNoticeController builds the controller. previews may be nil when an
// external preview store is in use.
func NewNoticeController(hub *notify.Hub, editor service.EditorService, previews *storage.MemoryPreviewStore, allowedOrigins []string) *NoticeController {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &NoticeController{
		hub:      hub,
		editor:   editor,
		previews: previews,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins["*"] || origins[origin]
			},
		},
	}
}

// Stream upgrades to a websocket carrying the session's notices
// GET /api/v1/sessions/:id/notices
func (ctrl *NoticeController) Stream(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := c.Param("id")

	if _, err := ctrl.editor.Get(sessionID); err != nil {
		respondError(c, "Notice stream for unknown session", err)
		return
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err)
		return
	}

	client := notify.NewClient(ctrl.hub, conn, sessionID)
	ctrl.hub.Register(client)

	log.Info("Notice stream connected", map[string]interface{}{
		"session_id": sessionID,
	})

	go client.WritePump()
	go client.ReadPump()
}

// Preview serves the bytes of a staged image
// GET /api/v1/previews/:id
func (ctrl *NoticeController) Preview(c *gin.Context) {
	if ctrl.previews == nil {
		c.Status(http.StatusNotFound)
		return
	}
	obj, err := ctrl.previews.Open(c.Param("id"))
	if err != nil {
		respondError(c, "Preview not found", err)
		return
	}
	c.Header("Cache-Control", "private, no-store")
	c.Header("Content-Length", strconv.Itoa(len(obj.Data)))
	c.Data(http.StatusOK, obj.ContentType, obj.Data)
}
