// Package web exposes the lobby over HTTP: a websocket endpoint speaking the line protocol
// and a JSON session listing.
package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/heroiclabs/nakama-common/runtime"

	"tchu/internal/app"
	"tchu/internal/ports/lobby"
	"tchu/internal/protocol"
)

const maxNameLength = 32

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Lobby is the part of lobby.Lobby the router needs.
type Lobby interface {
	Join(ctx context.Context, name string, player app.Player) (*lobby.Session, error)
	Sessions() []lobby.SessionInfo
	Waiting() (string, bool)
}

type handler struct {
	lobby  Lobby
	logger runtime.Logger
}

// NewRouter builds the gin engine serving /ws, /sessions and /healthz.
func NewRouter(l Lobby, logger runtime.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	h := &handler{lobby: l, logger: logger}
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/sessions", h.sessions)
	r.GET("/ws", h.play)
	return r
}

func requestLogger(logger runtime.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("Web: %s %s %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (h *handler) sessions(c *gin.Context) {
	waiting, ok := h.lobby.Waiting()
	resp := gin.H{"sessions": h.lobby.Sessions()}
	if ok {
		resp["waiting"] = waiting
	}
	c.JSON(http.StatusOK, resp)
}

// play upgrades to a websocket and seats the caller; each text frame carries one line.
func (h *handler) play(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" || len(name) > maxNameLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must be 1 to 32 characters"})
		return
	}
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Web: websocket upgrade failed: %v", err)
		return
	}
	conn := protocol.NewWebsocketConn(ws)
	defer conn.Close()

	ctx := c.Request.Context()
	session, err := h.lobby.Join(ctx, name, protocol.NewProxy(conn))
	if err != nil {
		h.logger.Warn("Web: %s could not join: %v", name, err)
		return
	}
	h.logger.WithField("session", session.ID).Info("Web: %s seated", name)
	select {
	case <-session.Done():
	case <-ctx.Done():
	}
}
