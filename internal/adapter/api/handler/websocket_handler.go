package handler

import (
	"net/http"
	"strings"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"devconnect/internal/adapter/api/middleware"
	"devconnect/internal/domain/repository"
	ws "devconnect/internal/infrastructure/websocket"
	"devconnect/pkg/logger"
)

type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
	userRepo       repository.UserRepository
	upgrader       gorillaws.Upgrader
}

var wsHandler *WebSocketHandler

func NewWebSocketHandler(wsManager *ws.Manager, authMiddleware *middleware.AuthMiddleware, userRepo repository.UserRepository, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		userRepo:       userRepo,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func SetupWebSocketHandler(wsManager *ws.Manager, authMiddleware *middleware.AuthMiddleware, userRepo repository.UserRepository, allowedOrigins []string) {
	wsHandler = NewWebSocketHandler(wsManager, authMiddleware, userRepo, allowedOrigins)
}

// originChecker allows any origin when the list is empty, which keeps local
// development working without configuration.
func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowedOrigins) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		for _, allowed := range allowedOrigins {
			if strings.EqualFold(origin, allowed) {
				return true
			}
		}
		return false
	}
}

func GetWebSocketHandler() *WebSocketHandler {
	return wsHandler
}

// HandleWebSocket authenticates the connection before upgrading; a request
// without a verifiable token never becomes a socket.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		authHeader := c.Request().Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			token = parts[1]
		}
	}
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication token required")
	}

	uid, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}

	user, err := h.userRepo.GetByID(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unknown user")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed for %s: %v", uid, err)
		return err
	}

	client := &ws.Client{
		UserID:   user.ID,
		Username: user.Username,
		Conn:     conn,
		Send:     make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
