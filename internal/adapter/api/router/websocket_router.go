package router

import (
	"github.com/labstack/echo/v4"

	"devconnect/internal/adapter/api/handler"
)

// SetupWebSocketRouter registers the socket endpoint. Authentication happens
// inside the handler before the upgrade, so no middleware here.
func SetupWebSocketRouter(e *echo.Echo) {
	wsHandler := handler.GetWebSocketHandler()

	e.GET("/ws", wsHandler.HandleWebSocket)
}
