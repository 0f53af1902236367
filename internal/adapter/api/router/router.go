package router

import (
	"github.com/labstack/echo/v4"

	"devconnect/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupPostRouter(e, authMiddleware)
	SetupJobRouter(e, authMiddleware)
	SetupFileRouter(e, authMiddleware)
	SetupWebSocketRouter(e)
	SetupHealthRouter(e)
}
