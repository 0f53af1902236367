package router

import (
	"github.com/labstack/echo/v4"

	"devconnect/internal/adapter/api/handler"
	"devconnect/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.GET("", chatHandler.GetUserChats)
	chats.POST("/direct", chatHandler.CreateDirectChat)
	chats.POST("/group", chatHandler.CreateGroupChat)
	chats.POST("/:id/participants", chatHandler.AddParticipants)
	chats.GET("/:id/messages", chatHandler.GetChatMessages)
}
