package router

import (
	"github.com/labstack/echo/v4"

	"devconnect/internal/adapter/api/handler"
	"devconnect/internal/adapter/api/middleware"
)

func SetupPostRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	postHandler := handler.GetPostHandler()

	e.GET("/v1/posts", postHandler.ListPosts)
	e.GET("/v1/posts/:id", postHandler.GetPost)

	protected := e.Group("/v1/posts")
	protected.Use(authMiddleware.Authenticate)

	protected.POST("", postHandler.CreatePost)
	protected.PUT("/:id", postHandler.UpdatePost)
	protected.DELETE("/:id", postHandler.DeletePost)
	protected.POST("/:id/comments", postHandler.AddComment)
	protected.POST("/:id/like", postHandler.ToggleLike)
}
