package router

import (
	"github.com/labstack/echo/v4"

	"devconnect/internal/adapter/api/handler"
	"devconnect/internal/adapter/api/middleware"
)

func SetupJobRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	jobHandler := handler.GetJobHandler()

	e.GET("/v1/jobs", jobHandler.ListJobs)
	e.GET("/v1/jobs/:id", jobHandler.GetJob)

	protected := e.Group("/v1/jobs")
	protected.Use(authMiddleware.Authenticate)

	protected.POST("", jobHandler.CreateJob)
	protected.GET("/my-jobs", jobHandler.ListMyJobs)
}
