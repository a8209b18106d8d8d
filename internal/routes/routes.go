package routes

import (
	"servihub_backend/internal/handlers"
	"servihub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers) {
	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.AuthHandler.Login)
		}
	}

	SetupAdminRoutes(r, h.AdminHandler)
}

// SetupRouter собирает движок gin с базовыми middleware и маршрутами.
func SetupRouter(h *handlers.AppHandlers) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, h)
	return r
}
