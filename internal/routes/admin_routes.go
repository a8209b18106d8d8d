package routes

import (
	"servihub_backend/internal/handlers"
	"servihub_backend/internal/middleware"
	"servihub_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes - админская часть API. Все маршруты требуют JWT
// и роль admin, проверка выполняется до обработчика.
func SetupAdminRoutes(r *gin.Engine, h *handlers.AdminHandler) {
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/stats", h.GetStats)
		admin.GET("/users", h.GetUsers)
		admin.PUT("/users/:id/ban", h.BanUser)
		admin.GET("/verifications", h.GetVerifications)
		admin.PUT("/verifications/:id/approve", h.ApproveVerification)
		admin.PUT("/verifications/:id/reject", h.RejectVerification)
	}
}
