package handlers

import (
	"net/http"

	"servihub_backend/internal/apperrors"
	"servihub_backend/internal/config"
	"servihub_backend/internal/services"
	"servihub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
	}
}

// GetStats - сводка платформы: счетчики и месячная выручка.
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.PlatformStats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetUsers - пагинированный список пользователей, новые первыми.
// limit зажимается сверху конфигом; отрицательные limit/offset - 400.
func (h *AdminHandler) GetUsers(c *gin.Context) {
	cfg := config.GetConfig()

	limit := ParseQueryInt(c, "limit", cfg.Admin.DefaultListLimit)
	offset := ParseQueryInt(c, "offset", 0)
	if limit < 0 || offset < 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("limit and offset must be non-negative"))
		return
	}
	if limit > cfg.Admin.MaxListLimit {
		limit = cfg.Admin.MaxListLimit
	}

	users, err := h.adminService.ListUsers(limit, offset, c.Query("search"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// BanUser - перманентный бан пользователя с записью в аудит.
func (h *AdminHandler) BanUser(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	userID := c.Param("id")

	// Тело с причиной опционально
	var req dto.BanRequest
	if c.Request.ContentLength > 0 {
		if !h.BindAndValidateJSON(c, &req) {
			return
		}
	}

	if err := h.adminService.BanUser(adminID, userID, req.Reason); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User banned successfully"})
}

// GetVerifications - заявки на верификацию в статусе pending, старые первыми.
func (h *AdminHandler) GetVerifications(c *gin.Context) {
	verifications, err := h.adminService.PendingVerifications()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"verifications": verifications})
}

// ApproveVerification - одобрение заявки и пометка профиля как verified.
func (h *AdminHandler) ApproveVerification(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.adminService.ApproveVerification(adminID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification approved successfully"})
}

// RejectVerification - отклонение заявки. Профиль не трогаем.
func (h *AdminHandler) RejectVerification(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RejectVerificationRequest
	if c.Request.ContentLength > 0 {
		if !h.BindAndValidateJSON(c, &req) {
			return
		}
	}

	if err := h.adminService.RejectVerification(adminID, c.Param("id"), req.Reason); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification rejected successfully"})
}
