package apperrors

import (
	"github.com/gin-gonic/gin"
)

// HandleError отправляет клиенту единый плоский ответ {"error": "..."}.
// Код ошибки уходит только в лог, наружу - сообщение и HTTP-статус.
func HandleError(c *gin.Context, err *AppError) {
	c.JSON(err.HTTPCode, gin.H{"error": err.Message})
}

// HandleAnyError классифицирует произвольную ошибку и отправляет ответ.
func HandleAnyError(c *gin.Context, err error) {
	var appErr *AppError
	if As(err, &appErr) {
		HandleError(c, appErr)
		return
	}
	HandleError(c, InternalError(err))
}
