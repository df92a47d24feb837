package util

import (
	"net/http"

	"wikiquiz_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code      int         `json:"code"`
	ErrorCode string      `json:"errorCode,omitempty"` // 机器可读错误码, 如 SESSION_NOT_FOUND
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

// Fail 带错误码的错误响应
func Fail(c *gin.Context, status int, errorCode, message string) {
	c.JSON(status, Response{
		Code:      status,
		ErrorCode: errorCode,
		Message:   message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, CodeInvalidRequest, message)
}

func Unauthorized(c *gin.Context) {
	Fail(c, http.StatusUnauthorized, CodeUnauthorized, "Unauthorized")
}

func InternalServerError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, CodeInternalError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}
