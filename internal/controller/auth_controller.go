package controller

import (
	"errors"
	"net/http"

	"wikiquiz_backend/internal/service"
	"wikiquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login 口令登录
// @Summary 登录
// @Description 校验共享口令, 返回Bearer令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "口令"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.authService.Login(req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidPassword) {
			util.Fail(ctx, http.StatusUnauthorized, util.CodeUnauthorized, "口令错误")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

// Logout 登出
// JWT无服务端状态, 仅作为客户端丢弃令牌的确认
// @Summary 登出
// @Tags 认证
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	util.Success(ctx, gin.H{"message": "logged out"})
}

// Me 返回当前认证状态
// @Summary 认证状态
// @Tags 认证
// @Produce json
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	claims := util.GetClaimsFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{"authenticated": claims.Authenticated})
}
