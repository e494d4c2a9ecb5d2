// Package handler 提供 HTTP 请求处理器
// 本文件处理账号认证相关的 API 请求
package handler

import (
	"net/http"

	"reckue_account/internal/dto/request"
	"reckue_account/internal/dto/respond"
	"reckue_account/internal/infrastructure/middleware"
	"reckue_account/internal/service"
	"reckue_account/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证请求处理器
// 每个方法只做 绑定参数 → 调用一次 Service → 返回响应
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建认证处理器实例
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 注册
// POST /register
// 请求体: request.RegisterRequest
// 响应: 201 respond.AuthTransfer
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	data, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusCreated, data)
}

// Login 用户名密码登录
// POST /login
// 请求体: request.LoginRequest
// 响应: 202 respond.AuthTransfer
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	data, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusAccepted, data)
}

// CurrentUser 当前登录用户信息
// GET /current_user （需要 ROLE_ADMIN 或 ROLE_USER）
// 响应: 202 respond.UserTransfer
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		HandleError(c, errorx.ErrUnauthorized)
		return
	}

	user, err := h.authSvc.CurrentUser(c.Request.Context(), principal)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusAccepted, respond.NewUserTransfer(user))
}

// RefreshToken 用 Refresh Token 换取新的令牌对
// GET /refresh_token?refresh_token=xxx （需要 ROLE_ADMIN 或 ROLE_USER）
// 响应: 201 respond.AuthTransfer
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var query request.RefreshTokenQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		HandleParamError(c, err)
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		HandleError(c, errorx.ErrUnauthorized)
		return
	}

	data, err := h.authSvc.Refresh(c.Request.Context(), principal.Username, query.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusCreated, data)
}
