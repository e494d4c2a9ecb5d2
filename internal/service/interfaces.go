// Package service 定义业务层接口
// Handler 层只依赖这里的接口，便于测试和解耦
package service

import (
	"context"

	"reckue_account/internal/dto/request"
	"reckue_account/internal/dto/respond"
	"reckue_account/internal/model"
	"reckue_account/internal/service/health"
)

// AuthService 账号认证业务接口
type AuthService interface {
	// Register 注册并签发令牌对
	Register(ctx context.Context, req request.RegisterRequest) (*respond.AuthTransfer, error)
	// Login 用户名密码登录
	Login(ctx context.Context, req request.LoginRequest) (*respond.AuthTransfer, error)
	// CurrentUser 当前调用方的账号记录
	CurrentUser(ctx context.Context, principal model.Principal) (*model.User, error)
	// Refresh 用 Refresh Token 换取新的令牌对
	Refresh(ctx context.Context, username, refreshToken string) (*respond.AuthTransfer, error)
}

// HealthService 依赖组件健康检查
type HealthService interface {
	Check(ctx context.Context) health.Report
}
