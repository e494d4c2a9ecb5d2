// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"reckue_account/internal/dao/mysql/repository"
	myredis "reckue_account/internal/dao/redis"
	"reckue_account/internal/service/auth"
	"reckue_account/internal/service/health"
	"reckue_account/pkg/util/jwt"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过此结构访问各个 Service
type Services struct {
	Auth   AuthService
	Health HealthService
}

// NewServices 创建并注入所有 Service 实例
func NewServices(repos *repository.Repositories, tokens myredis.TokenStore, manager *jwt.Manager, checks ...health.Check) *Services {
	return &Services{
		Auth:   auth.NewAuthService(repos.User, tokens, manager),
		Health: health.NewHealthService(checks...),
	}
}
