// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
package repository

import (
	"context"
	"time"

	"reckue_account/internal/model"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUsername 根据用户名查找用户，不存在返回 CodeNotFound
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// ExistsByUsernameOrEmail 用户名或邮箱是否已被占用
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// Create 创建新用户，唯一索引冲突返回 CodeUserExist
	Create(ctx context.Context, user *model.User) error
	// UpdateLastVisit 更新最近登录时间
	UpdateLastVisit(ctx context.Context, id string, at time.Time) error
}

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	User UserRepository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User: NewUserRepository(db),
	}
}
