package repository

import (
	"context"
	"time"

	"reckue_account/internal/model"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户 Repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByUsername 按用户名查找用户
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 username=%s", username)
	}
	return &user, nil
}

// ExistsByUsernameOrEmail 检查用户名或邮箱是否已存在
func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, wrapDBError(err, "检查用户名/邮箱占用")
	}
	return count > 0, nil
}

// Create 创建用户（BeforeSave 中加密密码）
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return wrapDBErrorf(err, "创建用户 username=%s", user.Username)
	}
	return nil
}

// UpdateLastVisit 更新最近登录时间
// 使用 UpdateColumn 跳过 Hook，不会触发密码重新加密
func (r *userRepository) UpdateLastVisit(ctx context.Context, id string, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("last_visit", at).Error
	if err != nil {
		return wrapDBErrorf(err, "更新登录时间 id=%s", id)
	}
	return nil
}
