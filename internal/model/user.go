// Package model 定义数据库实体模型与请求级身份
package model

import (
	"time"

	"reckue_account/pkg/constants"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt" // 密码哈希库
	"gorm.io/gorm"
)

// User 账号模型，对应数据库 users 表
// 这是内部记录，包含密码哈希，绝不能直接作为响应返回
type User struct {
	// ID 用户唯一标识（UUID 字符串）
	ID string `gorm:"column:id;primaryKey;type:char(36);comment:用户唯一id"`

	Username string `gorm:"column:username;uniqueIndex;type:varchar(50);not null;comment:用户名"`
	Email    string `gorm:"column:email;uniqueIndex;type:varchar(255);not null;comment:邮箱"`

	// Password 存储 bcrypt 哈希，不存储明文
	Password string `gorm:"column:password;type:varchar(100);not null;comment:密码哈希"`

	// Status 账号状态：ACTIVE / BANNED / DELETED
	Status string `gorm:"column:status;type:varchar(16);index;not null;comment:状态"`

	// Roles 角色列表，以 JSON 数组存储，如 ["ROLE_USER"]
	Roles []string `gorm:"column:roles;type:varchar(255);serializer:json;not null;comment:角色"`

	LastVisit *time.Time `gorm:"column:last_visit;comment:最近登录时间"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	// RawPassword 明文密码（不存入数据库），在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

// MaxPasswordBytes bcrypt 只接受不超过 72 字节的密码
const MaxPasswordBytes = 72

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// BeforeCreate GORM Hook：补齐主键、默认状态和默认角色
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Status == "" {
		u.Status = constants.StatusActive
	}
	if len(u.Roles) == 0 {
		u.Roles = []string{constants.RoleUser}
	}
	return nil
}

// BeforeSave GORM Hook：在创建和更新前把 RawPassword 加密后存入 Password
func (u *User) BeforeSave(tx *gorm.DB) error {
	return u.HashPassword()
}

// HashPassword 若设置了明文密码，则生成 bcrypt 哈希并清空明文
func (u *User) HashPassword() error {
	if u.RawPassword == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	u.RawPassword = ""
	return nil
}

// CheckPassword 校验密码是否正确
func (u *User) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext)) == nil
}

// IsActive 账号是否可以登录
func (u *User) IsActive() bool {
	return u.Status == constants.StatusActive
}
