package respond

import (
	"time"

	"reckue_account/internal/model"
)

// UserTransfer 用户信息的对外视图，不含密码哈希
type UserTransfer struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Status    string     `json:"status"`
	Roles     []string   `json:"roles"`
	LastVisit *time.Time `json:"lastVisit,omitempty"`
	Created   time.Time  `json:"created"`
	Updated   time.Time  `json:"updated"`
}

// NewUserTransfer 把内部用户记录投影为 UserTransfer
// 新增字段必须在这里显式列出，未列出的字段不会出现在响应中
func NewUserTransfer(u *model.User) *UserTransfer {
	if u == nil {
		return nil
	}
	roles := make([]string, len(u.Roles))
	copy(roles, u.Roles)
	return &UserTransfer{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Status:    u.Status,
		Roles:     roles,
		LastVisit: u.LastVisit,
		Created:   u.CreatedAt,
		Updated:   u.UpdatedAt,
	}
}
