// Package testutil 提供测试用的内存实现，替代 MySQL 与 Redis
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"reckue_account/internal/model"
	"reckue_account/pkg/errorx"
)

// UserRepository 内存版用户仓库，按用户名索引
// Create 会执行与 GORM 相同的 Hook，保证密码被加密
type UserRepository struct {
	mu    sync.Mutex
	users map[string]*model.User

	// FailWith 非空时所有方法直接返回该错误
	FailWith error
	// Calls 记录方法调用次数
	Calls map[string]int
}

// NewUserRepository 创建空仓库
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*model.User),
		Calls: make(map[string]int),
	}
}

func (r *UserRepository) record(name string) error {
	r.Calls[name]++
	return r.FailWith
}

// FindByUsername 返回副本，避免调用方修改仓库内部状态
func (r *UserRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("FindByUsername"); err != nil {
		return nil, err
	}
	u, ok := r.users[username]
	if !ok {
		return nil, errorx.Wrapf(errors.New("record not found"), errorx.CodeNotFound, "查询用户 username=%s", username)
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("ExistsByUsernameOrEmail"); err != nil {
		return false, err
	}
	return r.existsLocked(username, email), nil
}

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("Create"); err != nil {
		return err
	}
	if r.existsLocked(user.Username, user.Email) {
		return errorx.Wrap(errors.New("duplicated key not allowed"), errorx.CodeUserExist, "创建用户")
	}
	if err := user.BeforeCreate(nil); err != nil {
		return err
	}
	if err := user.BeforeSave(nil); err != nil {
		return err
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	cp := *user
	r.users[user.Username] = &cp
	return nil
}

func (r *UserRepository) UpdateLastVisit(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("UpdateLastVisit"); err != nil {
		return err
	}
	for _, u := range r.users {
		if u.ID == id {
			t := at
			u.LastVisit = &t
			return nil
		}
	}
	return errorx.Newf(errorx.CodeNotFound, "更新登录时间 id=%s", id)
}

// Put 直接写入记录（测试准备数据用），执行密码加密
func (r *UserRepository) Put(user *model.User) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = user.BeforeCreate(nil)
	_ = user.HashPassword()
	r.users[user.Username] = user
	return user
}

func (r *UserRepository) existsLocked(username, email string) bool {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true
		}
	}
	return false
}

// TokenStore 内存版 Refresh Token 标识存储，忽略过期时间
type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]string

	// FailWith 非空时所有方法直接返回该错误
	FailWith error
}

// NewTokenStore 创建空存储
func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string]string)}
}

func (s *TokenStore) Save(_ context.Context, username, tokenID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.tokens[username] = tokenID
	return nil
}

// Current 返回用户当前保存的标识，仅供断言使用
func (s *TokenStore) Current(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[username]
}

func (s *TokenStore) Rotate(_ context.Context, username, oldID, newID string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return false, s.FailWith
	}
	if s.tokens[username] != oldID {
		return false, nil
	}
	s.tokens[username] = newID
	return true, nil
}

func (s *TokenStore) Ping(context.Context) error {
	return s.FailWith
}
