// Package auth 提供账号认证相关的业务逻辑
// 处理注册、登录、令牌签发与轮换
package auth

import (
	"context"
	"time"

	"reckue_account/internal/dao/mysql/repository"
	myredis "reckue_account/internal/dao/redis"
	"reckue_account/internal/dto/request"
	"reckue_account/internal/dto/respond"
	"reckue_account/internal/model"
	"reckue_account/pkg/constants"
	"reckue_account/pkg/errorx"
	"reckue_account/pkg/util/jwt"

	"go.uber.org/zap"
)

// Service 认证服务实现
// 通过构造函数注入依赖，不使用全局变量
type Service struct {
	users  repository.UserRepository
	tokens myredis.TokenStore // Refresh Token 标识存储（依赖倒置）
	jwt    *jwt.Manager
	now    func() time.Time
}

// NewAuthService 创建认证服务实例
func NewAuthService(users repository.UserRepository, tokens myredis.TokenStore, manager *jwt.Manager) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		jwt:    manager,
		now:    time.Now,
	}
}

// Register 注册新账号并签发令牌对
func (s *Service) Register(ctx context.Context, req request.RegisterRequest) (*respond.AuthTransfer, error) {
	if err := checkPasswordLength(req.Password); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		zap.L().Error("检查用户名/邮箱失败", zap.String("username", req.Username), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if exists {
		return nil, errorx.ErrUserAlreadyExists
	}

	user := &model.User{
		Username:    req.Username,
		Email:       req.Email,
		RawPassword: req.Password,
		Status:      constants.StatusActive,
		Roles:       []string{constants.RoleUser},
	}
	if err := s.users.Create(ctx, user); err != nil {
		// 并发注册时由唯一索引兜底
		if errorx.GetCode(err) == errorx.CodeUserExist {
			return nil, errorx.ErrUserAlreadyExists
		}
		zap.L().Error("创建用户失败", zap.String("username", req.Username), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	zap.L().Info("user registered", zap.String("username", user.Username), zap.String("id", user.ID))
	return s.issueTokens(ctx, user)
}

// Login 校验用户名密码并签发新的令牌对
// 用户不存在与密码错误返回同一个错误，不暴露账号是否存在
func (s *Service) Login(ctx context.Context, req request.LoginRequest) (*respond.AuthTransfer, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.ErrInvalidCredentials
		}
		zap.L().Error("查询用户失败", zap.String("username", req.Username), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, errorx.ErrUserBanned
	}

	// 覆盖已保存的 Refresh Token 标识，之前签发的 Refresh Token 随之失效
	transfer, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastVisit(ctx, user.ID, s.now()); err != nil {
		// 不阻塞登录流程，仅记录日志
		zap.L().Warn("更新登录时间失败", zap.String("username", user.Username), zap.Error(err))
	}
	return transfer, nil
}

// CurrentUser 返回当前调用方的账号记录
// 调用方负责投影为 UserTransfer，不能直接序列化 model.User
func (s *Service) CurrentUser(ctx context.Context, principal model.Principal) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, principal.Username)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.ErrUserNotFound
		}
		zap.L().Error("查询当前用户失败", zap.String("username", principal.Username), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return user, nil
}

// Refresh 用 Refresh Token 换取新的令牌对
// 令牌必须属于 username，且其标识与存储中的当前标识一致；成功后旧令牌立即失效
func (s *Service) Refresh(ctx context.Context, username, refreshToken string) (*respond.AuthTransfer, error) {
	claims, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		zap.L().Info("refresh token rejected", zap.String("username", username), zap.Error(err))
		return nil, errorx.ErrInvalidRefreshToken
	}
	if claims.Username != username || claims.TokenID == "" {
		zap.L().Warn("refresh token owner mismatch",
			zap.String("username", username),
			zap.String("token_owner", claims.Username),
		)
		return nil, errorx.ErrInvalidRefreshToken
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.ErrInvalidRefreshToken
		}
		zap.L().Error("查询用户失败", zap.String("username", username), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !user.IsActive() {
		return nil, errorx.ErrUserBanned
	}

	accessToken, err := s.jwt.GenerateAccessToken(user.Username, user.Roles)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	newRefresh, newID, err := s.jwt.GenerateRefreshToken(user.Username)
	if err != nil {
		zap.L().Error("生成 Refresh Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rotated, err := s.tokens.Rotate(ctx, user.Username, claims.TokenID, newID, s.jwt.RefreshTokenExpiry())
	if err != nil {
		zap.L().Error("轮换 Refresh Token 失败", zap.String("username", username), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !rotated {
		// 已被使用过、已被新登录覆盖或已过期
		zap.L().Info("stale refresh token", zap.String("username", username))
		return nil, errorx.ErrInvalidRefreshToken
	}

	return s.transfer(user, accessToken, newRefresh), nil
}

// EnsureAdmin 账号不存在时创建管理员，返回是否新建
func (s *Service) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	if err := checkPasswordLength(password); err != nil {
		return false, err
	}
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	admin := &model.User{
		Username:    username,
		Email:       email,
		RawPassword: password,
		Status:      constants.StatusActive,
		Roles:       []string{constants.RoleAdmin, constants.RoleUser},
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if errorx.GetCode(err) == errorx.CodeUserExist {
			return false, nil
		}
		return false, err
	}
	zap.L().Info("admin account created", zap.String("username", username))
	return true, nil
}

// checkPasswordLength 校验器按字符计数，多字节密码需要再按字节检查
func checkPasswordLength(password string) error {
	if len(password) > model.MaxPasswordBytes {
		return errorx.Newf(errorx.CodeInvalidParam, "password must not exceed %d bytes", model.MaxPasswordBytes)
	}
	return nil
}

// issueTokens 签发令牌对，并把 Refresh Token 标识写入存储
func (s *Service) issueTokens(ctx context.Context, user *model.User) (*respond.AuthTransfer, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user.Username, user.Roles)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := s.jwt.GenerateRefreshToken(user.Username)
	if err != nil {
		zap.L().Error("生成 Refresh Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	if err := s.tokens.Save(ctx, user.Username, tokenID, s.jwt.RefreshTokenExpiry()); err != nil {
		zap.L().Error("存储 Refresh Token ID 失败", zap.String("username", user.Username), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return s.transfer(user, accessToken, refreshToken), nil
}

func (s *Service) transfer(user *model.User, accessToken, refreshToken string) *respond.AuthTransfer {
	return &respond.AuthTransfer{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    constants.TokenTypeBearer,
		ExpiresIn:    int64(s.jwt.AccessTokenExpiry() / time.Second),
	}
}
