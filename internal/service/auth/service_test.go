package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"reckue_account/internal/dto/request"
	"reckue_account/internal/model"
	"reckue_account/internal/testutil"
	"reckue_account/pkg/constants"
	"reckue_account/pkg/errorx"
	"reckue_account/pkg/util/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    *Service
	users  *testutil.UserRepository
	tokens *testutil.TokenStore
	jwt    *jwt.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := testutil.NewUserRepository()
	tokens := testutil.NewTokenStore()
	manager := jwt.NewManager(jwt.Config{
		Secret:             "service-test-secret",
		Issuer:             "reckue_account",
		AccessTokenExpiry:  30 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
	})
	return &fixture{
		svc:    NewAuthService(users, tokens, manager),
		users:  users,
		tokens: tokens,
		jwt:    manager,
	}
}

func (f *fixture) register(t *testing.T, username, password string) string {
	t.Helper()
	out, err := f.svc.Register(context.Background(), request.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: password,
	})
	require.NoError(t, err)
	return out.RefreshToken
}

func TestRegisterIssuesTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.svc.Register(ctx, request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.UserID)
	assert.Equal(t, constants.TokenTypeBearer, out.TokenType)
	assert.Equal(t, int64(1800), out.ExpiresIn)

	access, err := f.jwt.ParseAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", access.Username)
	assert.Equal(t, []string{constants.RoleUser}, access.Roles)

	refresh, err := f.jwt.ParseRefreshToken(out.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, refresh.TokenID, f.tokens.Current("alice"))

	user, err := f.users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", user.Password)
	assert.True(t, user.CheckPassword("secret1"))
	assert.Equal(t, constants.StatusActive, user.Status)
}

func TestRegisterDuplicate(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "secret1")

	_, err := f.svc.Register(context.Background(), request.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret1",
	})
	assert.ErrorIs(t, err, errorx.ErrUserAlreadyExists)

	_, err = f.svc.Register(context.Background(), request.RegisterRequest{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	assert.ErrorIs(t, err, errorx.ErrUserAlreadyExists)
}

func TestRegisterStoreFailure(t *testing.T) {
	f := newFixture(t)
	f.users.FailWith = errorx.Wrap(errors.New("dial tcp"), errorx.CodeDBError, "检查用户名/邮箱占用")

	_, err := f.svc.Register(context.Background(), request.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, errorx.ErrServerBusy)
}

func TestRegisterRejectsPasswordOverBcryptLimit(t *testing.T) {
	f := newFixture(t)

	// 30 个字符但 90 字节，字符数校验能通过
	_, err := f.svc.Register(context.Background(), request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: strings.Repeat("密", 30),
	})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	assert.Zero(t, f.users.Calls["Create"])

	// 恰好 72 字节可以注册
	_, err = f.svc.Register(context.Background(), request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: strings.Repeat("密", 24),
	})
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.register(t, "alice", "secret1")

	out, err := f.svc.Login(ctx, request.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEqual(t, first, out.RefreshToken)

	user, err := f.users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, user.LastVisit)
	assert.Equal(t, user.ID, out.UserID)

	// 最近一次登录的 Refresh Token 生效
	refresh, err := f.jwt.ParseRefreshToken(out.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, refresh.TokenID, f.tokens.Current("alice"))
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "secret1")

	_, err := f.svc.Login(context.Background(), request.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, errorx.ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), request.LoginRequest{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, errorx.ErrInvalidCredentials)
}

func TestLoginBannedUser(t *testing.T) {
	f := newFixture(t)
	f.users.Put(&model.User{
		Username:    "mallory",
		Email:       "mallory@example.com",
		RawPassword: "secret1",
		Status:      constants.StatusBanned,
	})

	_, err := f.svc.Login(context.Background(), request.LoginRequest{Username: "mallory", Password: "secret1"})
	assert.ErrorIs(t, err, errorx.ErrUserBanned)

	// 密码错误时不暴露账号状态
	_, err = f.svc.Login(context.Background(), request.LoginRequest{Username: "mallory", Password: "nope"})
	assert.ErrorIs(t, err, errorx.ErrInvalidCredentials)
}

func TestCurrentUser(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "secret1")

	user, err := f.svc.CurrentUser(context.Background(), model.Principal{Username: "alice", Roles: []string{constants.RoleUser}})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = f.svc.CurrentUser(context.Background(), model.Principal{Username: "ghost"})
	assert.ErrorIs(t, err, errorx.ErrUserNotFound)
}

func TestRefreshRotates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	refreshToken := f.register(t, "alice", "secret1")

	out, err := f.svc.Refresh(ctx, "alice", refreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, refreshToken, out.RefreshToken)

	// 旧令牌只能使用一次
	_, err = f.svc.Refresh(ctx, "alice", refreshToken)
	assert.ErrorIs(t, err, errorx.ErrInvalidRefreshToken)

	// 新令牌可继续使用
	_, err = f.svc.Refresh(ctx, "alice", out.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshSupersededByLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	refreshToken := f.register(t, "alice", "secret1")

	_, err := f.svc.Login(ctx, request.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	_, err = f.svc.Refresh(ctx, "alice", refreshToken)
	assert.ErrorIs(t, err, errorx.ErrInvalidRefreshToken)
}

func TestRefreshRejectsForeignOrMalformedTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	aliceToken := f.register(t, "alice", "secret1")
	f.register(t, "bob", "secret2")

	_, err := f.svc.Refresh(ctx, "bob", aliceToken)
	assert.ErrorIs(t, err, errorx.ErrInvalidRefreshToken)

	_, err = f.svc.Refresh(ctx, "alice", "not-a-jwt")
	assert.ErrorIs(t, err, errorx.ErrInvalidRefreshToken)

	// Access Token 不能当作 Refresh Token 使用
	access, err := f.jwt.GenerateAccessToken("alice", []string{constants.RoleUser})
	require.NoError(t, err)
	_, err = f.svc.Refresh(ctx, "alice", access)
	assert.ErrorIs(t, err, errorx.ErrInvalidRefreshToken)
}

func TestRefreshConcurrentOnlyOneWins(t *testing.T) {
	f := newFixture(t)
	refreshToken := f.register(t, "alice", "secret1")

	const workers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		winners  []string
		rejected int
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			out, err := f.svc.Refresh(context.Background(), "alice", refreshToken)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners = append(winners, out.RefreshToken)
				return
			}
			if errors.Is(err, errorx.ErrInvalidRefreshToken) {
				rejected++
			}
		}()
	}
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, workers-1, rejected)

	// 存储中的标识属于胜出的新令牌
	claims, err := f.jwt.ParseRefreshToken(winners[0])
	require.NoError(t, err)
	assert.Equal(t, claims.TokenID, f.tokens.Current("alice"))
}

func TestRefreshStoreFailure(t *testing.T) {
	f := newFixture(t)
	refreshToken := f.register(t, "alice", "secret1")
	f.tokens.FailWith = errorx.New(errorx.CodeCacheError, "redis down")

	_, err := f.svc.Refresh(context.Background(), "alice", refreshToken)
	assert.ErrorIs(t, err, errorx.ErrServerBusy)
}

func TestEnsureAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.EnsureAdmin(ctx, "root", "root@example.com", "adminpw")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.svc.EnsureAdmin(ctx, "root", "root@example.com", "adminpw")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = f.svc.EnsureAdmin(ctx, "root2", "root2@example.com", strings.Repeat("密", 25))
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	out, err := f.svc.Login(ctx, request.LoginRequest{Username: "root", Password: "adminpw"})
	require.NoError(t, err)
	claims, err := f.jwt.ParseAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Contains(t, claims.Roles, constants.RoleAdmin)
}
