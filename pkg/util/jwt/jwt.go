package jwt

import (
	"errors"
	"time"

	"reckue_account/pkg/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrWrongSubject 令牌类型与预期不符（例如用 Access Token 刷新）
var ErrWrongSubject = errors.New("token subject mismatch")

// Config JWT 配置
type Config struct {
	Secret             string
	Issuer             string
	AccessTokenExpiry  time.Duration // Access Token 有效期
	RefreshTokenExpiry time.Duration // Refresh Token 有效期
}

// Claims 自定义 JWT 声明
type Claims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`    // 仅 Access Token 使用
	TokenID  string   `json:"token_id,omitempty"` // 仅 Refresh Token 使用，用于轮换校验
	jwt.RegisteredClaims
}

// Manager 负责签发和解析令牌
// 无可变状态，可在多个 goroutine 间共享
type Manager struct {
	cfg Config
	now func() time.Time
}

// NewManager 创建令牌管理器
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg, now: time.Now}
}

// AccessTokenExpiry 返回 Access Token 有效期，用于响应中的 expiresIn
func (m *Manager) AccessTokenExpiry() time.Duration {
	return m.cfg.AccessTokenExpiry
}

// RefreshTokenExpiry 返回 Refresh Token 有效期，用于 Redis TTL
func (m *Manager) RefreshTokenExpiry() time.Duration {
	return m.cfg.RefreshTokenExpiry
}

// GenerateAccessToken 生成 Access Token (短期，用于接口认证)
func (m *Manager) GenerateAccessToken(username string, roles []string) (string, error) {
	now := m.now()
	claims := Claims{
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.cfg.Issuer,
			Subject:   constants.SubjectAccessToken,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.Secret))
}

// GenerateRefreshToken 生成 Refresh Token (长期，用于换取新的令牌对)
// 返回 token 字符串和 tokenID (存入 Redis，用于轮换校验)
func (m *Manager) GenerateRefreshToken(username string) (tokenString string, tokenID string, err error) {
	now := m.now()
	tokenID = uuid.NewString()
	claims := Claims{
		Username: username,
		TokenID:  tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.RefreshTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.cfg.Issuer,
			Subject:   constants.SubjectRefreshToken,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(m.cfg.Secret))
	return
}

// ParseToken 解析并验证 Token（签名、过期时间、签发方）
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(m.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}

// ParseAccessToken 解析 Token 并要求其为 Access Token
func (m *Manager) ParseAccessToken(tokenString string) (*Claims, error) {
	return m.parseWithSubject(tokenString, constants.SubjectAccessToken)
}

// ParseRefreshToken 解析 Token 并要求其为 Refresh Token
func (m *Manager) ParseRefreshToken(tokenString string) (*Claims, error) {
	return m.parseWithSubject(tokenString, constants.SubjectRefreshToken)
}

func (m *Manager) parseWithSubject(tokenString, subject string) (*Claims, error) {
	claims, err := m.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Subject != subject {
		return nil, ErrWrongSubject
	}
	return claims, nil
}
