package constants

const (
	RoleUser  = "ROLE_USER"  // 普通用户
	RoleAdmin = "ROLE_ADMIN" // 管理员
)

const (
	StatusActive  = "ACTIVE"
	StatusBanned  = "BANNED"
	StatusDeleted = "DELETED"
)

const (
	SubjectAccessToken  = "access_token"  // Access Token 的 sub 声明
	SubjectRefreshToken = "refresh_token" // Refresh Token 的 sub 声明
	TokenTypeBearer     = "bearer"
)

const (
	REFRESH_TOKEN_KEY_PREFIX = "refresh_token:" // Redis 中保存最新 Refresh Token ID 的键前缀
	CONTEXT_PRINCIPAL_KEY    = "principal"      // gin.Context 中保存 Principal 的键
)
