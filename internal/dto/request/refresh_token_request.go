package request

// RefreshTokenQuery 刷新令牌的查询参数
// GET /refresh_token?refresh_token=xxx
type RefreshTokenQuery struct {
	RefreshToken string `form:"refresh_token" json:"refresh_token" binding:"required"`
}
