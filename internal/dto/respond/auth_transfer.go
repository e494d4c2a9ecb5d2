// Package respond 定义对外返回的传输对象
package respond

// AuthTransfer 注册、登录、刷新令牌的响应
type AuthTransfer struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"` // Access Token 剩余秒数
}
