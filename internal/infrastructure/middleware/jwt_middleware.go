// Package middleware 提供认证、授权、安全响应头等 Gin 中间件
package middleware

import (
	"strings"

	"reckue_account/internal/model"
	"reckue_account/pkg/constants"
	"reckue_account/pkg/errorx"
	"reckue_account/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessTokenParser 解析 Access Token，*jwt.Manager 实现该接口
type AccessTokenParser interface {
	ParseAccessToken(tokenString string) (*jwt.Claims, error)
}

// AuthRequired JWT 认证中间件
// 验证 Authorization: Bearer <access token>，并把 Principal 存入上下文
// 任何失败都返回 401，后续 Handler 不会执行
func AuthRequired(tokens AccessTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从 Header 获取 Token
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, errorx.New(errorx.CodeUnauthorized, "authorization header is required"))
			return
		}

		// 2. 解析 Bearer Token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abortWithError(c, errorx.New(errorx.CodeUnauthorized, "authorization header must be Bearer <token>"))
			return
		}

		// 3. 验证签名、过期时间、签发方，并要求是 Access Token
		claims, err := tokens.ParseAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			zap.L().Debug("access token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			abortWithError(c, errorx.New(errorx.CodeUnauthorized, "access token is invalid or expired"))
			return
		}

		// 4. 把调用方身份存入上下文，供后续中间件和 Handler 使用
		c.Set(constants.CONTEXT_PRINCIPAL_KEY, model.Principal{
			Username: claims.Username,
			Roles:    claims.Roles,
		})
		c.Next()
	}
}

// GetPrincipal 取出 AuthRequired 写入的调用方身份
func GetPrincipal(c *gin.Context) (model.Principal, bool) {
	v, ok := c.Get(constants.CONTEXT_PRINCIPAL_KEY)
	if !ok {
		return model.Principal{}, false
	}
	p, ok := v.(model.Principal)
	return p, ok
}

// abortWithError 以统一的错误结构终止请求
func abortWithError(c *gin.Context, err *errorx.CodeError) {
	c.AbortWithStatusJSON(errorx.HTTPStatus(err.Code), gin.H{
		"code": err.Code,
		"msg":  err.Msg,
		"data": nil,
	})
}
