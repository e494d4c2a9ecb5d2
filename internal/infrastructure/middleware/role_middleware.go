package middleware

import (
	"reckue_account/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireRoles 角色授权中间件，必须挂在 AuthRequired 之后
// 调用方至少持有 roles 中的一个角色才放行
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(roles) == 0 {
			c.Next()
			return
		}

		principal, ok := GetPrincipal(c)
		if !ok {
			abortWithError(c, errorx.ErrUnauthorized)
			return
		}

		if !principal.HasAnyRole(roles...) {
			zap.L().Warn("insufficient role",
				zap.String("principal", principal.Username),
				zap.Strings("roles", principal.Roles),
				zap.Strings("required", roles),
				zap.String("path", c.Request.URL.Path),
			)
			abortWithError(c, errorx.ErrForbidden)
			return
		}

		c.Next()
	}
}
