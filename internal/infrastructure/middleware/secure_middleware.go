package middleware

import (
	"reckue_account/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// SecureHeaders 安全响应头与可选的 HTTPS 重定向
// 由 Nginx 终止 TLS 时保持 SSLRedirect 关闭
func SecureHeaders(cfg config.SecurityConfig, isDevelopment bool) gin.HandlerFunc {
	// 在返回函数之前初始化，避免每次请求都重复创建对象
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect:          cfg.SSLRedirect,
		SSLHost:              cfg.SSLHost,
		STSSeconds:           cfg.STSSeconds,
		STSIncludeSubdomains: cfg.STSSeconds > 0,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		ReferrerPolicy:       "no-referrer",
		IsDevelopment:        isDevelopment,
	})

	return func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			// HTTPS 重定向时 secure 已写出响应，也会走到这里
			zap.L().Warn("secure middleware rejected request", zap.Error(err))
			c.Abort()
			return
		}
		c.Next()
	}
}
