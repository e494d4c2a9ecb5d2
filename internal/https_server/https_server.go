// Package https_server 负责创建 Gin 引擎并包装为 http.Server
package https_server

import (
	"net/http"
	"time"

	"reckue_account/internal/config"
	"reckue_account/internal/handler"
	"reckue_account/internal/infrastructure/logger"
	"reckue_account/internal/infrastructure/middleware"
	"reckue_account/internal/router"
	"reckue_account/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// NewEngine 创建 Gin 引擎并注册中间件与路由
// 配置顺序：
//  1. 创建 Gin 引擎（空白，不含默认中间件）
//  2. 注册日志和恢复中间件
//  3. 安全响应头与 CORS
//  4. 注册业务路由
func NewEngine(conf *config.Config, handlers *handler.Handlers, tokens middleware.AccessTokenParser) *gin.Engine {
	if conf.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))
	engine.Use(middleware.SecureHeaders(conf.SecurityConfig, !conf.IsRelease()))
	engine.Use(middleware.CORS(conf.CORSConfig))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handler.ErrorResponse{Code: errorx.CodeNotFound, Msg: "route not found"})
	})

	router.NewRouter(handlers, tokens).RegisterRoutes(engine)
	return engine
}

// NewServer 把 Gin 引擎包装为 http.Server，由调用方负责启动与优雅退出
func NewServer(conf *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              conf.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
