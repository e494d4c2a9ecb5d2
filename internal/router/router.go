// Package router 提供 HTTP 路由注册
// 路由以数据形式声明，所需角色是路由表的一部分
package router

import (
	"net/http"

	"reckue_account/internal/handler"
	"reckue_account/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// Route 一条路由声明
// Roles 非空时自动挂载 AuthRequired 与 RequireRoles(Roles...)
type Route struct {
	Method  string
	Path    string
	Roles   []string
	Handler gin.HandlerFunc
}

// Router 路由管理器
type Router struct {
	handlers *handler.Handlers
	tokens   middleware.AccessTokenParser
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers, tokens middleware.AccessTokenParser) *Router {
	return &Router{handlers: handlers, tokens: tokens}
}

// Routes 返回完整路由表
func (rt *Router) Routes() []Route {
	routes := rt.authRoutes()
	routes = append(routes, Route{Method: http.MethodGet, Path: "/health", Handler: rt.handlers.Health.Health})
	return routes
}

// RegisterRoutes 把路由表注册到 gin 引擎
func (rt *Router) RegisterRoutes(r gin.IRoutes) {
	for _, route := range rt.Routes() {
		r.Handle(route.Method, route.Path, rt.chain(route)...)
	}
}

// chain 组装单条路由的处理链
func (rt *Router) chain(route Route) []gin.HandlerFunc {
	if len(route.Roles) == 0 {
		return []gin.HandlerFunc{route.Handler}
	}
	return []gin.HandlerFunc{
		middleware.AuthRequired(rt.tokens),
		middleware.RequireRoles(route.Roles...),
		route.Handler,
	}
}
