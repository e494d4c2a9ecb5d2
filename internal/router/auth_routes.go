package router

import (
	"net/http"

	"reckue_account/pkg/constants"
)

// authRoutes 认证相关路由
func (rt *Router) authRoutes() []Route {
	authenticated := []string{constants.RoleAdmin, constants.RoleUser}
	h := rt.handlers.Auth

	return []Route{
		{Method: http.MethodPost, Path: "/register", Handler: h.Register},
		{Method: http.MethodPost, Path: "/login", Handler: h.Login},
		{Method: http.MethodGet, Path: "/current_user", Roles: authenticated, Handler: h.CurrentUser},
		{Method: http.MethodGet, Path: "/refresh_token", Roles: authenticated, Handler: h.RefreshToken},
	}
}
