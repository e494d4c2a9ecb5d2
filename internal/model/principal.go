package model

// Principal 已认证调用方的身份
// 只由认证中间件根据 Access Token 构造，随请求显式传递给 Service
type Principal struct {
	Username string
	Roles    []string
}

// HasAnyRole 是否持有任意一个给定角色
func (p Principal) HasAnyRole(roles ...string) bool {
	for _, have := range p.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
