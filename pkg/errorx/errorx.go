package errorx

import (
	"errors"
	"fmt"
	"net/http"
)

// CodeError 带业务错误码的自定义错误
// 实现了 error 接口，支持 %w 包装底层错误，且能被 errors.Is/errors.As 识别
type CodeError struct {
	Code  int    // 业务错误码
	Msg   string // 错误消息
	cause error  // 被包装的底层错误
}

// Error 实现 Go 标准 error 接口
// 当存在底层错误时，返回格式为 "消息: 底层错误"；否则仅返回消息
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap 实现 errors.Unwrap 接口，支持 errors.Is/errors.As 向下追溯
func (e *CodeError) Unwrap() error {
	return e.cause
}

// Is 按业务错误码比较，使预定义实例可直接用于 errors.Is
func (e *CodeError) Is(target error) bool {
	var t *CodeError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New 创建一个新的 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf 创建一个带格式化消息的 CodeError
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap 包装底层错误，添加业务错误码和消息
// 用法: errorx.Wrap(err, CodeNotFound, "user not found")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf 包装底层错误，支持格式化消息
// 用法: errorx.Wrapf(err, CodeNotFound, "user %s not found", username)
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode 从错误中提取业务错误码，如果不是 CodeError 则返回默认码
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy // 默认返回服务繁忙
}

// 业务状态码常量定义
const (
	CodeSuccess             = 1000 // 成功
	CodeInvalidParam        = 1001 // 请求参数错误
	CodeUserExist           = 1002 // 用户已存在
	CodeUserNotExist        = 1003 // 用户不存在
	CodeInvalidCredentials  = 1004 // 用户名或密码错误
	CodeServerBusy          = 1005 // 服务繁忙
	CodeUnauthorized        = 1006 // 未授权/认证失败
	CodeForbidden           = 1007 // 权限不足
	CodeNotFound            = 1008 // 资源不存在
	CodeInvalidRefreshToken = 1009 // Refresh Token 无效或已被轮换
	CodeDBError             = 1010 // 数据库错误
	CodeCacheError          = 1011 // 缓存错误
	CodeUserBanned          = 1012 // 账号不可用
)

// 预定义常用错误实例
// 这些实例既可直接返回，也可用于 errors.Is 比较
var (
	ErrInvalidParam        = New(CodeInvalidParam, "invalid request parameters")
	ErrServerBusy          = New(CodeServerBusy, "server busy")
	ErrUserAlreadyExists   = New(CodeUserExist, "user with this username or email already exists")
	ErrUserNotFound        = New(CodeUserNotExist, "user not found")
	ErrInvalidCredentials  = New(CodeInvalidCredentials, "invalid username or password")
	ErrInvalidRefreshToken = New(CodeInvalidRefreshToken, "refresh token is invalid or expired")
	ErrUnauthorized        = New(CodeUnauthorized, "authentication required")
	ErrForbidden           = New(CodeForbidden, "access denied")
	ErrUserBanned          = New(CodeUserBanned, "account is not active")
)

// HTTPStatus 业务错误码到 HTTP 状态码的映射
// 未登记的错误码一律按服务端错误处理
func HTTPStatus(code int) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodeUserExist:
		return http.StatusConflict
	case CodeUserNotExist, CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidCredentials, CodeUnauthorized, CodeInvalidRefreshToken:
		return http.StatusUnauthorized
	case CodeForbidden, CodeUserBanned:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// IsNotFound 检查错误是否为"未找到"类型
func IsNotFound(err error) bool {
	var codeErr *CodeError
	return errors.As(err, &codeErr) && codeErr.Code == CodeNotFound
}
