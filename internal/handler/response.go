package handler

import (
	"errors"
	"net/http"

	"reckue_account/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrorResponse 统一错误响应结构
type ErrorResponse struct {
	Code int `json:"code"` // 业务错误码
	Msg  any `json:"msg"`  // 提示信息，参数校验失败时为 字段 -> 原因
	Data any `json:"data"`
}

// HandleSuccess 返回成功响应，响应体即传输对象本身
func HandleSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// HandleError 通用错误处理方法
// 业务错误按错误码映射 HTTP 状态码；其余错误记录日志后返回 500
//
//	if err := svc.DoSomething(); err != nil {
//	    HandleError(c, err)
//	    return
//	}
func HandleError(c *gin.Context, err error) {
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		status := errorx.HTTPStatus(codeErr.Code)
		if status >= http.StatusInternalServerError {
			// 不把内部错误细节返回给调用方
			_ = c.Error(err)
			codeErr = errorx.ErrServerBusy
		}
		c.JSON(status, ErrorResponse{Code: codeErr.Code, Msg: codeErr.Msg})
		return
	}

	zap.L().Error("system error",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code: errorx.ErrServerBusy.Code,
		Msg:  errorx.ErrServerBusy.Msg,
	})
}

// HandleParamError 处理参数绑定错误（带 validator 翻译支持），固定返回 400
func HandleParamError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code: errorx.ErrInvalidParam.Code,
			Msg:  translate(validationErrs),
		})
		return
	}

	// 非 validator 错误（如 JSON 格式错误）
	zap.L().Debug("param bind error", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code: errorx.ErrInvalidParam.Code,
		Msg:  errorx.ErrInvalidParam.Msg,
	})
}
