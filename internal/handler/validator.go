package handler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// Trans 全局翻译器，未初始化时校验错误不做翻译
var Trans ut.Translator

// InitTrans 初始化 gin 校验器的翻译器
// locale 为 "zh" 或 "en"，其他值按英文处理
func InitTrans(locale string) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	// 错误信息使用 json/form tag 作为字段名，与调用方传参保持一致
	v.RegisterTagNameFunc(fieldName)

	enT := en.New()
	uni := ut.New(enT, zh.New(), enT)
	trans, ok := uni.GetTranslator(locale)
	if !ok {
		return fmt.Errorf("uni.GetTranslator(%s) failed", locale)
	}

	var err error
	switch locale {
	case "zh":
		err = zh_translations.RegisterDefaultTranslations(v, trans)
	default:
		err = en_translations.RegisterDefaultTranslations(v, trans)
	}
	if err != nil {
		return err
	}
	Trans = trans
	return nil
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// translate 翻译校验错误，并去除结构体名前缀（RegisterRequest.password -> password）
func translate(errs validator.ValidationErrors) map[string]string {
	res := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := fe.Namespace()
		field = field[strings.Index(field, ".")+1:]
		if Trans != nil {
			res[field] = fe.Translate(Trans)
		} else {
			res[field] = fe.Error()
		}
	}
	return res
}
