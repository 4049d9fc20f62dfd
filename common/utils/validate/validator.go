package validate

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// 共享的结构体校验器
var validate = validator.New()

// Struct 按 validate 标签校验请求结构体
func Struct(s interface{}) error {
	return validate.Struct(s)
}

// Var 按标签校验单个值，如 Var(code, "len=6,number")
func Var(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

// FirstError 取第一条校验失败的字段与标签，用于拼装给前端的提示
func FirstError(err error) (field, tag string, ok bool) {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "", "", false
	}
	return errs[0].Field(), errs[0].Tag(), true
}
