package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/user/mediashelf/internal/model"
)

// registerValidations 注册自定义校验规则
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("content_type", func(fl validator.FieldLevel) bool {
			t := fl.Field().String()
			return t == model.ContentTypeMovie || t == model.ContentTypeBook
		})
	}
}
