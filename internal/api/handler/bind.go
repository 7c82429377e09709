package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/3Xbang/project/internal/api/middleware"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
	"github.com/3Xbang/project/pkg/response"
)

func init() {
	// 校验错误使用 json / form 标签中的字段名，与请求体保持一致
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	}
}

// bindJSON 绑定请求体，失败时写入错误响应
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Fail(c, bindError(err))
		return false
	}
	return true
}

// bindQuery 绑定查询参数，失败时写入错误响应
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.Fail(c, bindError(err))
		return false
	}
	return true
}

// bindError 将绑定错误转换为 AppError
func bindError(err error) *pkgerrors.AppError {
	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
		timeErr   *time.ParseError
		sizeErr   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &sizeErr):
		return middleware.ErrBodyTooLarge
	case errors.As(err, &verrs) && len(verrs) > 0:
		fe := verrs[0]
		return pkgerrors.Validation(fe.Field(), validationMessage(fe))
	case errors.As(err, &typeErr):
		return pkgerrors.Validation(typeErr.Field, "字段类型不正确")
	case errors.As(err, &timeErr):
		return pkgerrors.Validation("", "日期格式不正确，应为 RFC3339")
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF):
		return pkgerrors.Validation("", "请求体不是合法的 JSON")
	default:
		return pkgerrors.Validation("", "参数校验失败")
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " 不能为空"
	case "email":
		return "邮箱格式不正确"
	case "uuid":
		return fe.Field() + " 必须是合法的 ID"
	case "oneof":
		return fe.Field() + " 必须是以下之一: " + fe.Param()
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fe.Field() + " 长度不能少于 " + fe.Param()
		}
		return fe.Field() + " 不能小于 " + fe.Param()
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fe.Field() + " 长度不能超过 " + fe.Param()
		}
		return fe.Field() + " 不能大于 " + fe.Param()
	default:
		return fe.Field() + " 不合法"
	}
}
