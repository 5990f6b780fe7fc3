package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
)

// AppError 带 HTTP 状态码的业务错误，处理函数只抛一次，由边界统一翻译
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError 创建业务错误
func NewAppError(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

// pg 唯一约束冲突
const pgUniqueViolation = "23505"

// Translate 把各类失败翻译成 HTTP 状态码和响应消息。
// 消息可能是字符串，也可能是 字段->错误信息 的映射（校验失败时）。
func Translate(path string, err error) (int, interface{}) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return 400, uniqueViolationField(pgErr) + " has to be unique!"
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[lowerFirst(fe.Field())] = fieldMessage(fe)
		}
		return 400, fields
	}

	// 路径参数里的 ID 解析失败
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return 400, fmt.Sprintf("The %s is not found because of wrong ID!", path)
	}

	// 请求体不是合法 JSON
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return 400, err.Error()
	}

	return 500, err.Error()
}

// uniqueViolationField 从 pg 错误里提出冲突字段名。
// Detail 形如 `Key (email)=(a@a.com) already exists.`，拿不到时退回约束名的末段。
func uniqueViolationField(pgErr *pgconn.PgError) string {
	detail := pgErr.Detail
	if start := strings.Index(detail, "Key ("); start >= 0 {
		rest := detail[start+len("Key ("):]
		if end := strings.IndexByte(rest, ')'); end > 0 {
			return rest[:end]
		}
	}

	if idx := strings.LastIndexByte(pgErr.ConstraintName, '_'); idx >= 0 {
		return pgErr.ConstraintName[idx+1:]
	}
	return pgErr.ConstraintName
}

// fieldMessage 按校验标签生成可读的错误信息
func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must be required!", field)
	case "email":
		return "Email must be a valid email address!"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters!", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s!", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s!", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s cannot exceed %s!", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s!", field, strings.Join(strings.Fields(fe.Param()), ", "))
	case "datetime":
		return fmt.Sprintf("Invalid date format. Expected format: %s", "YYYY-MM-DD")
	default:
		return fmt.Sprintf("%s is invalid!", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
