package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 响应状态文案，与对外 API 契约保持一致
const (
	StatusSuccess = "Successful!"
	StatusFailed  = "Failed!"
)

// Response 统一 API 响应结构
type Response struct {
	StatusText  string      `json:"statusText"`
	Message     interface{} `json:"message,omitempty"` // 字符串或 字段->错误信息 映射
	Data        interface{} `json:"data,omitempty"`
	RedirectURL string      `json:"redirectUrl,omitempty"`
}

// Success 返回 200 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusText: StatusSuccess,
		Data:       data,
	})
}

// Created 返回 201 成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		StatusText: StatusSuccess,
		Data:       data,
	})
}

// SuccessWithMessage 返回成功响应并附带消息
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusText: StatusSuccess,
		Message:    message,
		Data:       data,
	})
}

// Fail 返回错误响应，message 可以是字符串或字段错误映射
func Fail(c *gin.Context, status int, message interface{}) {
	c.JSON(status, Response{
		StatusText: StatusFailed,
		Message:    message,
	})
}
