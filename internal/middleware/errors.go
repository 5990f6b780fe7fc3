package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/user/animew/internal/utils"
)

// ErrorTranslator 统一错误出口。
// 处理函数把错误塞进 c.Errors 后直接返回，由这里翻译成
// {statusText: "Failed!", message} 响应，整条链路只渲染一次。
func ErrorTranslator() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		status, message := utils.Translate(c.Request.URL.Path, last.Err)
		utils.Fail(c, status, message)
	}
}
