package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/xiebiao/book-inventory/pkg/response"
)

// Recovery Panic恢复中间件
// 记录panic并返回500,响应体与其他错误一致({"error": "..."})
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		zerolog.Ctx(c.Request.Context()).Error().
			Interface("panic", recovered).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("panic recovered")

		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorBody{
			Error: http.StatusText(http.StatusInternalServerError),
		})
	})
}
