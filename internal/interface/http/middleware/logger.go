package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xiebiao/book-inventory/pkg/tracing"
)

const (
	// RequestIDHeader 请求ID响应头
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey 请求ID在gin.Context中的key
	RequestIDKey = "request_id"

	slowRequestThreshold = 3 * time.Second
)

// Logger 请求日志中间件
// 1. 为每个请求生成唯一的请求ID,写入响应头
// 2. 把带request_id(和trace_id)的logger放入请求context,下游通过zerolog.Ctx(ctx)获取
// 3. 请求结束后记录方法、路径、状态码、耗时、客户端IP
//
// 需要注册在Tracing之后,才能取到trace_id
func Logger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 步骤1: 生成请求ID
		requestID := uuid.New().String()
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		// 步骤2: 请求级logger
		lc := base.With().Str("request_id", requestID)
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			lc = lc.Str("trace_id", traceID)
		}
		l := lc.Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		// 步骤3: 记录请求信息
		status := c.Writer.Status()
		var evt *zerolog.Event
		switch {
		case status >= 500:
			evt = l.Error()
		case status >= 400:
			evt = l.Warn()
		default:
			evt = l.Info()
		}
		if len(c.Errors) > 0 {
			evt = evt.Str("errors", c.Errors.String())
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("request")

		// 慢请求警告
		if latency > slowRequestThreshold {
			l.Warn().
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Dur("latency", latency).
				Msg("slow request")
		}
	}
}
