package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yeisme/relicvault/pkg/log"
)

// GinLoggerMiddleware 用 zerolog 记录每个请求，级别随响应码升高.
func GinLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()

		var event *zerolog.Event

		logger := log.Logger()

		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		default:
			event = logger.Info()
		}

		event = event.
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("client_ip", c.ClientIP())

		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.String())
		}

		event.Msg("HTTP request")
	}
}
