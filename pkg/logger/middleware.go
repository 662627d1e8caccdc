package logger

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger registra método, caminho, status e latência de cada requisição
func RequestLogger(log Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		kv := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			kv = append(kv, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("Requisição com erro", kv...)
		case status >= 400:
			log.Warn("Requisição rejeitada", kv...)
		default:
			log.Info("Requisição atendida", kv...)
		}
	}
}
