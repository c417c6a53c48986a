package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"studiobook/internal/pkg/logger"
	"studiobook/internal/pkg/response"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id, attaches a request-scoped
// logger to the context and logs one line when the request finishes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)

		l := log.With().Str("request_id", id).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), &l))

		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			ev = l.Error()
		case status >= http.StatusBadRequest:
			ev = l.Warn()
		default:
			ev = l.Info()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("ip", c.ClientIP()).
			Int64("user_id", c.GetInt64("user_id")).
			Msg("HTTP Request")
	}
}

// ErrorLogger logs handler errors and recovers from panics.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.FromContext(c.Request.Context()).Error().
					Str("panic", fmt.Sprint(recovered)).
					Bytes("stack", debug.Stack()).
					Str("path", c.Request.URL.Path).
					Msg("Recovered from panic")
				response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal Server Error")
				c.Abort()
				return
			}

			for _, err := range c.Errors {
				logger.FromContext(c.Request.Context()).Error().
					Err(err.Err).
					Int("status", c.Writer.Status()).
					Str("path", c.Request.URL.Path).
					Msg("Request error")
			}
		}()

		c.Next()
	}
}
