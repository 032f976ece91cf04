// Package middleware provides gin middlewares shared by all routes.
package middleware

import (
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/go-petr/account-engine/pkg/configpkg"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// CreateLogger returns JSON logger for production and colored console logger for development.
func CreateLogger(config configpkg.Config) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var (
		output   io.Writer = os.Stderr
		logLevel           = zerolog.InfoLevel // default to INFO
	)

	log := zerolog.New(output).
		Level(logLevel).
		With().
		Timestamp().
		Logger()

	if config.Environment == "development" {
		log = log.
			Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(zerolog.TraceLevel).
			With().
			Caller().
			Logger()
	}

	return log
}

// RequestLogger puts a request scoped logger into the request context and
// logs every request once it is handled.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.Request.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			c.Request.Header.Set(RequestIDHeader, requestID)
		}

		c.Writer.Header().Set(RequestIDHeader, requestID)

		l := logger.With().Str("request_id", requestID).Logger()

		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		// Process request
		c.Next()

		status := c.Writer.Status()

		var logEvent *zerolog.Event
		if status >= 500 {
			logEvent = l.Error()
		} else {
			logEvent = l.Info()
		}

		logEvent.
			Str("client_ip", c.ClientIP()).
			Str("method", c.Request.Method).
			Int("status_code", status).
			Str("path", c.Request.URL.Path).
			Str("latency", time.Since(start).String()).
			Msg(c.Errors.ByType(gin.ErrorTypePrivate).String())
	}
}
