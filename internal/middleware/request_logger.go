package middleware

import (
	"time"

	"github.com/damacus/iron-files/internal/utils"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request and stores a logger carrying the
// request id on the context for handlers.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	attach := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqLog := log
			if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
				reqLog = log.With(zap.String("request_id", id))
			}
			c.Set(utils.ContextKeyLogger, reqLog)
			return next(c)
		}
	}

	logRequest := echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency.Round(time.Microsecond)),
				zap.String("request_id", v.RequestID),
			}
			if v.Status >= 500 {
				log.Error("request", fields...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return logRequest(attach(next))
	}
}
