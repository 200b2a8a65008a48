package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/damacus/iron-files/internal/services"
	"github.com/damacus/iron-files/internal/utils"
	"github.com/damacus/iron-files/internal/validation"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger returns the logger stored by the request logging middleware,
// or fallback when the route runs without it.
func RequestLogger(c echo.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := c.Get(utils.ContextKeyLogger).(*zap.Logger); ok {
		return l
	}
	return fallback
}

// parseBody decodes the JSON body without a target type and runs schema on
// it. Malformed JSON and schema violations both come back as
// *validation.Error.
func parseBody[T any](c echo.Context, schema validation.Schema[T]) (T, error) {
	var raw any
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		var zero T
		return zero, validation.InvalidBody()
	}
	return validation.Parse(schema, raw)
}

// backendError logs the storage failure with its backend error code and
// returns a generic 500 so nothing from the backend leaks to the client.
func backendError(c echo.Context, log *zap.Logger, op, message string, err error) error {
	RequestLogger(c, log).Error(message,
		zap.String("op", op),
		zap.String("code", services.ErrorCode(err)),
		zap.Error(err),
	)
	return echo.NewHTTPError(http.StatusInternalServerError, message)
}
