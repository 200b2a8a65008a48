package handlers

import (
	"errors"
	"net/http"

	"github.com/damacus/iron-files/internal/validation"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler renders errors as JSON. Validation errors keep their
// issue list; echo errors expose only their message; anything else becomes a
// generic 500.
func NewHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var verr *validation.Error
		if errors.As(err, &verr) {
			writeError(c, log, verr.StatusCode(), verr)
			return
		}

		status := http.StatusInternalServerError
		message := http.StatusText(status)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		} else {
			RequestLogger(c, log).Error("unhandled error", zap.Error(err))
		}

		writeError(c, log, status, ErrorResponse{Error: message})
	}
}

func writeError(c echo.Context, log *zap.Logger, status int, body any) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		RequestLogger(c, log).Warn("write error response", zap.Error(err))
	}
}
