package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the body of every failed response.
type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func statusForKind(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindGuardViolation:
		return http.StatusConflict
	case errs.KindCapacity:
		return http.StatusUnprocessableEntity
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConcurrencyConflict:
		return http.StatusConflict
	case errs.KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func kindForStatus(status int) errs.Kind {
	switch {
	case status == http.StatusNotFound:
		return errs.KindNotFound
	case status >= 400 && status < 500:
		return errs.KindValidation
	default:
		return errs.KindInternal
	}
}

// errorHandler replaces echo's default handler so that domain errors and
// framework errors share the {kind, message} body. Internal errors are logged
// and their details are not sent to the client.
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			status int
			body   Error
		)

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			body = Error{Kind: kindForStatus(status).String(), Message: http.StatusText(status)}
			if msg, ok := httpErr.Message.(string); ok {
				body.Message = msg
			}
		} else {
			kind := errs.KindOf(err)
			status = statusForKind(kind)
			body = Error{Kind: kind.String(), Message: err.Error()}
			if kind == errs.KindInternal {
				logger.Error("request failed",
					zap.String("method", c.Request().Method),
					zap.String("path", c.Path()),
					zap.Error(err),
				)
				body.Message = "internal error"
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Warn("failed to write error response", zap.Error(writeErr))
		}
	}
}
