package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Message, "title": "validation error"})
			return
		}

		var ae *Error
		if errors.As(err, &ae) {
			status := StatusFor(ae.Kind)
			if status >= http.StatusInternalServerError {
				slog.Error("Upstream operation failed", "kind", ae.Kind, "op", ae.Op, "status", ae.Status, "error", err)
			}
			_ = c.JSON(status, map[string]string{"error": ae.Error(), "kind": string(ae.Kind)})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// StatusFor maps an error kind to the HTTP status reported by the API.
func StatusFor(kind Kind) int {
	switch {
	case kind == KindInvalidArgument:
		return http.StatusBadRequest
	case kind == KindNotAuthenticated:
		return http.StatusUnauthorized
	case kind == KindTransportFailure:
		return http.StatusGatewayTimeout
	case kind.Upstream(), kind == KindResponseMalformed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
