package http

import (
	"errors"
	"net/http"

	applogger "RetailPrice/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DetailResponse writes {"detail": ...} with the given status.
func DetailResponse(c echo.Context, statusCode int, detail interface{}) error {
	return c.JSON(statusCode, DetailBody{Detail: detail})
}

// SuccessResponse writes data as-is with 200.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// InternalServerErrorResponse writes internal server error.
func InternalServerErrorResponse(c echo.Context, message string) error {
	if message == "" {
		message = http.StatusText(http.StatusInternalServerError)
	}
	return DetailResponse(c, http.StatusInternalServerError, message)
}

// AppErrorResponse writes application error response.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if len(appErr.Details) > 0 {
			return DetailResponse(c, appErr.Status, appErr.Details)
		}
		return DetailResponse(c, appErr.Status, appErr.Message)
	}
	return InternalServerErrorResponse(c, "")
}

// ErrorHandler renders errors that escape handlers (unknown routes, wrong methods,
// AppError returns) in the same {"detail": ...} envelope.
func ErrorHandler(l *applogger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		var werr error
		switch {
		case errors.As(err, &he):
			msg := http.StatusText(he.Code)
			if s, ok := he.Message.(string); ok && s != "" {
				msg = s
			}
			werr = DetailResponse(c, he.Code, msg)
		default:
			werr = AppErrorResponse(c, err)
		}
		if werr != nil && l != nil {
			l.Error("write error response", applogger.Error(werr))
		}
	}
}
