package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds CORS configuration. A "*" entry in AllowMethods or
// AllowHeaders mirrors whatever the preflight request asks for.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	AllowCredentials bool
}

// CORS returns CORS middleware.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			header := c.Response().Header()
			origin := req.Header.Get(echo.HeaderOrigin)

			header.Add(echo.HeaderVary, echo.HeaderOrigin)

			if !originAllowed(cfg.AllowOrigins, origin) {
				return next(c)
			}

			// Credentials forbid a literal "*", so the origin is echoed back.
			if origin != "" {
				header.Set(echo.HeaderAccessControlAllowOrigin, origin)
			} else if contains(cfg.AllowOrigins, "*") {
				header.Set(echo.HeaderAccessControlAllowOrigin, "*")
			}
			if cfg.AllowCredentials {
				header.Set(echo.HeaderAccessControlAllowCredentials, "true")
			}

			if req.Method != http.MethodOptions {
				return next(c)
			}

			// Preflight
			if methods := resolve(cfg.AllowMethods, req.Header.Get(echo.HeaderAccessControlRequestMethod)); methods != "" {
				header.Set(echo.HeaderAccessControlAllowMethods, methods)
			}
			if headers := resolve(cfg.AllowHeaders, req.Header.Get(echo.HeaderAccessControlRequestHeaders)); headers != "" {
				header.Set(echo.HeaderAccessControlAllowHeaders, headers)
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
}

func originAllowed(allowed []string, origin string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, o := range allowed {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func resolve(allowed []string, requested string) string {
	if contains(allowed, "*") {
		if requested != "" {
			return requested
		}
		return strings.Join([]string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}, ", ")
	}
	return strings.Join(allowed, ", ")
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
