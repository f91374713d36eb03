package utils

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

func CORS(allowOrigin string) echo.MiddlewareFunc {
	allowMethods := strings.Join([]string{
		http.MethodGet,
		http.MethodPut,
		http.MethodPost,
		http.MethodDelete,
		http.MethodOptions,
	}, ",")
	allowHeaders := strings.Join([]string{
		echo.HeaderOrigin,
		echo.HeaderAccept,
		echo.HeaderXRequestedWith,
		echo.HeaderContentType,
		echo.HeaderAccessControlRequestMethod,
		echo.HeaderAccessControlRequestHeaders,
	}, ",")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Response().Header()
			header.Set(echo.HeaderAccessControlAllowOrigin, allowOrigin)
			header.Set(echo.HeaderAccessControlAllowMethods, allowMethods)
			header.Set(echo.HeaderAccessControlAllowHeaders, allowHeaders)
			header.Set(echo.HeaderAccessControlMaxAge, "86400")
			return next(ctx)
		}
	}
}
