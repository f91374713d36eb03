package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// ReadQuery заполняет v из query-параметров независимо от метода запроса.
// Поля, для которых параметр не передан, сохраняют свои значения.
func ReadQuery(c echo.Context, v any) error {
	binder := &echo.DefaultBinder{}
	return binder.BindQueryParams(c, v)
}

// ReadID читает целочисленный параметр пути name
func ReadID(c echo.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}
