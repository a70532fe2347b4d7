package utils

import "github.com/labstack/echo/v4"

// ReadQuery заполняет поля с тегом query из строки запроса
func ReadQuery(c echo.Context, v any) error {
	return (&echo.DefaultBinder{}).BindQueryParams(c, v)
}
