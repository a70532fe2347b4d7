package utils

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/labstack/echo/v4"
)

// ReadJSON декодирует тело запроса. Пустое тело - ошибка, лишние поля запрещены
func ReadJSON(c echo.Context, v any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return err
	}
	return nil
}
