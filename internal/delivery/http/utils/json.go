package utils

import (
	"encoding/json"
	"fmt"

	"github.com/labstack/echo/v4"
)

// ReadJSON читает тело запроса в v. Неизвестные поля считаются ошибкой формата
func ReadJSON(c echo.Context, v any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteEvent отправляет клиенту событие SSE с именем name. v сериализуется в JSON, nil отправляется как пустые данные
func WriteEvent(c echo.Context, name string, v any) error {
	data := []byte("")
	if v != nil {
		marshaled, err := json.Marshal(v)
		if err != nil {
			return err
		}
		data = marshaled
	}
	w := c.Response()
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return err
	}
	w.Flush()
	return nil
}
