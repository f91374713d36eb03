package http

import (
	"errors"
	"hogwarts-school/internal/delivery/http/utils"
	"hogwarts-school/internal/entity"
	"hogwarts-school/internal/usecase"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const (
	defaultPageNumber = 1
	defaultPageSize   = 10
	eventsPingPeriod  = 20 * time.Second
)

type Avatar struct {
	avatarUseCase usecase.Avatar
}

func NewAvatar(avatarUseCase usecase.Avatar) *Avatar {
	return &Avatar{
		avatarUseCase: avatarUseCase,
	}
}

// Configure регистрирует маршруты группы /avatar
func (a *Avatar) Configure(server *echo.Group) {
	server.GET("", a.List)
	server.GET("/events", a.SubscribeToEvents)
}

// ConfigureStudent регистрирует маршруты аватара внутри группы /student
func (a *Avatar) ConfigureStudent(server *echo.Group) {
	server.POST("/:id/avatar", a.Upload)
	server.GET("/:id/avatar", a.Get)
	server.GET("/:id/avatar/data", a.Data)
	server.GET("/:id/avatar/file", a.File)
	server.GET("/:id/avatar/preview", a.Preview)
}

func (a *Avatar) Upload(c echo.Context) error {
	studentID, err := utils.ReadID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат id",
		})
	}

	// Извлекаем файл
	file, err := c.FormFile("avatar")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Файл не найден: " + err.Error(),
		})
	}

	fileBytes, err := file.Open()
	if err != nil {
		c.Logger().Errorf("Ошибка чтения файла: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Ошибка чтения файла",
		})
	}
	defer func() { _ = fileBytes.Close() }()

	upload := &entity.AvatarUpload{
		FileName:    file.Filename,
		ContentType: file.Header.Get(echo.HeaderContentType),
		RawBytes:    make([]byte, file.Size),
	}
	if _, err = io.ReadFull(fileBytes, upload.RawBytes); err != nil {
		c.Logger().Errorf("Ошибка чтения файла: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Ошибка чтения файла",
		})
	}

	if err = a.avatarUseCase.UploadAvatar(c.Request().Context(), studentID, upload); err != nil {
		return a.handleError(c, err, "Ошибка при загрузке аватара")
	}
	return c.NoContent(http.StatusOK)
}

func (a *Avatar) Get(c echo.Context) error {
	studentID, err := utils.ReadID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат id",
		})
	}

	avatar, found, err := a.avatarUseCase.FindAvatar(c.Request().Context(), studentID)
	if err != nil {
		return a.handleError(c, err, "Ошибка при получении аватара")
	}
	if !found {
		return a.handleError(c, usecase.ErrAvatarNotFound, "")
	}
	return c.JSON(http.StatusOK, avatar)
}

func (a *Avatar) Data(c echo.Context) error {
	studentID, err := utils.ReadID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат id",
		})
	}

	content, err := a.avatarUseCase.GetAvatarData(c.Request().Context(), studentID)
	if err != nil {
		return a.handleError(c, err, "Ошибка при получении аватара из базы")
	}
	return c.Blob(http.StatusOK, content.MediaType, content.RawBytes)
}

func (a *Avatar) File(c echo.Context) error {
	studentID, err := utils.ReadID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат id",
		})
	}

	content, err := a.avatarUseCase.GetAvatarFile(c.Request().Context(), studentID)
	if err != nil {
		return a.handleError(c, err, "Ошибка при чтении файла аватара")
	}
	return c.Blob(http.StatusOK, content.MediaType, content.RawBytes)
}

func (a *Avatar) Preview(c echo.Context) error {
	studentID, err := utils.ReadID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат id",
		})
	}

	content, err := a.avatarUseCase.GetStudentPreview(c.Request().Context(), studentID)
	if err != nil {
		return a.handleError(c, err, "Ошибка при построении превью")
	}
	return c.Blob(http.StatusOK, content.MediaType, content.RawBytes)
}

func (a *Avatar) List(c echo.Context) error {
	request := &entity.AvatarPageRequest{
		Page: defaultPageNumber,
		Size: defaultPageSize,
	}
	if err := utils.ReadQuery(c, request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат параметров страницы",
		})
	}

	avatars, err := a.avatarUseCase.ListAvatars(c.Request().Context(), request.Page, request.Size)
	if err != nil {
		return a.handleError(c, err, "Ошибка при получении страницы аватаров")
	}
	if avatars == nil {
		avatars = []*entity.Avatar{}
	}
	return c.JSON(http.StatusOK, avatars)
}

func (a *Avatar) SubscribeToEvents(c echo.Context) error {
	eventsCh, err := a.avatarUseCase.SubscribeAvatarEvents(c.Request().Context())
	switch {
	case errors.Is(err, usecase.ErrEventsDisabled):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"error": "События аватаров отключены",
		})
	case err != nil:
		return a.handleError(c, err, "Ошибка при подписке на события аватаров")
	}

	// Настраиваем SSE соединение
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	pingTicker := time.NewTicker(eventsPingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case <-c.Request().Context().Done():
			log.Infof("SSE клиент отключился, IP: %v", c.RealIP())
			return nil

		case event, ok := <-eventsCh:
			if !ok {
				return nil
			}
			if err := utils.WriteEvent(c, string(event.Type), event); err != nil {
				log.Errorf("Ошибка при отправке события: %v", err)
				return err
			}

		case <-pingTicker.C:
			if err := utils.WriteEvent(c, "ping", nil); err != nil {
				log.Errorf("Ошибка при отправке ping: %v", err)
				return err
			}
		}
	}
}

func (a *Avatar) handleError(c echo.Context, err error, logMessage string) error {
	switch {
	case errors.Is(err, usecase.ErrStudentNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Студент не найден",
		})
	case errors.Is(err, usecase.ErrAvatarNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Аватар не найден",
		})
	case errors.Is(err, usecase.ErrFileNameMissing):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "У файла нет имени",
		})
	case errors.Is(err, usecase.ErrInvalidFileName):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверное имя файла: не удалось определить расширение",
		})
	case errors.Is(err, usecase.ErrInvalidPage):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Номер страницы должен быть положительным, размер страницы от 1 до 1000",
		})
	case errors.Is(err, usecase.ErrInvalidImage):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "Файл аватара не является поддерживаемым изображением",
		})
	}
	c.Logger().Errorf("%s: %v", logMessage, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": "Произошла непредвиденная ошибка",
	})
}
