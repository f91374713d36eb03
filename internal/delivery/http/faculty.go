package http

import (
	"errors"
	"hogwarts-school/internal/delivery/http/utils"
	"hogwarts-school/internal/entity"
	"hogwarts-school/internal/usecase"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Faculty struct {
	facultyUseCase usecase.Faculty
}

func NewFaculty(facultyUseCase usecase.Faculty) *Faculty {
	return &Faculty{
		facultyUseCase: facultyUseCase,
	}
}

func (f *Faculty) Configure(server *echo.Group) {
	server.POST("", f.Create)
	server.PUT("", f.Edit)
	server.POST("/params", f.CreateWithParams)
	server.GET("/all", f.All)
	server.GET("/filter", f.Filter)
	server.GET("/longest-faculty-name", f.LongestName)
	server.GET("/:id", f.Get)
	server.DELETE("/:id", f.Remove)
	server.GET("/:id/students", f.Students)
}

func (f *Faculty) Create(c echo.Context) error {
	var request entity.Faculty
	if err := utils.ReadJSON(c, &request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат запроса",
		})
	}
	request.ID = 0

	faculty, err := f.facultyUseCase.CreateFaculty(c.Request().Context(), &request)
	if err != nil {
		return f.handleError(c, err, "Ошибка при создании факультета")
	}
	return c.JSON(http.StatusOK, faculty)
}

func (f *Faculty) CreateWithParams(c echo.Context) error {
	var request entity.CreateFacultyParams
	if err := utils.ReadQuery(c, &request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат запроса",
		})
	}

	faculty, err := f.facultyUseCase.CreateFacultyWithParams(c.Request().Context(), request.Name, request.Color)
	if err != nil {
		return f.handleError(c, err, "Ошибка при создании факультета")
	}
	return c.JSON(http.StatusOK, faculty)
}

func (f *Faculty) Get(c echo.Context) error {
	id, err := utils.ReadID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат id",
		})
	}

	faculty, err := f.facultyUseCase.GetFaculty(c.Request().Context(), id)
	if err != nil {
		return f.handleError(c, err, "Ошибка при получении факультета")
	}
	return c.JSON(http.StatusOK, faculty)
}

func (f *Faculty) Edit(c echo.Context) error {
	var request entity.Faculty
	if err := utils.ReadJSON(c, &request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат запроса",
		})
	}

	faculty, err := f.facultyUseCase.EditFaculty(c.Request().Context(), &request)
	if err != nil {
		return f.handleError(c, err, "Ошибка при изменении факультета")
	}
	return c.JSON(http.StatusOK, faculty)
}

func (f *Faculty) Remove(c echo.Context) error {
	id, err := utils.ReadID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат id",
		})
	}

	if err = f.facultyUseCase.RemoveFaculty(c.Request().Context(), id); err != nil {
		return f.handleError(c, err, "Ошибка при удалении факультета")
	}
	return c.NoContent(http.StatusOK)
}

func (f *Faculty) All(c echo.Context) error {
	faculties, err := f.facultyUseCase.GetAllFaculties(c.Request().Context())
	if err != nil {
		return f.handleError(c, err, "Ошибка при получении факультетов")
	}
	return c.JSON(http.StatusOK, faculties)
}

func (f *Faculty) Filter(c echo.Context) error {
	var request entity.FacultyFilter
	if err := utils.ReadQuery(c, &request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат запроса",
		})
	}

	var (
		faculties []*entity.Faculty
		err       error
	)
	switch {
	case request.Color != "":
		faculties, err = f.facultyUseCase.FilterByColor(c.Request().Context(), request.Color)
	case request.FacultyName != "":
		faculties, err = f.facultyUseCase.FilterByName(c.Request().Context(), request.FacultyName)
	default:
		return c.JSON(http.StatusOK, []*entity.Faculty{})
	}
	if err != nil {
		return f.handleError(c, err, "Ошибка при фильтрации факультетов")
	}
	return c.JSON(http.StatusOK, faculties)
}

func (f *Faculty) Students(c echo.Context) error {
	id, err := utils.ReadID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат id",
		})
	}

	students, err := f.facultyUseCase.GetFacultyStudents(c.Request().Context(), id)
	if err != nil {
		return f.handleError(c, err, "Ошибка при получении студентов факультета")
	}
	return c.JSON(http.StatusOK, students)
}

func (f *Faculty) LongestName(c echo.Context) error {
	name, err := f.facultyUseCase.LongestFacultyName(c.Request().Context())
	if err != nil {
		return f.handleError(c, err, "Ошибка при поиске самого длинного названия факультета")
	}
	return c.String(http.StatusOK, name)
}

func (f *Faculty) handleError(c echo.Context, err error, logMessage string) error {
	switch {
	case errors.Is(err, usecase.ErrFacultyNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Факультет не найден",
		})
	case errors.Is(err, usecase.ErrNoFaculties):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "В базе нет факультетов",
		})
	case errors.Is(err, usecase.ErrFacultyNameEmpty):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Название факультета не может быть пустым",
		})
	}
	c.Logger().Errorf("%s: %v", logMessage, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": "Произошла непредвиденная ошибка",
	})
}
