package http

import (
	"errors"
	"hogwarts-school/internal/delivery/http/utils"
	"hogwarts-school/internal/entity"
	"hogwarts-school/internal/usecase"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Student struct {
	studentUseCase usecase.Student
}

func NewStudent(studentUseCase usecase.Student) *Student {
	return &Student{
		studentUseCase: studentUseCase,
	}
}

func (s *Student) Configure(server *echo.Group) {
	server.POST("", s.Create)
	server.PUT("", s.Edit)
	server.POST("/params", s.CreateWithParams)
	server.GET("/all", s.All)
	server.GET("/filter", s.Filter)
	server.GET("/age-between", s.AgeBetween)
	server.GET("/count", s.Count)
	server.GET("/average-age", s.AverageAge)
	server.GET("/last-five", s.LastFive)
	server.GET("/:id", s.Get)
	server.DELETE("/:id", s.Remove)
	server.GET("/:id/faculty", s.Faculty)
}

func (s *Student) Create(c echo.Context) error {
	var request entity.Student
	if err := utils.ReadJSON(c, &request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат запроса",
		})
	}
	request.ID = 0

	student, err := s.studentUseCase.CreateStudent(c.Request().Context(), &request)
	if err != nil {
		return s.handleError(c, err, "Ошибка при создании студента")
	}
	return c.JSON(http.StatusOK, student)
}

func (s *Student) CreateWithParams(c echo.Context) error {
	var request entity.CreateStudentParams
	if err := utils.ReadQuery(c, &request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат запроса",
		})
	}

	student, err := s.studentUseCase.CreateStudentWithParams(c.Request().Context(), request.Name, request.Age)
	if err != nil {
		return s.handleError(c, err, "Ошибка при создании студента")
	}
	return c.JSON(http.StatusOK, student)
}

func (s *Student) Get(c echo.Context) error {
	id, err := utils.ReadID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат id",
		})
	}

	student, err := s.studentUseCase.GetStudent(c.Request().Context(), id)
	if err != nil {
		return s.handleError(c, err, "Ошибка при получении студента")
	}
	return c.JSON(http.StatusOK, student)
}

func (s *Student) Edit(c echo.Context) error {
	var request entity.Student
	if err := utils.ReadJSON(c, &request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат запроса",
		})
	}

	student, err := s.studentUseCase.EditStudent(c.Request().Context(), &request)
	if err != nil {
		return s.handleError(c, err, "Ошибка при изменении студента")
	}
	return c.JSON(http.StatusOK, student)
}

func (s *Student) Remove(c echo.Context) error {
	id, err := utils.ReadID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат id",
		})
	}

	if err = s.studentUseCase.RemoveStudent(c.Request().Context(), id); err != nil {
		return s.handleError(c, err, "Ошибка при удалении студента")
	}
	return c.NoContent(http.StatusOK)
}

func (s *Student) All(c echo.Context) error {
	students, err := s.studentUseCase.GetAllStudents(c.Request().Context())
	if err != nil {
		return s.handleError(c, err, "Ошибка при получении студентов")
	}
	return c.JSON(http.StatusOK, students)
}

func (s *Student) Filter(c echo.Context) error {
	var request struct {
		Age int `query:"age"`
	}
	if err := utils.ReadQuery(c, &request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат возраста",
		})
	}
	if request.Age <= 0 {
		return c.JSON(http.StatusOK, []*entity.Student{})
	}

	students, err := s.studentUseCase.FilterByAge(c.Request().Context(), request.Age)
	if err != nil {
		return s.handleError(c, err, "Ошибка при фильтрации студентов")
	}
	return c.JSON(http.StatusOK, students)
}

func (s *Student) AgeBetween(c echo.Context) error {
	var request entity.AgeRangeRequest
	if err := utils.ReadQuery(c, &request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат диапазона возрастов",
		})
	}

	students, err := s.studentUseCase.FindByAgeBetween(c.Request().Context(), request.From, request.To)
	if err != nil {
		return s.handleError(c, err, "Ошибка при фильтрации студентов")
	}
	return c.JSON(http.StatusOK, students)
}

func (s *Student) Count(c echo.Context) error {
	count, err := s.studentUseCase.CountStudents(c.Request().Context())
	if err != nil {
		return s.handleError(c, err, "Ошибка при подсчете студентов")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": count,
	})
}

func (s *Student) AverageAge(c echo.Context) error {
	avg, err := s.studentUseCase.AverageAge(c.Request().Context())
	if err != nil {
		return s.handleError(c, err, "Ошибка при вычислении среднего возраста")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"average_age": avg,
	})
}

func (s *Student) LastFive(c echo.Context) error {
	students, err := s.studentUseCase.LastFiveStudents(c.Request().Context())
	if err != nil {
		return s.handleError(c, err, "Ошибка при получении последних студентов")
	}
	return c.JSON(http.StatusOK, students)
}

func (s *Student) Faculty(c echo.Context) error {
	id, err := utils.ReadID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный формат id",
		})
	}

	faculty, err := s.studentUseCase.GetStudentFaculty(c.Request().Context(), id)
	if err != nil {
		return s.handleError(c, err, "Ошибка при получении факультета студента")
	}
	return c.JSON(http.StatusOK, faculty)
}

func (s *Student) handleError(c echo.Context, err error, logMessage string) error {
	switch {
	case errors.Is(err, usecase.ErrStudentNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Студент не найден",
		})
	case errors.Is(err, usecase.ErrFacultyNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Факультет не найден",
		})
	case errors.Is(err, usecase.ErrNoStudents):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "В базе нет студентов",
		})
	case errors.Is(err, usecase.ErrStudentNameEmpty):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Имя студента не может быть пустым",
		})
	case errors.Is(err, usecase.ErrInvalidAge):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Возраст не может быть отрицательным",
		})
	case errors.Is(err, usecase.ErrInvalidAgeRange):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Нижняя граница возраста больше верхней",
		})
	}
	c.Logger().Errorf("%s: %v", logMessage, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": "Произошла непредвиденная ошибка",
	})
}
