package usecase

import (
	"context"
	"errors"
	"hogwarts-school/internal/entity"
)

type Faculty interface {
	// CreateFaculty создает факультет
	CreateFaculty(ctx context.Context, faculty *entity.Faculty) (*entity.Faculty, error)
	// CreateFacultyWithParams создает факультет по названию и цвету
	CreateFacultyWithParams(ctx context.Context, name, color string) (*entity.Faculty, error)
	// GetFaculty возвращает факультет по ID
	GetFaculty(ctx context.Context, id int) (*entity.Faculty, error)
	// EditFaculty обновляет факультет
	EditFaculty(ctx context.Context, faculty *entity.Faculty) (*entity.Faculty, error)
	// RemoveFaculty удаляет факультет, студенты остаются без факультета
	RemoveFaculty(ctx context.Context, id int) error
	// GetAllFaculties возвращает все факультеты
	GetAllFaculties(ctx context.Context) ([]*entity.Faculty, error)
	// FilterByColor возвращает факультеты указанного цвета
	FilterByColor(ctx context.Context, color string) ([]*entity.Faculty, error)
	// FilterByName возвращает факультеты с указанным названием без учета регистра
	FilterByName(ctx context.Context, name string) ([]*entity.Faculty, error)
	// GetFacultyStudents возвращает студентов факультета
	GetFacultyStudents(ctx context.Context, id int) ([]*entity.Student, error)
	// LongestFacultyName возвращает самое длинное название факультета
	LongestFacultyName(ctx context.Context) (string, error)
}

var (
	ErrFacultyNotFound  = errors.New("faculty not found")
	ErrNoFaculties      = errors.New("no faculties in database")
	ErrFacultyNameEmpty = errors.New("faculty name is empty")
)
