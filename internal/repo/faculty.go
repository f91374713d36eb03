package repo

import (
	"context"
	"errors"
	"hogwarts-school/internal/entity"
)

type Faculty interface {
	// AddFaculty добавляет факультет и возвращает его ID
	AddFaculty(ctx context.Context, faculty *entity.Faculty) (int, error)
	// GetFaculty возвращает факультет по ID
	GetFaculty(ctx context.Context, id int) (*entity.Faculty, error)
	// EditFaculty обновляет факультет
	EditFaculty(ctx context.Context, faculty *entity.Faculty) error
	// DeleteFaculty удаляет факультет
	DeleteFaculty(ctx context.Context, id int) error
	// GetAllFaculties возвращает все факультеты
	GetAllFaculties(ctx context.Context) ([]*entity.Faculty, error)
	// FindFaculties возвращает факультеты по цвету и/или названию (без учета регистра)
	FindFaculties(ctx context.Context, color, name string) ([]*entity.Faculty, error)
	// GetLongestFacultyName возвращает самое длинное название факультета
	GetLongestFacultyName(ctx context.Context) (string, error)
}

var (
	ErrFacultyNotFound = errors.New("faculty not found")
)
