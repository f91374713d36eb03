package usecase

import (
	"context"
	"errors"
	"hogwarts-school/internal/entity"
)

type Student interface {
	// CreateStudent создает студента
	CreateStudent(ctx context.Context, student *entity.Student) (*entity.Student, error)
	// CreateStudentWithParams создает студента по имени и возрасту
	CreateStudentWithParams(ctx context.Context, name string, age int) (*entity.Student, error)
	// GetStudent возвращает студента по ID
	GetStudent(ctx context.Context, id int) (*entity.Student, error)
	// EditStudent обновляет студента
	EditStudent(ctx context.Context, student *entity.Student) (*entity.Student, error)
	// RemoveStudent удаляет студента
	RemoveStudent(ctx context.Context, id int) error
	// GetAllStudents возвращает всех студентов
	GetAllStudents(ctx context.Context) ([]*entity.Student, error)
	// FilterByAge возвращает студентов указанного возраста
	FilterByAge(ctx context.Context, age int) ([]*entity.Student, error)
	// FindByAgeBetween возвращает студентов с возрастом от from до to включительно
	FindByAgeBetween(ctx context.Context, from, to int) ([]*entity.Student, error)
	// CountStudents возвращает количество студентов
	CountStudents(ctx context.Context) (int, error)
	// AverageAge возвращает средний возраст студентов
	AverageAge(ctx context.Context) (float64, error)
	// LastFiveStudents возвращает пять последних добавленных студентов
	LastFiveStudents(ctx context.Context) ([]*entity.Student, error)
	// GetStudentFaculty возвращает факультет студента
	GetStudentFaculty(ctx context.Context, id int) (*entity.Faculty, error)
}

var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrNoStudents       = errors.New("no students in database")
	ErrInvalidAgeRange  = errors.New("invalid age range")
	ErrStudentNameEmpty = errors.New("student name is empty")
	ErrInvalidAge       = errors.New("age must not be negative")
)
