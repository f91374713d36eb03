package repo

import (
	"context"
	"errors"
	"hogwarts-school/internal/entity"
)

type Student interface {
	// AddStudent добавляет студента и возвращает его ID
	AddStudent(ctx context.Context, student *entity.Student) (int, error)
	// GetStudent возвращает студента по ID
	GetStudent(ctx context.Context, id int) (*entity.Student, error)
	// EditStudent обновляет студента
	EditStudent(ctx context.Context, student *entity.Student) error
	// DeleteStudent удаляет студента
	DeleteStudent(ctx context.Context, id int) error
	// GetAllStudents возвращает всех студентов
	GetAllStudents(ctx context.Context) ([]*entity.Student, error)
	// GetStudentsByAge возвращает студентов указанного возраста
	GetStudentsByAge(ctx context.Context, age int) ([]*entity.Student, error)
	// GetStudentsByAgeBetween возвращает студентов с возрастом в диапазоне [from, to]
	GetStudentsByAgeBetween(ctx context.Context, from, to int) ([]*entity.Student, error)
	// GetStudentsByFaculty возвращает студентов факультета
	GetStudentsByFaculty(ctx context.Context, facultyID int) ([]*entity.Student, error)
	// CountStudents возвращает количество студентов
	CountStudents(ctx context.Context) (int, error)
	// AverageAge возвращает средний возраст студентов, ErrStudentNotFound если студентов нет
	AverageAge(ctx context.Context) (float64, error)
	// GetLastStudents возвращает последних limit студентов в порядке возрастания ID
	GetLastStudents(ctx context.Context, limit int) ([]*entity.Student, error)
}

var (
	ErrStudentNotFound = errors.New("student not found")
)
