package service

import (
	"context"
	"errors"
	"hogwarts-school/internal/entity"
	"hogwarts-school/internal/repo"
	"hogwarts-school/internal/usecase"
	"strings"

	"github.com/labstack/gommon/log"
)

const lastStudentsLimit = 5

type Student struct {
	studentRepo repo.Student
	facultyRepo repo.Faculty
}

func NewStudent(studentRepo repo.Student, facultyRepo repo.Faculty) usecase.Student {
	return &Student{
		studentRepo: studentRepo,
		facultyRepo: facultyRepo,
	}
}

func (s *Student) CreateStudent(ctx context.Context, student *entity.Student) (*entity.Student, error) {
	if err := validateStudent(student); err != nil {
		return nil, err
	}
	id, err := s.studentRepo.AddStudent(ctx, student)
	if errors.Is(err, repo.ErrFacultyNotFound) {
		return nil, usecase.ErrFacultyNotFound
	}
	if err != nil {
		return nil, err
	}
	student.ID = id
	log.Debugf("Создан студент %d: %s, %d", student.ID, student.Name, student.Age)
	return student, nil
}

func (s *Student) CreateStudentWithParams(ctx context.Context, name string, age int) (*entity.Student, error) {
	return s.CreateStudent(ctx, &entity.Student{
		Name: name,
		Age:  age,
	})
}

func (s *Student) GetStudent(ctx context.Context, id int) (*entity.Student, error) {
	student, err := s.studentRepo.GetStudent(ctx, id)
	if errors.Is(err, repo.ErrStudentNotFound) {
		log.Warnf("Студент %d не найден", id)
		return nil, usecase.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return student, nil
}

func (s *Student) EditStudent(ctx context.Context, student *entity.Student) (*entity.Student, error) {
	if err := validateStudent(student); err != nil {
		return nil, err
	}
	err := s.studentRepo.EditStudent(ctx, student)
	switch {
	case errors.Is(err, repo.ErrStudentNotFound):
		return nil, usecase.ErrStudentNotFound
	case errors.Is(err, repo.ErrFacultyNotFound):
		return nil, usecase.ErrFacultyNotFound
	case err != nil:
		return nil, err
	}
	return student, nil
}

func (s *Student) RemoveStudent(ctx context.Context, id int) error {
	// аватар в базе удаляется каскадно, файл аватара остается на диске
	err := s.studentRepo.DeleteStudent(ctx, id)
	if errors.Is(err, repo.ErrStudentNotFound) {
		log.Errorf("Студент %d не существует", id)
		return usecase.ErrStudentNotFound
	}
	return err
}

func (s *Student) GetAllStudents(ctx context.Context) ([]*entity.Student, error) {
	return s.studentRepo.GetAllStudents(ctx)
}

func (s *Student) FilterByAge(ctx context.Context, age int) ([]*entity.Student, error) {
	return s.studentRepo.GetStudentsByAge(ctx, age)
}

func (s *Student) FindByAgeBetween(ctx context.Context, from, to int) ([]*entity.Student, error) {
	if from > to {
		return nil, usecase.ErrInvalidAgeRange
	}
	return s.studentRepo.GetStudentsByAgeBetween(ctx, from, to)
}

func (s *Student) CountStudents(ctx context.Context) (int, error) {
	return s.studentRepo.CountStudents(ctx)
}

func (s *Student) AverageAge(ctx context.Context) (float64, error) {
	avg, err := s.studentRepo.AverageAge(ctx)
	if errors.Is(err, repo.ErrStudentNotFound) {
		log.Errorf("Нет студентов для вычисления среднего возраста")
		return 0, usecase.ErrNoStudents
	}
	return avg, err
}

func (s *Student) LastFiveStudents(ctx context.Context) ([]*entity.Student, error) {
	return s.studentRepo.GetLastStudents(ctx, lastStudentsLimit)
}

func (s *Student) GetStudentFaculty(ctx context.Context, id int) (*entity.Faculty, error) {
	student, err := s.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	if student.FacultyID == nil {
		return nil, usecase.ErrFacultyNotFound
	}
	faculty, err := s.facultyRepo.GetFaculty(ctx, *student.FacultyID)
	if errors.Is(err, repo.ErrFacultyNotFound) {
		return nil, usecase.ErrFacultyNotFound
	}
	if err != nil {
		return nil, err
	}
	return faculty, nil
}

func validateStudent(student *entity.Student) error {
	if strings.TrimSpace(student.Name) == "" {
		return usecase.ErrStudentNameEmpty
	}
	if student.Age < 0 {
		return usecase.ErrInvalidAge
	}
	return nil
}
