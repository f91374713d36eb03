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

type Faculty struct {
	facultyRepo repo.Faculty
	studentRepo repo.Student
}

func NewFaculty(facultyRepo repo.Faculty, studentRepo repo.Student) usecase.Faculty {
	return &Faculty{
		facultyRepo: facultyRepo,
		studentRepo: studentRepo,
	}
}

func (f *Faculty) CreateFaculty(ctx context.Context, faculty *entity.Faculty) (*entity.Faculty, error) {
	if strings.TrimSpace(faculty.Name) == "" {
		return nil, usecase.ErrFacultyNameEmpty
	}
	id, err := f.facultyRepo.AddFaculty(ctx, faculty)
	if err != nil {
		return nil, err
	}
	faculty.ID = id
	log.Debugf("Создан факультет %d: %s, %s", faculty.ID, faculty.Name, faculty.Color)
	return faculty, nil
}

func (f *Faculty) CreateFacultyWithParams(ctx context.Context, name, color string) (*entity.Faculty, error) {
	return f.CreateFaculty(ctx, &entity.Faculty{
		Name:  name,
		Color: color,
	})
}

func (f *Faculty) GetFaculty(ctx context.Context, id int) (*entity.Faculty, error) {
	faculty, err := f.facultyRepo.GetFaculty(ctx, id)
	if errors.Is(err, repo.ErrFacultyNotFound) {
		log.Warnf("Факультет %d не найден", id)
		return nil, usecase.ErrFacultyNotFound
	}
	if err != nil {
		return nil, err
	}
	return faculty, nil
}

func (f *Faculty) EditFaculty(ctx context.Context, faculty *entity.Faculty) (*entity.Faculty, error) {
	if strings.TrimSpace(faculty.Name) == "" {
		return nil, usecase.ErrFacultyNameEmpty
	}
	err := f.facultyRepo.EditFaculty(ctx, faculty)
	if errors.Is(err, repo.ErrFacultyNotFound) {
		return nil, usecase.ErrFacultyNotFound
	}
	if err != nil {
		return nil, err
	}
	return faculty, nil
}

func (f *Faculty) RemoveFaculty(ctx context.Context, id int) error {
	err := f.facultyRepo.DeleteFaculty(ctx, id)
	if errors.Is(err, repo.ErrFacultyNotFound) {
		log.Errorf("Факультет %d не существует", id)
		return usecase.ErrFacultyNotFound
	}
	return err
}

func (f *Faculty) GetAllFaculties(ctx context.Context) ([]*entity.Faculty, error) {
	return f.facultyRepo.GetAllFaculties(ctx)
}

func (f *Faculty) FilterByColor(ctx context.Context, color string) ([]*entity.Faculty, error) {
	return f.facultyRepo.FindFaculties(ctx, color, "")
}

func (f *Faculty) FilterByName(ctx context.Context, name string) ([]*entity.Faculty, error) {
	return f.facultyRepo.FindFaculties(ctx, "", name)
}

func (f *Faculty) GetFacultyStudents(ctx context.Context, id int) ([]*entity.Student, error) {
	if _, err := f.GetFaculty(ctx, id); err != nil {
		return nil, err
	}
	return f.studentRepo.GetStudentsByFaculty(ctx, id)
}

func (f *Faculty) LongestFacultyName(ctx context.Context) (string, error) {
	name, err := f.facultyRepo.GetLongestFacultyName(ctx)
	if errors.Is(err, repo.ErrFacultyNotFound) {
		return "", usecase.ErrNoFaculties
	}
	return name, err
}
