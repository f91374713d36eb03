package service

import (
	"context"
	"hogwarts-school/internal/entity"
	"hogwarts-school/internal/usecase"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestStudent_CreateAndGet(t *testing.T) {
	students := NewStudent(newMemStudentRepo(), newMemFacultyRepo())
	ctx := context.Background()

	created, err := students.CreateStudentWithParams(ctx, "Harry", 11)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := students.GetStudent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = students.GetStudent(ctx, created.ID+1)
	assert.ErrorIs(t, err, usecase.ErrStudentNotFound)
}

func TestStudent_Validation(t *testing.T) {
	students := NewStudent(newMemStudentRepo(), newMemFacultyRepo())
	ctx := context.Background()

	_, err := students.CreateStudent(ctx, &entity.Student{Name: "  ", Age: 11})
	assert.ErrorIs(t, err, usecase.ErrStudentNameEmpty)
	_, err = students.CreateStudent(ctx, &entity.Student{Name: "Harry", Age: -1})
	assert.ErrorIs(t, err, usecase.ErrInvalidAge)
	_, err = students.EditStudent(ctx, &entity.Student{ID: 1, Name: ""})
	assert.ErrorIs(t, err, usecase.ErrStudentNameEmpty)
}

func TestStudent_EditAndRemove(t *testing.T) {
	repo := newMemStudentRepo(&entity.Student{ID: 1, Name: "Ron", Age: 11})
	students := NewStudent(repo, newMemFacultyRepo())
	ctx := context.Background()

	edited, err := students.EditStudent(ctx, &entity.Student{ID: 1, Name: "Ron", Age: 12})
	require.NoError(t, err)
	assert.Equal(t, 12, edited.Age)

	_, err = students.EditStudent(ctx, &entity.Student{ID: 2, Name: "Nobody", Age: 12})
	assert.ErrorIs(t, err, usecase.ErrStudentNotFound)

	require.NoError(t, students.RemoveStudent(ctx, 1))
	assert.ErrorIs(t, students.RemoveStudent(ctx, 1), usecase.ErrStudentNotFound)
}

func TestStudent_Queries(t *testing.T) {
	repo := newMemStudentRepo(
		&entity.Student{ID: 1, Name: "Harry", Age: 11},
		&entity.Student{ID: 2, Name: "Hermione", Age: 12},
		&entity.Student{ID: 3, Name: "Ron", Age: 11},
		&entity.Student{ID: 4, Name: "Fred", Age: 14},
		&entity.Student{ID: 5, Name: "George", Age: 14},
		&entity.Student{ID: 6, Name: "Ginny", Age: 10},
	)
	students := NewStudent(repo, newMemFacultyRepo())
	ctx := context.Background()

	byAge, err := students.FilterByAge(ctx, 11)
	require.NoError(t, err)
	assert.Len(t, byAge, 2)

	between, err := students.FindByAgeBetween(ctx, 11, 12)
	require.NoError(t, err)
	assert.Len(t, between, 3)

	_, err = students.FindByAgeBetween(ctx, 12, 11)
	assert.ErrorIs(t, err, usecase.ErrInvalidAgeRange)

	count, err := students.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	avg, err := students.AverageAge(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, avg, 1e-9)

	last, err := students.LastFiveStudents(ctx)
	require.NoError(t, err)
	require.Len(t, last, 5)
	assert.Equal(t, 2, last[0].ID)
	assert.Equal(t, 6, last[4].ID)
}

func TestStudent_AverageAge_Empty(t *testing.T) {
	students := NewStudent(newMemStudentRepo(), newMemFacultyRepo())

	_, err := students.AverageAge(context.Background())
	assert.ErrorIs(t, err, usecase.ErrNoStudents)
}

func TestStudent_GetStudentFaculty(t *testing.T) {
	faculties := newMemFacultyRepo(&entity.Faculty{ID: 1, Name: "Gryffindor", Color: "red"})
	repo := newMemStudentRepo(
		&entity.Student{ID: 1, Name: "Harry", Age: 11, FacultyID: intPtr(1)},
		&entity.Student{ID: 2, Name: "Newcomer", Age: 11},
	)
	students := NewStudent(repo, faculties)
	ctx := context.Background()

	faculty, err := students.GetStudentFaculty(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Gryffindor", faculty.Name)

	_, err = students.GetStudentFaculty(ctx, 2)
	assert.ErrorIs(t, err, usecase.ErrFacultyNotFound)

	_, err = students.GetStudentFaculty(ctx, 3)
	assert.ErrorIs(t, err, usecase.ErrStudentNotFound)
}
