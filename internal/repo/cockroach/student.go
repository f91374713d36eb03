package cockroach

import (
	"context"
	"database/sql"
	"errors"
	"hogwarts-school/internal/entity"
	"hogwarts-school/internal/repo"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const studentColumns = "id, name, age, faculty_id"

type Student struct {
	db *sqlx.DB
}

func NewStudent(db *sqlx.DB) repo.Student {
	return &Student{db: db}
}

func (s *Student) AddStudent(ctx context.Context, student *entity.Student) (int, error) {
	var id int
	err := s.db.QueryRowContext(
		ctx,
		"INSERT INTO student (name, age, faculty_id) VALUES ($1, $2, $3) RETURNING id",
		student.Name, student.Age, student.FacultyID,
	).Scan(&id)
	if isForeignKeyViolation(err) {
		return 0, repo.ErrFacultyNotFound
	}
	return id, err
}

func (s *Student) GetStudent(ctx context.Context, id int) (*entity.Student, error) {
	student := &entity.Student{}
	err := s.db.GetContext(ctx, student, "SELECT "+studentColumns+" FROM student WHERE id = $1", id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, repo.ErrStudentNotFound
	case err != nil:
		return nil, err
	}
	return student, nil
}

func (s *Student) EditStudent(ctx context.Context, student *entity.Student) error {
	res, err := s.db.ExecContext(
		ctx,
		"UPDATE student SET name = $1, age = $2, faculty_id = $3 WHERE id = $4",
		student.Name, student.Age, student.FacultyID, student.ID,
	)
	if isForeignKeyViolation(err) {
		return repo.ErrFacultyNotFound
	}
	if err != nil {
		return err
	}
	return expectAffected(res, repo.ErrStudentNotFound)
}

func (s *Student) DeleteStudent(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM student WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectAffected(res, repo.ErrStudentNotFound)
}

func (s *Student) GetAllStudents(ctx context.Context) ([]*entity.Student, error) {
	return s.selectStudents(ctx, psql.Select(studentColumns).From("student").OrderBy("id"))
}

func (s *Student) GetStudentsByAge(ctx context.Context, age int) ([]*entity.Student, error) {
	return s.selectStudents(ctx, psql.Select(studentColumns).From("student").Where(sq.Eq{"age": age}).OrderBy("id"))
}

func (s *Student) GetStudentsByAgeBetween(ctx context.Context, from, to int) ([]*entity.Student, error) {
	return s.selectStudents(ctx, psql.Select(studentColumns).
		From("student").
		Where(sq.And{sq.GtOrEq{"age": from}, sq.LtOrEq{"age": to}}).
		OrderBy("id"))
}

func (s *Student) GetStudentsByFaculty(ctx context.Context, facultyID int) ([]*entity.Student, error) {
	return s.selectStudents(ctx, psql.Select(studentColumns).
		From("student").
		Where(sq.Eq{"faculty_id": facultyID}).
		OrderBy("id"))
}

func (s *Student) CountStudents(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(id) FROM student")
	return count, err
}

func (s *Student) AverageAge(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	if err := s.db.GetContext(ctx, &avg, "SELECT AVG(age) FROM student"); err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, repo.ErrStudentNotFound
	}
	return avg.Float64, nil
}

func (s *Student) GetLastStudents(ctx context.Context, limit int) ([]*entity.Student, error) {
	students := make([]*entity.Student, 0, limit)
	err := s.db.SelectContext(
		ctx,
		&students,
		"SELECT "+studentColumns+" FROM (SELECT "+studentColumns+" FROM student ORDER BY id DESC LIMIT $1) sub ORDER BY id ASC",
		limit,
	)
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (s *Student) selectStudents(ctx context.Context, builder sq.SelectBuilder) ([]*entity.Student, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	students := make([]*entity.Student, 0)
	if err = s.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, err
	}
	return students, nil
}

// expectAffected возвращает notFound, если запрос не затронул ни одной строки
func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
