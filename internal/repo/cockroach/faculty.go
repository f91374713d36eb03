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

type Faculty struct {
	db *sqlx.DB
}

func NewFaculty(db *sqlx.DB) repo.Faculty {
	return &Faculty{db: db}
}

func (f *Faculty) AddFaculty(ctx context.Context, faculty *entity.Faculty) (int, error) {
	var id int
	err := f.db.QueryRowContext(
		ctx,
		"INSERT INTO faculty (name, color) VALUES ($1, $2) RETURNING id",
		faculty.Name, faculty.Color,
	).Scan(&id)
	return id, err
}

func (f *Faculty) GetFaculty(ctx context.Context, id int) (*entity.Faculty, error) {
	faculty := &entity.Faculty{}
	err := f.db.GetContext(ctx, faculty, "SELECT id, name, color FROM faculty WHERE id = $1", id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, repo.ErrFacultyNotFound
	case err != nil:
		return nil, err
	}
	return faculty, nil
}

func (f *Faculty) EditFaculty(ctx context.Context, faculty *entity.Faculty) error {
	res, err := f.db.ExecContext(
		ctx,
		"UPDATE faculty SET name = $1, color = $2 WHERE id = $3",
		faculty.Name, faculty.Color, faculty.ID,
	)
	if err != nil {
		return err
	}
	return expectAffected(res, repo.ErrFacultyNotFound)
}

func (f *Faculty) DeleteFaculty(ctx context.Context, id int) error {
	res, err := f.db.ExecContext(ctx, "DELETE FROM faculty WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectAffected(res, repo.ErrFacultyNotFound)
}

func (f *Faculty) GetAllFaculties(ctx context.Context) ([]*entity.Faculty, error) {
	return f.FindFaculties(ctx, "", "")
}

func (f *Faculty) FindFaculties(ctx context.Context, color, name string) ([]*entity.Faculty, error) {
	builder := psql.Select("id", "name", "color").From("faculty").OrderBy("id")
	if color != "" {
		builder = builder.Where(sq.Eq{"color": color})
	}
	if name != "" {
		builder = builder.Where(sq.Expr("LOWER(name) = LOWER(?)", name))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	faculties := make([]*entity.Faculty, 0)
	if err = f.db.SelectContext(ctx, &faculties, query, args...); err != nil {
		return nil, err
	}
	return faculties, nil
}

func (f *Faculty) GetLongestFacultyName(ctx context.Context) (string, error) {
	var name string
	err := f.db.GetContext(ctx, &name, "SELECT name FROM faculty ORDER BY LENGTH(name) DESC, id LIMIT 1")
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", repo.ErrFacultyNotFound
	case err != nil:
		return "", err
	}
	return name, nil
}
