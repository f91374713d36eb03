package cockroach

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hogwarts-school/internal/entity"
	"hogwarts-school/internal/repo"

	"github.com/jmoiron/sqlx"
)

type Avatar struct {
	db *sqlx.DB
}

func NewAvatar(db *sqlx.DB) repo.Avatar {
	return &Avatar{db: db}
}

func (a *Avatar) GetAvatarByStudentID(ctx context.Context, studentID int) (*entity.Avatar, error) {
	avatar := &entity.Avatar{}
	err := a.db.GetContext(
		ctx,
		avatar,
		"SELECT id, file_path, file_size, media_type, data, student_id FROM avatar WHERE student_id = $1",
		studentID,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, repo.ErrAvatarNotFound
	case err != nil:
		return nil, err
	}
	return avatar, nil
}

func (a *Avatar) SaveAvatar(ctx context.Context, avatar *entity.Avatar) (*entity.Avatar, error) {
	// student_id уникален, поэтому параллельная вставка для того же студента превращается в обновление
	var id int
	err := a.db.QueryRowContext(
		ctx,
		`INSERT INTO avatar (file_path, file_size, media_type, data, student_id)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (student_id) DO UPDATE
		 SET file_path = EXCLUDED.file_path, file_size = EXCLUDED.file_size,
		     media_type = EXCLUDED.media_type, data = EXCLUDED.data
		 RETURNING id`,
		avatar.FilePath, avatar.FileSize, avatar.MediaType, avatar.Data, avatar.StudentID,
	).Scan(&id)
	if isForeignKeyViolation(err) {
		return nil, repo.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	avatar.ID = id
	return avatar, nil
}

func (a *Avatar) ListAvatars(ctx context.Context, offset, limit int) ([]*entity.Avatar, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("invalid avatar range: offset %d, limit %d", offset, limit)
	}
	query, args, err := psql.
		Select("id", "file_path", "file_size", "media_type", "student_id").
		From("avatar").
		OrderBy("id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, err
	}
	avatars := make([]*entity.Avatar, 0)
	if err = a.db.SelectContext(ctx, &avatars, query, args...); err != nil {
		return nil, err
	}
	return avatars, nil
}
