package repo

import (
	"context"
	"errors"
	"hogwarts-school/internal/entity"
)

type Avatar interface {
	// GetAvatarByStudentID возвращает аватар студента вместе с бинарными данными
	GetAvatarByStudentID(ctx context.Context, studentID int) (*entity.Avatar, error)
	// SaveAvatar сохраняет аватар. Запись для студента одна: повторное сохранение перезаписывает поля
	SaveAvatar(ctx context.Context, avatar *entity.Avatar) (*entity.Avatar, error)
	// ListAvatars возвращает страницу аватаров (без бинарных данных) в порядке возрастания ID
	ListAvatars(ctx context.Context, offset, limit int) ([]*entity.Avatar, error)
}

var (
	ErrAvatarNotFound = errors.New("avatar not found")
)
