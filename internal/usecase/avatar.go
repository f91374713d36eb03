package usecase

import (
	"context"
	"errors"
	"hogwarts-school/internal/entity"
)

type Avatar interface {
	// UploadAvatar сохраняет аватар студента на диск и в базу. Повторная загрузка перезаписывает аватар
	UploadAvatar(ctx context.Context, studentID int, upload *entity.AvatarUpload) error
	// FindAvatar возвращает аватар студента; found == false, если студент еще не загружал аватар
	FindAvatar(ctx context.Context, studentID int) (avatar *entity.Avatar, found bool, err error)
	// GetExtension возвращает расширение файла (подстроку после последней точки)
	GetExtension(fileName string) (string, error)
	// GeneratePreview строит превью шириной 100px для изображения по пути filePath
	GeneratePreview(ctx context.Context, filePath string) ([]byte, error)
	// ListAvatars возвращает страницу аватаров, pageNumber начинается с 1, pageSize не больше MaxAvatarPageSize
	ListAvatars(ctx context.Context, pageNumber, pageSize int) ([]*entity.Avatar, error)
	// GetAvatarData возвращает копию аватара, хранящуюся в базе
	GetAvatarData(ctx context.Context, studentID int) (*entity.AvatarContent, error)
	// GetAvatarFile возвращает аватар, прочитанный из файлового хранилища
	GetAvatarFile(ctx context.Context, studentID int) (*entity.AvatarContent, error)
	// GetStudentPreview строит превью аватара студента
	GetStudentPreview(ctx context.Context, studentID int) (*entity.AvatarContent, error)
	// SubscribeAvatarEvents подписывает на события загрузки аватаров
	SubscribeAvatarEvents(ctx context.Context) (<-chan *entity.AvatarEvent, error)
}

// MaxAvatarPageSize - наибольший размер страницы в ListAvatars
const MaxAvatarPageSize = 1000

var (
	ErrAvatarNotFound  = errors.New("avatar not found")
	ErrFileNameMissing = errors.New("uploaded file has no name")
	ErrInvalidFileName = errors.New("invalid file name")
	ErrInvalidPage     = errors.New("invalid page number or page size")
	ErrInvalidImage    = errors.New("file is not a decodable image")
	ErrEventsDisabled  = errors.New("avatar events are disabled")
)
