package service

import (
	"context"
	"errors"
	"fmt"
	"hogwarts-school/internal/entity"
	"hogwarts-school/internal/repo"
	"hogwarts-school/internal/usecase"
	"hogwarts-school/pkg/keylock"
	"hogwarts-school/pkg/thumbnail"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

const defaultMediaType = "application/octet-stream"

type Avatar struct {
	avatarsDir  string
	studentRepo repo.Student
	avatarRepo  repo.Avatar
	blobRepo    repo.Blob
	eventRepo   repo.AvatarEventRepository
	locks       *keylock.KeyLock[int]
}

// NewAvatar создает сервис аватаров. eventRepo может быть nil - тогда события не публикуются
func NewAvatar(
	avatarsDir string,
	studentRepo repo.Student,
	avatarRepo repo.Avatar,
	blobRepo repo.Blob,
	eventRepo repo.AvatarEventRepository,
) usecase.Avatar {
	return &Avatar{
		avatarsDir:  avatarsDir,
		studentRepo: studentRepo,
		avatarRepo:  avatarRepo,
		blobRepo:    blobRepo,
		eventRepo:   eventRepo,
		locks:       keylock.New[int](),
	}
}

func (a *Avatar) UploadAvatar(ctx context.Context, studentID int, upload *entity.AvatarUpload) error {
	log.Infof("Загрузка аватара: студент %d, файл %q", studentID, upload.FileName)

	// студент должен существовать до того, как мы что-либо запишем на диск
	student, err := a.studentRepo.GetStudent(ctx, studentID)
	if errors.Is(err, repo.ErrStudentNotFound) {
		log.Warnf("Студент %d не найден", studentID)
		return usecase.ErrStudentNotFound
	}
	if err != nil {
		return err
	}

	if upload.FileName == "" {
		log.Warnf("Ошибка загрузки аватара: у файла нет имени")
		return usecase.ErrFileNameMissing
	}
	extension, err := a.GetExtension(upload.FileName)
	if err != nil {
		return err
	}
	if strings.ContainsAny(extension, `/\`) {
		return fmt.Errorf("%w: %q", usecase.ErrInvalidFileName, upload.FileName)
	}
	filePath := filepath.Join(a.avatarsDir, strconv.Itoa(student.ID)+"."+extension)

	saved, err := a.storeAvatar(ctx, student.ID, filePath, upload)
	if err != nil {
		return err
	}
	log.Debugf("Аватар %d студента %d сохранен: %s, %d байт", saved.ID, student.ID, saved.FilePath, saved.FileSize)

	// публикация идет уже без блокировки студента
	a.publishUploaded(ctx, saved)
	return nil
}

// storeAvatar записывает файл и запись в базе под блокировкой студента,
// иначе файл на диске и копия в базе могут оказаться от разных загрузок
func (a *Avatar) storeAvatar(ctx context.Context, studentID int, filePath string, upload *entity.AvatarUpload) (*entity.Avatar, error) {
	unlock := a.locks.Lock(studentID)
	defer unlock()

	if err := a.blobRepo.Write(ctx, filePath, upload.RawBytes); err != nil {
		return nil, fmt.Errorf("ошибка записи файла аватара: %w", err)
	}

	avatar, found, err := a.FindAvatar(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !found {
		avatar = &entity.Avatar{}
	}
	avatar.FilePath = filePath
	avatar.StudentID = studentID
	avatar.MediaType = detectMediaType(upload)
	avatar.FileSize = int64(len(upload.RawBytes))
	avatar.Data = upload.RawBytes

	saved, err := a.avatarRepo.SaveAvatar(ctx, avatar)
	if errors.Is(err, repo.ErrStudentNotFound) {
		// студента удалили, пока мы писали файл
		return nil, usecase.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (a *Avatar) FindAvatar(ctx context.Context, studentID int) (*entity.Avatar, bool, error) {
	avatar, err := a.avatarRepo.GetAvatarByStudentID(ctx, studentID)
	if errors.Is(err, repo.ErrAvatarNotFound) {
		log.Debugf("У студента %d еще нет аватара", studentID)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return avatar, true, nil
}

func (a *Avatar) GetExtension(fileName string) (string, error) {
	dotIndex := strings.LastIndex(fileName, ".")
	// точки нет, она последняя, или до нее нет имени (".png")
	if dotIndex < 1 || dotIndex == len(fileName)-1 {
		log.Warnf("Неверное имя файла: %q", fileName)
		return "", fmt.Errorf("%w: %q", usecase.ErrInvalidFileName, fileName)
	}
	return fileName[dotIndex+1:], nil
}

func (a *Avatar) GeneratePreview(ctx context.Context, filePath string) ([]byte, error) {
	log.Infof("Построение превью для %s", filePath)
	format, err := a.GetExtension(filepath.Base(filePath))
	if err != nil {
		return nil, err
	}

	data, err := a.blobRepo.Read(ctx, filePath)
	if errors.Is(err, repo.ErrBlobNotFound) {
		return nil, usecase.ErrAvatarNotFound
	}
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	preview, err := thumbnail.Generate(data, format)
	switch {
	case errors.Is(err, thumbnail.ErrDecode),
		errors.Is(err, thumbnail.ErrUnsupportedFormat),
		errors.Is(err, thumbnail.ErrPreviewSize):
		log.Errorf("Не удалось построить превью для %s: %v", filePath, err)
		return nil, fmt.Errorf("%w: %w", usecase.ErrInvalidImage, err)
	case err != nil:
		return nil, err
	}
	log.Debugf("Превью для %s построено, %d байт", filePath, len(preview))
	return preview, nil
}

func (a *Avatar) ListAvatars(ctx context.Context, pageNumber, pageSize int) ([]*entity.Avatar, error) {
	if pageNumber < 1 || pageSize < 1 || pageSize > usecase.MaxAvatarPageSize {
		return nil, usecase.ErrInvalidPage
	}
	// смещение (pageNumber-1)*pageSize должно помещаться в int
	if pageNumber-1 > math.MaxInt/pageSize {
		return nil, usecase.ErrInvalidPage
	}
	avatars, err := a.avatarRepo.ListAvatars(ctx, (pageNumber-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	log.Debugf("Страница %d (размер %d): найдено аватаров %d", pageNumber, pageSize, len(avatars))
	return avatars, nil
}

func (a *Avatar) GetAvatarData(ctx context.Context, studentID int) (*entity.AvatarContent, error) {
	avatar, err := a.requireAvatar(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &entity.AvatarContent{
		MediaType: avatar.MediaType,
		RawBytes:  avatar.Data,
	}, nil
}

func (a *Avatar) GetAvatarFile(ctx context.Context, studentID int) (*entity.AvatarContent, error) {
	avatar, err := a.requireAvatar(ctx, studentID)
	if err != nil {
		return nil, err
	}
	data, err := a.blobRepo.Read(ctx, avatar.FilePath)
	if errors.Is(err, repo.ErrBlobNotFound) {
		log.Warnf("Файл аватара %s студента %d отсутствует в хранилище", avatar.FilePath, studentID)
		return nil, usecase.ErrAvatarNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entity.AvatarContent{
		MediaType: avatar.MediaType,
		RawBytes:  data,
	}, nil
}

func (a *Avatar) GetStudentPreview(ctx context.Context, studentID int) (*entity.AvatarContent, error) {
	avatar, err := a.requireAvatar(ctx, studentID)
	if err != nil {
		return nil, err
	}
	preview, err := a.GeneratePreview(ctx, avatar.FilePath)
	if err != nil {
		return nil, err
	}
	return &entity.AvatarContent{
		MediaType: mimetype.Detect(preview).String(),
		RawBytes:  preview,
	}, nil
}

func (a *Avatar) SubscribeAvatarEvents(ctx context.Context) (<-chan *entity.AvatarEvent, error) {
	if a.eventRepo == nil {
		return nil, usecase.ErrEventsDisabled
	}
	return a.eventRepo.SubscribeAvatarEvents(ctx)
}

func (a *Avatar) requireAvatar(ctx context.Context, studentID int) (*entity.Avatar, error) {
	avatar, found, err := a.FindAvatar(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, usecase.ErrAvatarNotFound
	}
	return avatar, nil
}

// publishUploaded публикует событие о загрузке. Ошибка публикации не отменяет загрузку
func (a *Avatar) publishUploaded(ctx context.Context, avatar *entity.Avatar) {
	if a.eventRepo == nil {
		return
	}
	err := a.eventRepo.PublishAvatarEvent(ctx, &entity.AvatarEvent{
		EventID:    uuid.New().String(),
		Type:       entity.AvatarUploaded,
		StudentID:  avatar.StudentID,
		AvatarID:   avatar.ID,
		MediaType:  avatar.MediaType,
		FileSize:   avatar.FileSize,
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Errorf("Ошибка публикации события загрузки аватара студента %d: %v", avatar.StudentID, err)
	}
}

// detectMediaType возвращает заявленный клиентом тип, а если его нет - определяет тип по содержимому
func detectMediaType(upload *entity.AvatarUpload) string {
	if upload.ContentType != "" && upload.ContentType != defaultMediaType {
		return upload.ContentType
	}
	return mimetype.Detect(upload.RawBytes).String()
}
