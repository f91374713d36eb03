package http

import (
	"bytes"
	"context"
	"encoding/json"
	"hogwarts-school/internal/entity"
	"hogwarts-school/internal/usecase"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAvatarUseCase переопределяет только нужные тесту методы
type stubAvatarUseCase struct {
	usecase.Avatar

	uploaded   *entity.AvatarUpload
	uploadErr  error
	avatar     *entity.Avatar
	preview    *entity.AvatarContent
	previewErr error
	page, size int
	listErr    error
	eventsErr  error
}

func (s *stubAvatarUseCase) UploadAvatar(_ context.Context, studentID int, upload *entity.AvatarUpload) error {
	s.uploaded = upload
	return s.uploadErr
}

func (s *stubAvatarUseCase) FindAvatar(context.Context, int) (*entity.Avatar, bool, error) {
	return s.avatar, s.avatar != nil, nil
}

func (s *stubAvatarUseCase) GetStudentPreview(context.Context, int) (*entity.AvatarContent, error) {
	return s.preview, s.previewErr
}

func (s *stubAvatarUseCase) ListAvatars(_ context.Context, page, size int) ([]*entity.Avatar, error) {
	s.page, s.size = page, size
	if s.listErr != nil {
		return nil, s.listErr
	}
	return nil, nil
}

func (s *stubAvatarUseCase) SubscribeAvatarEvents(context.Context) (<-chan *entity.AvatarEvent, error) {
	return nil, s.eventsErr
}

func newAvatarServer(uc usecase.Avatar) *echo.Echo {
	e := echo.New()
	handler := NewAvatar(uc)
	handler.ConfigureStudent(e.Group("/student"))
	handler.Configure(e.Group("/avatar"))
	return e
}

func multipartBody(t *testing.T, field, fileName, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestAvatar_Upload(t *testing.T) {
	uc := &stubAvatarUseCase{}
	e := newAvatarServer(uc)

	body, contentType := multipartBody(t, "avatar", "photo.png", "image/png", []byte{1, 2, 3})
	req := httptest.NewRequest(http.MethodPost, "/student/7/avatar", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.uploaded)
	assert.Equal(t, "photo.png", uc.uploaded.FileName)
	assert.Equal(t, "image/png", uc.uploaded.ContentType)
	assert.Equal(t, []byte{1, 2, 3}, uc.uploaded.RawBytes)
}

func TestAvatar_Upload_Errors(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		uploadErr  error
		wantStatus int
	}{
		{"missing field", "file", nil, http.StatusBadRequest},
		{"unknown student", "avatar", usecase.ErrStudentNotFound, http.StatusNotFound},
		{"bad file name", "avatar", usecase.ErrInvalidFileName, http.StatusBadRequest},
		{"nameless file", "avatar", usecase.ErrFileNameMissing, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newAvatarServer(&stubAvatarUseCase{uploadErr: tt.uploadErr})

			body, contentType := multipartBody(t, tt.field, "photo", "image/png", []byte{1})
			req := httptest.NewRequest(http.MethodPost, "/student/7/avatar", body)
			req.Header.Set(echo.HeaderContentType, contentType)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAvatar_Get(t *testing.T) {
	uc := &stubAvatarUseCase{}
	e := newAvatarServer(uc)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/student/7/avatar", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	uc.avatar = &entity.Avatar{ID: 1, FilePath: "avatars/7.png", FileSize: 3, MediaType: "image/png", Data: []byte{1, 2, 3}, StudentID: 7}
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/student/7/avatar", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "avatars/7.png", got["file_path"])
	assert.NotContains(t, got, "data")
}

func TestAvatar_Preview(t *testing.T) {
	uc := &stubAvatarUseCase{preview: &entity.AvatarContent{MediaType: "image/png", RawBytes: []byte("png")}}
	e := newAvatarServer(uc)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/student/7/avatar/preview", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "png", rec.Body.String())

	uc.previewErr = usecase.ErrInvalidImage
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/student/7/avatar/preview", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAvatar_List(t *testing.T) {
	uc := &stubAvatarUseCase{}
	e := newAvatarServer(uc)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/avatar", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
	assert.Equal(t, 1, uc.page)
	assert.Equal(t, 10, uc.size)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/avatar?page=3&size=2", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, uc.page)
	assert.Equal(t, 2, uc.size)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/avatar?page=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	uc.listErr = usecase.ErrInvalidPage
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/avatar?page=0", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/avatar?size=4611686018427387904", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "от 1 до 1000")
}

func TestAvatar_EventsDisabled(t *testing.T) {
	e := newAvatarServer(&stubAvatarUseCase{eventsErr: usecase.ErrEventsDisabled})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/avatar/events", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAvatar_Events(t *testing.T) {
	events := make(chan *entity.AvatarEvent, 1)
	events <- &entity.AvatarEvent{EventID: "e1", Type: entity.AvatarUploaded, StudentID: 7}
	close(events)
	uc := &streamingAvatarUseCase{events: events}
	e := newAvatarServer(uc)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/avatar/events", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Body.String(), "event: uploaded\ndata: ")
	assert.Contains(t, rec.Body.String(), `"student_id":7`)
}

type streamingAvatarUseCase struct {
	usecase.Avatar
	events chan *entity.AvatarEvent
}

func (s *streamingAvatarUseCase) SubscribeAvatarEvents(context.Context) (<-chan *entity.AvatarEvent, error) {
	return s.events, nil
}
