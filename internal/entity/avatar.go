package entity

// Avatar - изображение студента. У студента не более одного аватара.
type Avatar struct {
	ID        int    `json:"id" db:"id"`
	FilePath  string `json:"file_path" db:"file_path"`
	FileSize  int64  `json:"file_size" db:"file_size"`
	MediaType string `json:"media_type" db:"media_type"`
	Data      []byte `json:"-" db:"data"`
	StudentID int    `json:"student_id" db:"student_id"`
}

// AvatarUpload - загруженный клиентом файл аватара
type AvatarUpload struct {
	FileName    string
	ContentType string
	RawBytes    []byte
}

// AvatarContent - содержимое аватара для отдачи клиенту
type AvatarContent struct {
	MediaType string
	RawBytes  []byte
}

type AvatarPageRequest struct {
	Page int `query:"page"`
	Size int `query:"size"`
}
