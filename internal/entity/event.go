package entity

import "time"

type AvatarEventType string

const (
	AvatarUploaded AvatarEventType = "uploaded"
)

type AvatarEvent struct {
	EventID    string          `json:"event_id" msgpack:"event_id"`
	Type       AvatarEventType `json:"type" msgpack:"type"`
	StudentID  int             `json:"student_id" msgpack:"student_id"`
	AvatarID   int             `json:"avatar_id" msgpack:"avatar_id"`
	MediaType  string          `json:"media_type" msgpack:"media_type"`
	FileSize   int64           `json:"file_size" msgpack:"file_size"`
	OccurredAt time.Time       `json:"occurred_at" msgpack:"occurred_at"`
}
