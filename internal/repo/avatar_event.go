package repo

import (
	"context"
	"hogwarts-school/internal/entity"
)

type AvatarEventRepository interface {
	PublishAvatarEvent(ctx context.Context, event *entity.AvatarEvent) error
	SubscribeAvatarEvents(ctx context.Context) (<-chan *entity.AvatarEvent, error)
	Close() error
}
