package repo

import (
	"context"
	"recruit-backend/internal/entity"
)

type FileEvent interface {
	PublishFileEvent(ctx context.Context, event *entity.FileEvent) error
	// SubscribeFileEvents возвращает канал событий указанного типа. Канал закрывается при отмене ctx
	SubscribeFileEvents(ctx context.Context, eventType entity.FileEventType) (<-chan *entity.FileEvent, error)
	Close() error
}
