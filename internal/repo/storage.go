package repo

import (
	"context"
	"time"
)

// ObjectStorage - хранилище блобов с доступом по ключу
type ObjectStorage interface {
	// Put загружает байты под ключом и возвращает публичный URL объекта
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Get читает объект целиком
	Get(ctx context.Context, key string) ([]byte, error)
	// PresignGet выдаёт временную ссылку на скачивание. Срок жизни проверяет само хранилище
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	// Delete удаляет объект. Удаление несуществующего объекта не является ошибкой
	Delete(ctx context.Context, key string) error
}
