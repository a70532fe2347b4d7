package repo

import (
	"context"
	"errors"
	"recruit-backend/internal/entity"
	"time"
)

type File interface {
	// AddFile сохраняет метаданные загруженного файла и возвращает его айди
	AddFile(ctx context.Context, file *entity.FileUpload) (string, error)
	// GetFile возвращает метаданные файла по айди. Удалённые записи возвращаются только при includeDeleted
	GetFile(ctx context.Context, id string, includeDeleted bool) (*entity.FileUpload, error)
	// GetFileByKey возвращает любую запись (в том числе удалённую), ссылающуюся на ключ хранилища
	GetFileByKey(ctx context.Context, key string) (*entity.FileUpload, error)
	// ListFiles возвращает файлы по фильтру, новые первыми
	ListFiles(ctx context.Context, request *entity.ListFilesRequest) ([]*entity.FileUpload, error)
	// UpdateFileCandidate привязывает файл к кандидату или отвязывает его (candidateID == nil)
	UpdateFileCandidate(ctx context.Context, id string, candidateID *string) error
	// SoftDeleteFile помечает запись удалённой, не удаляя её физически
	SoftDeleteFile(ctx context.Context, id string, deletedAt time.Time) error
}

var (
	ErrFileNotFound = errors.New("file not found")
)
