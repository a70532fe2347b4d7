package usecase

import (
	"context"
	"errors"
	"fmt"
	"recruit-backend/internal/entity"
)

type File interface {
	// ValidateFile проверяет размер и MIME-тип файла по политике загрузки
	ValidateFile(size int64, mimeType string, policy *entity.UploadPolicy) entity.FileValidationResult
	// UploadFile проверяет файл, загружает его в хранилище и сохраняет запись о нём
	UploadFile(ctx context.Context, request *entity.UploadFileRequest) (*entity.FileUpload, error)
	// GetFile возвращает метаданные файла
	GetFile(ctx context.Context, id string) (*entity.FileUpload, error)
	// ListFiles возвращает файлы по фильтру
	ListFiles(ctx context.Context, request *entity.ListFilesRequest) ([]*entity.FileUpload, error)
	// GetDownloadLink возвращает временную ссылку на скачивание файла
	GetDownloadLink(ctx context.Context, id string) (*entity.DownloadLink, error)
	// AttachToCandidate привязывает файл к кандидату (nil - отвязать)
	AttachToCandidate(ctx context.Context, id string, candidateID *string) (*entity.FileUpload, error)
	// DeleteFile удаляет блоб из хранилища и помечает запись удалённой
	DeleteFile(ctx context.Context, id string) error
	// ExtractText читает сохранённый файл и извлекает из него текст
	ExtractText(ctx context.Context, id string) (*entity.ExtractedText, error)
}

var (
	ErrFileNotFound = errors.New("file not found")
	ErrValidation   = errors.New("validation failed")
	ErrStorage      = errors.New("object storage failure")
)

// ValidationError - нарушена политика загрузки. Сообщение отдаётся клиенту как есть
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StorageError - ошибка объектного хранилища при загрузке или удалении
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
