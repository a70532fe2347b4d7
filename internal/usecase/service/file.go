package service

import (
	"context"
	"errors"
	"recruit-backend/internal/entity"
	"recruit-backend/internal/repo"
	"recruit-backend/internal/usecase"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// DownloadLinkTTL - срок жизни ссылки на скачивание
const DownloadLinkTTL = time.Hour

type File struct {
	fileRepo  repo.File
	storage   repo.ObjectStorage
	extractor usecase.TextExtractor
	events    repo.FileEvent
	policy    entity.UploadPolicy
}

// NewFile создаёт сервис файлов. events может быть nil, тогда события не публикуются
func NewFile(
	fileRepo repo.File,
	storage repo.ObjectStorage,
	extractor usecase.TextExtractor,
	events repo.FileEvent,
	policy entity.UploadPolicy,
) usecase.File {
	return &File{
		fileRepo:  fileRepo,
		storage:   storage,
		extractor: extractor,
		events:    events,
		policy:    policy.WithDefaults(),
	}
}

func (f *File) ValidateFile(size int64, mimeType string, policy *entity.UploadPolicy) entity.FileValidationResult {
	return ValidateFile(size, mimeType, f.resolvePolicy(policy))
}

func (f *File) resolvePolicy(override *entity.UploadPolicy) entity.UploadPolicy {
	if override == nil {
		return f.policy
	}
	policy := *override
	if policy.MaxSizeBytes <= 0 {
		policy.MaxSizeBytes = f.policy.MaxSizeBytes
	}
	if len(policy.AllowedMimeTypes) == 0 {
		policy.AllowedMimeTypes = f.policy.AllowedMimeTypes
	}
	return policy
}

func (f *File) UploadFile(ctx context.Context, request *entity.UploadFileRequest) (*entity.FileUpload, error) {
	// до загрузки в хранилище никаких побочных эффектов
	size := int64(len(request.RawBytes))
	result := f.ValidateFile(size, request.ContentType, request.Policy)
	if !result.IsValid {
		return nil, &usecase.ValidationError{Message: result.Error}
	}
	if !request.Type.Valid() {
		return nil, &usecase.ValidationError{Message: "Invalid upload type. Allowed types: RESUME, DOCUMENT"}
	}

	originalName := SanitizeFilename(request.OriginalName)
	filename, key := GenerateUniqueKey(originalName, request.Type)

	url, err := f.storage.Put(ctx, key, request.RawBytes, request.ContentType)
	if err != nil {
		return nil, &usecase.StorageError{Op: "put", Key: key, Err: err}
	}

	now := time.Now().UTC()
	file := &entity.FileUpload{
		Filename:     filename,
		OriginalName: originalName,
		MimeType:     request.ContentType,
		Size:         size,
		URL:          url,
		Key:          key,
		CandidateID:  request.CandidateID,
		Type:         request.Type,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// запись о файле - всегда последняя запись в цепочке загрузки
	id, err := f.fileRepo.AddFile(ctx, file)
	if err != nil {
		log.Errorf("Осиротевший объект в хранилище: key=%s filename=%s: %v", key, filename, err)
		f.publish(context.WithoutCancel(ctx), &entity.FileEvent{
			Type:        entity.FileOrphaned,
			StorageKey:  key,
			MimeType:    file.MimeType,
			CandidateID: file.CandidateID,
		})
		return nil, err
	}
	file.ID = id

	f.publish(ctx, &entity.FileEvent{
		Type:        entity.FileUploaded,
		FileID:      file.ID,
		StorageKey:  file.Key,
		MimeType:    file.MimeType,
		CandidateID: file.CandidateID,
	})
	return file, nil
}

func (f *File) GetFile(ctx context.Context, id string) (*entity.FileUpload, error) {
	file, err := f.fileRepo.GetFile(ctx, id, false)
	if errors.Is(err, repo.ErrFileNotFound) {
		return nil, usecase.ErrFileNotFound
	}
	return file, err
}

func (f *File) ListFiles(ctx context.Context, request *entity.ListFilesRequest) ([]*entity.FileUpload, error) {
	if request.Type != "" && !request.Type.Valid() {
		return nil, &usecase.ValidationError{Message: "Invalid upload type. Allowed types: RESUME, DOCUMENT"}
	}
	return f.fileRepo.ListFiles(ctx, request)
}

func (f *File) GetDownloadLink(ctx context.Context, id string) (*entity.DownloadLink, error) {
	file, err := f.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := f.storage.PresignGet(ctx, file.Key, DownloadLinkTTL)
	if err != nil {
		return nil, &usecase.StorageError{Op: "presign", Key: file.Key, Err: err}
	}
	return &entity.DownloadLink{
		URL:       url,
		Filename:  file.OriginalName,
		MimeType:  file.MimeType,
		ExpiresAt: time.Now().Add(DownloadLinkTTL).UTC(),
	}, nil
}

func (f *File) AttachToCandidate(ctx context.Context, id string, candidateID *string) (*entity.FileUpload, error) {
	if candidateID != nil && *candidateID == "" {
		candidateID = nil
	}
	err := f.fileRepo.UpdateFileCandidate(ctx, id, candidateID)
	if errors.Is(err, repo.ErrFileNotFound) {
		return nil, usecase.ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return f.GetFile(ctx, id)
}

func (f *File) DeleteFile(ctx context.Context, id string) error {
	file, err := f.GetFile(ctx, id)
	if err != nil {
		return err
	}
	return f.remove(ctx, file)
}

// remove сначала удаляет блоб, потом помечает запись. При ошибке хранилища запись остаётся как была
func (f *File) remove(ctx context.Context, file *entity.FileUpload) error {
	if err := f.storage.Delete(ctx, file.Key); err != nil {
		return &usecase.StorageError{Op: "delete", Key: file.Key, Err: err}
	}
	err := f.fileRepo.SoftDeleteFile(ctx, file.ID, time.Now().UTC())
	if errors.Is(err, repo.ErrFileNotFound) {
		return usecase.ErrFileNotFound
	}
	if err != nil {
		return err
	}

	f.publish(ctx, &entity.FileEvent{
		Type:        entity.FileDeleted,
		FileID:      file.ID,
		StorageKey:  file.Key,
		MimeType:    file.MimeType,
		CandidateID: file.CandidateID,
	})
	return nil
}

func (f *File) ExtractText(ctx context.Context, id string) (*entity.ExtractedText, error) {
	file, err := f.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := f.storage.Get(ctx, file.Key)
	if err != nil {
		return nil, &usecase.StorageError{Op: "get", Key: file.Key, Err: err}
	}
	text, err := f.extractor.Extract(ctx, data, file.MimeType)
	if err != nil {
		return nil, err
	}
	return &entity.ExtractedText{
		FileID:   file.ID,
		MimeType: file.MimeType,
		Text:     text,
	}, nil
}

// publish не влияет на результат операции
func (f *File) publish(ctx context.Context, event *entity.FileEvent) {
	if f.events == nil {
		return
	}
	event.EventID = uuid.NewString()
	event.OccurredAt = time.Now().UTC()
	if err := f.events.PublishFileEvent(ctx, event); err != nil {
		log.Warnf("Не удалось опубликовать событие %s для %s: %v", event.Type, event.StorageKey, err)
	}
}
