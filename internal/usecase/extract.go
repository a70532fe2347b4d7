package usecase

import (
	"context"
	"errors"
	"fmt"
)

// ExtractionStrategy извлекает текст из файла одного формата
type ExtractionStrategy interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

type TextExtractor interface {
	// Extract выбирает стратегию по MIME-типу и возвращает извлечённый текст
	Extract(ctx context.Context, data []byte, mimeType string) (string, error)
}

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrExtractionFailure = errors.New("extraction failure")
)

type UnsupportedFormatError struct {
	MimeType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.MimeType)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// ExtractionFailureError - стратегия запустилась, но не смогла извлечь текст. Err хранит исходную причину
type ExtractionFailureError struct {
	MimeType string
	Err      error
}

func (e *ExtractionFailureError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.MimeType, e.Err)
}

func (e *ExtractionFailureError) Is(target error) bool {
	return target == ErrExtractionFailure
}

func (e *ExtractionFailureError) Unwrap() error {
	return e.Err
}
