// Package extractor извлекает plain text из резюме. Формат выбирается по объявленному MIME-типу
// через реестр стратегий: новый формат добавляется регистрацией стратегии.
package extractor

import (
	"context"
	"recruit-backend/internal/entity"
	"recruit-backend/internal/repo"
	"recruit-backend/internal/usecase"
	"sort"
)

type Registry struct {
	strategies map[string]usecase.ExtractionStrategy
}

func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]usecase.ExtractionStrategy),
	}
}

// NewDefault регистрирует PDF, Word и, если передан detector, OCR для JPEG/PNG
func NewDefault(detector repo.TextDetector) *Registry {
	r := NewRegistry()
	r.Register(entity.MimePDF, NewPDF())
	word := NewWord()
	r.Register(entity.MimeDOC, word)
	r.Register(entity.MimeDOCX, word)
	if detector != nil {
		ocr := NewOCR(detector)
		r.Register(entity.MimeJPEG, ocr)
		r.Register(entity.MimePNG, ocr)
	}
	return r
}

// Register добавляет или заменяет стратегию для MIME-типа. Вызывается до начала обработки запросов
func (r *Registry) Register(mimeType string, strategy usecase.ExtractionStrategy) {
	r.strategies[mimeType] = strategy
}

// Supported возвращает зарегистрированные MIME-типы в алфавитном порядке
func (r *Registry) Supported() []string {
	types := make([]string, 0, len(r.strategies))
	for mimeType := range r.strategies {
		types = append(types, mimeType)
	}
	sort.Strings(types)
	return types
}

func (r *Registry) Extract(ctx context.Context, data []byte, mimeType string) (string, error) {
	strategy, ok := r.strategies[mimeType]
	if !ok {
		return "", &usecase.UnsupportedFormatError{MimeType: mimeType}
	}
	text, err := strategy.Extract(ctx, data)
	if err != nil {
		return "", &usecase.ExtractionFailureError{MimeType: mimeType, Err: err}
	}
	return text, nil
}
