package extractor

import (
	"context"
	"recruit-backend/internal/repo"
	"strings"
)

type OCR struct {
	detector repo.TextDetector
}

func NewOCR(detector repo.TextDetector) *OCR {
	return &OCR{detector: detector}
}

// Extract склеивает блоки в порядке, в котором их вернул сервис. Нет блоков - пустая строка
func (o *OCR) Extract(ctx context.Context, data []byte) (string, error) {
	blocks, err := o.detector.DetectText(ctx, data)
	if err != nil {
		return "", err
	}
	texts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		texts = append(texts, block.Text)
	}
	return strings.Join(texts, "\n"), nil
}
