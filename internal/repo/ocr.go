package repo

import (
	"context"
	"recruit-backend/internal/entity"
)

// TextDetector отдаёт текст построчно: блок - одна строка. Слова внутри строк отдельными блоками не возвращаются,
// иначе текст при склейке задвоится
type TextDetector interface {
	// DetectText распознаёт текст на изображении и возвращает блоки в порядке, в котором их отдал сервис
	DetectText(ctx context.Context, data []byte) ([]entity.TextBlock, error)
}
