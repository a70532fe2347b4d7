package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDF struct{}

func NewPDF() *PDF {
	return &PDF{}
}

// Extract склеивает текст страниц в порядке страниц через перевод строки
func (p *PDF) Extract(ctx context.Context, data []byte) (text string, err error) {
	// библиотека паникует на части битых документов
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		pages = append(pages, pageText)
	}
	return joinPages(pages), nil
}

func joinPages(pages []string) string {
	return strings.TrimSpace(strings.Join(pages, "\n"))
}
