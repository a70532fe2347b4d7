package extractor

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

type Word struct{}

func NewWord() *Word {
	return &Word{}
}

// Extract возвращает тело документа без оформления
func (w *Word) Extract(ctx context.Context, data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := documentXMLToText(doc.Editable().GetContent())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// documentXMLToText переводит word/document.xml в текст: w:t - текст, w:p - перевод строки,
// w:tab - табуляция, w:br и w:cr - перевод строки.
// Из mc:AlternateContent читается только mc:Choice, mc:Fallback дублирует его содержимое
func documentXMLToText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	var (
		b      strings.Builder
		inText bool
		skip   int
	)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document.xml: %w", err)
		}
		if skip > 0 {
			switch token.(type) {
			case xml.StartElement:
				skip++
			case xml.EndElement:
				skip--
			}
			continue
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Fallback":
				skip = 1
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
