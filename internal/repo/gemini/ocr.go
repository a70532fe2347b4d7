package gemini

import (
	"context"
	"errors"
	"recruit-backend/internal/entity"
	"recruit-backend/internal/repo"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"google.golang.org/genai"
)

const transcribePrompt = "Transcribe all text visible in this image exactly as written, line by line, " +
	"in reading order. Output only the transcribed text without commentary or formatting."

var ErrEmptyResponse = errors.New("empty model response")

// ContentGenerator - часть genai.Models, которой пользуется детектор
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Detector struct {
	models ContentGenerator
	model  string
}

func NewDetector(models ContentGenerator, model string) repo.TextDetector {
	return &Detector{
		models: models,
		model:  model,
	}
}

// DetectText просит модель переписать текст изображения и режет ответ на строки
func (d *Detector) DetectText(ctx context.Context, data []byte) ([]entity.TextBlock, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{Data: data, MIMEType: mimetype.Detect(data).String()}},
				{Text: transcribePrompt},
			},
		},
	}
	resp, err := d.models.GenerateContent(ctx, d.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	})
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	blocks := make([]entity.TextBlock, 0)
	for _, line := range strings.Split(b.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		blocks = append(blocks, entity.TextBlock{Text: line})
	}
	return blocks, nil
}
