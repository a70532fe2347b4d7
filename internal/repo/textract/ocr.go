package textract

import (
	"context"
	"recruit-backend/internal/entity"
	"recruit-backend/internal/repo"

	awstextract "github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// DetectDocumentTextAPI - часть клиента Textract, которой пользуется детектор
type DetectDocumentTextAPI interface {
	DetectDocumentText(ctx context.Context, params *awstextract.DetectDocumentTextInput, optFns ...func(*awstextract.Options)) (*awstextract.DetectDocumentTextOutput, error)
}

type Detector struct {
	client DetectDocumentTextAPI
}

func NewDetector(client DetectDocumentTextAPI) repo.TextDetector {
	return &Detector{client: client}
}

// DetectText берёт только блоки LINE: блоки WORD дублируют тот же текст по словам
func (d *Detector) DetectText(ctx context.Context, data []byte) ([]entity.TextBlock, error) {
	out, err := d.client.DetectDocumentText(ctx, &awstextract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: data},
	})
	if err != nil {
		return nil, err
	}
	blocks := make([]entity.TextBlock, 0, len(out.Blocks))
	for _, block := range out.Blocks {
		if block.BlockType != types.BlockTypeLine || block.Text == nil {
			continue
		}
		blocks = append(blocks, entity.TextBlock{Text: *block.Text})
	}
	return blocks, nil
}
