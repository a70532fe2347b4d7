package connector

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/textract"
)

// GetAWSConfig собирает конфиг SDK со статическими ключами
func GetAWSConfig(ctx context.Context, region string, accessKeyID string, secretAccessKey string) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
	)
}

// GetS3Connector. endpoint непустой для S3-совместимых хранилищ, тогда используется path-style адресация
func GetS3Connector(cfg aws.Config, endpoint string) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
}

func GetTextractConnector(cfg aws.Config) *textract.Client {
	return textract.NewFromConfig(cfg)
}
