package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"recruit-backend/internal/repo"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

type Storage struct {
	client   *awss3.Client
	presign  *awss3.PresignClient
	bucket   string
	region   string
	endpoint string
}

// NewStorage работает и с AWS S3, и с S3-совместимыми хранилищами. endpoint пустой для AWS
func NewStorage(client *awss3.Client, bucket string, region string, endpoint string) repo.ObjectStorage {
	return &Storage{
		client:   client,
		presign:  awss3.NewPresignClient(client),
		bucket:   bucket,
		region:   region,
		endpoint: endpoint,
	}
}

func (s *Storage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", err
	}
	return PublicURL(s.bucket, s.region, s.endpoint, key), nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = out.Body.Close() }()
	return io.ReadAll(out.Body)
}

func (s *Storage) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	request, err := s.presign.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, awss3.WithPresignExpires(ttl))
	if err != nil {
		return "", err
	}
	return request.URL, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// PublicURL - адрес объекта без подписи. Для AWS virtual-hosted стиль, для своего endpoint - path стиль
func PublicURL(bucket string, region string, endpoint string, key string) string {
	if endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
	}
	base, err := url.Parse(strings.TrimSuffix(endpoint, "/"))
	if err != nil {
		return strings.TrimSuffix(endpoint, "/") + "/" + bucket + "/" + key
	}
	return base.JoinPath(bucket, key).String()
}
