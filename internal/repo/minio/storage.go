package minio

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"recruit-backend/internal/repo"
	"time"

	miniogo "github.com/minio/minio-go/v7"
)

type Storage struct {
	client *miniogo.Client
	bucket string
}

// NewStorage создаёт бакет, если его ещё нет
func NewStorage(ctx context.Context, client *miniogo.Client, bucket string, region string) (repo.ObjectStorage, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		err = client.MakeBucket(ctx, bucket, miniogo.MakeBucketOptions{
			Region: region,
		})
		if err != nil {
			return nil, err
		}
	}
	return &Storage{
		client: client,
		bucket: bucket,
	}, nil
}

func (s *Storage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), miniogo.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return s.client.EndpointURL().JoinPath(s.bucket, key).String(), nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, key, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = object.Close() }()
	// ошибка отсутствия объекта приходит только при чтении
	return io.ReadAll(object)
}

func (s *Storage) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, miniogo.RemoveObjectOptions{})
}
