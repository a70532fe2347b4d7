package connector

import (
	"context"
	"recruit-backend/pkg/retry"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func GetMinioConnector(ctx context.Context, endpoint string, accessKey string, secretKey string, useSSL bool) (*minio.Client, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	// minio.New не ходит в сеть, проверяем доступность явно
	err = retry.Retry(ctx, func() error {
		_, err := minioClient.ListBuckets(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return minioClient, nil
}
