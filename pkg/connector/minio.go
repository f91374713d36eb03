package connector

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// GetMinioConnector создает клиент MinIO и проверяет доступность хранилища, как Ping для базы
func GetMinioConnector(ctx context.Context, endpoint, accessKey, secretKey string, useSSL bool) (*minio.Client, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	if _, err = minioClient.ListBuckets(ctx); err != nil {
		return nil, err
	}
	return minioClient, nil
}
