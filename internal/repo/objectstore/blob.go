package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"hogwarts-school/internal/repo"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
)

// Blob хранит файлы аватаров в S3-совместимом хранилище (MinIO).
// Путь файла используется как ключ объекта внутри бакета.
type Blob struct {
	client *minio.Client
	bucket string
}

func NewBlob(ctx context.Context, client *minio.Client, bucket string) (repo.Blob, error) {
	// Создаем бакет для аватаров, предварительно проверив, что его нет
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &Blob{
		client: client,
		bucket: bucket,
	}, nil
}

func (b *Blob) Write(ctx context.Context, path string, data []byte) error {
	// PutObject атомарен: объект становится видимым только после полной загрузки
	_, err := b.client.PutObject(
		ctx,
		b.bucket,
		objectKey(path),
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: mimetype.Detect(data).String(),
		},
	)
	if err != nil {
		return fmt.Errorf("put object %s: %w", path, err)
	}
	return nil
}

func (b *Blob) Read(ctx context.Context, path string) ([]byte, error) {
	object, err := b.client.GetObject(ctx, b.bucket, objectKey(path), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", path, err)
	}
	defer func() { _ = object.Close() }()

	data, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", repo.ErrBlobNotFound, path)
		}
		return nil, fmt.Errorf("read object %s: %w", path, err)
	}
	return data, nil
}

func objectKey(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "/")
}
