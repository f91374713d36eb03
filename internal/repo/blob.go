package repo

import (
	"context"
	"errors"
)

// Blob - хранилище исходных файлов аватаров (диск или объектное хранилище)
type Blob interface {
	// Write записывает байты по пути path. Читатель видит либо старое содержимое целиком, либо новое
	Write(ctx context.Context, path string, data []byte) error
	// Read читает содержимое файла по пути path
	Read(ctx context.Context, path string) ([]byte, error)
}

var (
	ErrBlobNotFound = errors.New("blob not found")
)
