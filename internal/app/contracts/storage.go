package contracts

import (
	"context"
	"io"
	"time"
)

type StorageService interface {
	PutObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	GetObjectUrlWithExpiryTime(ctx context.Context, objectName string, expiryTime time.Duration) (string, error)
	RemoveObject(ctx context.Context, objectName string) error
}
