package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinioStorage_GetObjectUrlWithExpiryTime(t *testing.T) {
	// With a fixed region the client signs locally without calling the server.
	client, err := minio.New("storage.local:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("access", "secret", ""),
		Region: "us-east-1",
	})
	require.NoError(t, err)

	svc := NewMinioStorage(client, "carelink-documents")
	raw, err := svc.GetObjectUrlWithExpiryTime(context.Background(), "switch-requests/sr-1/doc.pdf", 2*time.Hour)
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "storage.local:9000", parsed.Host)
	assert.Equal(t, "/carelink-documents/switch-requests/sr-1/doc.pdf", parsed.Path)
	assert.Equal(t, "7200", parsed.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, parsed.Query().Get("X-Amz-Signature"))
}
