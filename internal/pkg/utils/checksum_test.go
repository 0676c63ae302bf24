package utils

import (
	"io"
	"strings"
	"testing"
	"time"

	"carelink-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashingReader(t *testing.T) {
	reader := NewHashingReader(strings.NewReader("hello world"))

	data, err := io.ReadAll(reader)
	require.NoError(t, err)

	assert.Equal(t, "hello world", string(data))
	assert.Equal(t, int64(11), reader.Size())
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", reader.Checksum())
	assert.Equal(t, reader.Checksum(), SHA256Hex([]byte("hello world")))
}

func TestComputeSignatureChecksum(t *testing.T) {
	signedAt := time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC)
	base := func() *models.ESignature {
		return &models.ESignature{
			ID:               "sig-1",
			SignerID:         "signer-1",
			DocumentID:       "doc-1",
			SwitchRequestID:  "sr-1",
			SignatureType:    "typed",
			TypedName:        "Jane Doe",
			DocumentChecksum: "abc123",
			SignedAt:         signedAt,
		}
	}

	t.Run("canonical payload layout", func(t *testing.T) {
		assert.Equal(t,
			"v1|sig-1|signer-1|doc-1|sr-1|typed|Jane Doe||abc123|2026-01-02T03:04:05.000000006Z",
			SignatureCanonicalPayload(base()),
		)
	})

	t.Run("known digest", func(t *testing.T) {
		assert.Equal(t, "c371dcca6845bde383f8f3880ab63d7fe16e0a3c5245fc893d36d9956bf42ceb", ComputeSignatureChecksum(base()))
	})

	t.Run("signed_at is normalised to UTC", func(t *testing.T) {
		sig := base()
		sig.SignedAt = signedAt.In(time.FixedZone("EST", -5*3600))
		assert.Equal(t, ComputeSignatureChecksum(base()), ComputeSignatureChecksum(sig))
	})

	mutations := map[string]func(*models.ESignature){
		"signer":            func(s *models.ESignature) { s.SignerID = "signer-2" },
		"typed name":        func(s *models.ESignature) { s.TypedName = "Jane D." },
		"document checksum": func(s *models.ESignature) { s.DocumentChecksum = "def456" },
		"signed at":         func(s *models.ESignature) { s.SignedAt = signedAt.Add(time.Nanosecond) },
	}
	for name, mutate := range mutations {
		t.Run("tampered "+name, func(t *testing.T) {
			sig := base()
			mutate(sig)
			assert.NotEqual(t, ComputeSignatureChecksum(base()), ComputeSignatureChecksum(sig))
		})
	}
}
