package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"strings"
	"time"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
)

func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashingReader hashes and counts every byte read through it, so an upload
// can be checksummed while it streams to object storage.
type HashingReader struct {
	reader io.Reader
	hash   hash.Hash
	size   int64
}

func NewHashingReader(r io.Reader) *HashingReader {
	h := sha256.New()
	return &HashingReader{
		reader: io.TeeReader(r, h),
		hash:   h,
	}
}

func (h *HashingReader) Read(p []byte) (int, error) {
	n, err := h.reader.Read(p)
	h.size += int64(n)
	return n, err
}

func (h *HashingReader) Size() int64 {
	return h.size
}

func (h *HashingReader) Checksum() string {
	return hex.EncodeToString(h.hash.Sum(nil))
}

// SignatureCanonicalPayload is the pipe separated line the signature
// checksum is computed over. Field order is fixed; changing it requires a
// new version prefix.
func SignatureCanonicalPayload(signature *models.ESignature) string {
	return strings.Join([]string{
		constvars.SignatureChecksumVersion,
		signature.ID,
		signature.SignerID,
		signature.DocumentID,
		signature.SwitchRequestID,
		signature.SignatureType,
		signature.TypedName,
		signature.DrawnImageChecksum,
		signature.DocumentChecksum,
		signature.SignedAt.UTC().Format(time.RFC3339Nano),
	}, "|")
}

func ComputeSignatureChecksum(signature *models.ESignature) string {
	return SHA256Hex([]byte(SignatureCanonicalPayload(signature)))
}
