package responses

import (
	"time"

	"carelink-service/internal/app/models"
)

type Document struct {
	*models.Document
	DownloadURL       string     `json:"download_url,omitempty"`
	DownloadExpiresAt *time.Time `json:"download_expires_at,omitempty"`
}

type ESignature struct {
	*models.ESignature
	DrawnImageURL string `json:"drawn_image_url,omitempty"`
}

type ESignatureVerification struct {
	SignatureID         string `json:"signature_id"`
	Valid               bool   `json:"valid"`
	ChecksumMatches     bool   `json:"checksum_matches"`
	DocumentUnchanged   bool   `json:"document_unchanged"`
	StoredChecksum      string `json:"stored_checksum"`
	RecomputedChecksum  string `json:"recomputed_checksum"`
	CurrentDocumentHash string `json:"current_document_checksum,omitempty"`
}
