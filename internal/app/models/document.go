package models

import "time"

type Document struct {
	ID              string     `json:"id"`
	SwitchRequestID string     `json:"switch_request_id"`
	UploadedBy      string     `json:"uploaded_by"`
	DocumentType    string     `json:"document_type"`
	FileName        string     `json:"file_name"`
	ContentType     string     `json:"content_type"`
	SizeBytes       int64      `json:"size_bytes"`
	StorageKey      string     `json:"-"`
	Checksum        string     `json:"checksum"`
	CreatedAt       time.Time  `json:"created_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

type ESignature struct {
	ID                 string    `json:"id"`
	SignerID           string    `json:"signer_id"`
	DocumentID         string    `json:"document_id,omitempty"`
	SwitchRequestID    string    `json:"switch_request_id"`
	SignatureType      string    `json:"signature_type"`
	TypedName          string    `json:"typed_name,omitempty"`
	DrawnImageKey      string    `json:"-"`
	DrawnImageChecksum string    `json:"drawn_image_checksum,omitempty"`
	DocumentChecksum   string    `json:"document_checksum,omitempty"`
	Checksum           string    `json:"checksum"`
	IPAddress          string    `json:"ip_address,omitempty"`
	UserAgent          string    `json:"user_agent,omitempty"`
	SignedAt           time.Time `json:"signed_at"`
}
