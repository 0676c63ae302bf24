package requests

import "io"

type UploadDocument struct {
	SwitchRequestID string `validate:"required,uuid"`
	DocumentType    string `validate:"required,document_type"`
	FileName        string `validate:"required,max=255"`
	ContentType     string
	Size            int64
	File            io.Reader
}

type CreateESignature struct {
	DocumentID      string `json:"document_id" validate:"required_without=SwitchRequestID,omitempty,uuid"`
	SwitchRequestID string `json:"switch_request_id" validate:"required_without=DocumentID,omitempty,uuid"`
	SignatureType   string `json:"signature_type" validate:"required,oneof=typed drawn"`
	TypedName       string `json:"typed_name" validate:"required_if=SignatureType typed,max=200,signature_name"`
	DrawnImage      string `json:"drawn_image" validate:"required_if=SignatureType drawn"`
	Consent         bool   `json:"consent"`
	IPAddress       string `json:"-"`
	UserAgent       string `json:"-"`
}
