package esignatures

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/contracts/mocks"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type eSignatureFixture struct {
	signatures     *mocks.ESignatureRepository
	documents      *mocks.DocumentRepository
	members        *mocks.AgencyMemberRepository
	switchRequests *mocks.SwitchRequestUsecase
	storage        *mocks.StorageService
	notifications  *mocks.NotificationUsecase
	audit          *mocks.AuditLogUsecase
	uc             *eSignatureUsecase
}

func newESignatureFixture() *eSignatureFixture {
	f := &eSignatureFixture{
		signatures:     new(mocks.ESignatureRepository),
		documents:      new(mocks.DocumentRepository),
		members:        new(mocks.AgencyMemberRepository),
		switchRequests: new(mocks.SwitchRequestUsecase),
		storage:        new(mocks.StorageService),
		notifications:  new(mocks.NotificationUsecase),
		audit:          new(mocks.AuditLogUsecase),
	}
	cfg := &config.InternalConfig{}
	cfg.App.MinioPreSignedUrlObjectExpiryTimeInHours = 1
	f.uc = &eSignatureUsecase{
		ESignatureRepository:   f.signatures,
		DocumentRepository:     f.documents,
		AgencyMemberRepository: f.members,
		SwitchRequestUsecase:   f.switchRequests,
		StorageService:         f.storage,
		NotificationUsecase:    f.notifications,
		AuditLogUsecase:        f.audit,
		InternalConfig:         cfg,
		Log:                    zap.NewNop(),
	}
	f.audit.On("Record", mock.Anything, mock.Anything).Return()
	f.notifications.On("Notify", mock.Anything, mock.Anything).Return(nil)
	f.members.On("FindProfileIDsByAgencyID", mock.Anything, "agency-new").Return([]string{"owner-1"}, nil)
	return f
}

var (
	patientSession = &models.Session{ProfileID: "patient-1", Role: constvars.RolePatient, FullName: "Pat"}
	openRequest    = &models.SwitchRequest{ID: "sr-1", PatientID: "patient-1", NewAgencyID: "agency-new", Status: constvars.SwitchRequestStatusAccepted}
	pngBytes       = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
)

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, status, customErr.StatusCode)
}

func TestESignatureUsecase_SignTypedAgainstDocument(t *testing.T) {
	f := newESignatureFixture()
	document := &models.Document{ID: "doc-1", SwitchRequestID: "sr-1", Checksum: "doc-sum"}
	f.documents.On("FindByID", mock.Anything, "doc-1").Return(document, nil)
	f.switchRequests.On("LoadVisible", mock.Anything, patientSession, "sr-1").Return(openRequest, nil)
	f.signatures.On("ExistsForSigner", mock.Anything, "patient-1", "doc-1", "sr-1").Return(false, nil)

	var stored *models.ESignature
	f.signatures.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*models.ESignature)
	}).Return(nil)

	response, err := f.uc.Sign(context.Background(), patientSession, &requests.CreateESignature{
		DocumentID:    "doc-1",
		SignatureType: constvars.SignatureTypeTyped,
		TypedName:     "Pat Patient",
		Consent:       true,
		IPAddress:     "10.0.0.1",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, "sr-1", stored.SwitchRequestID)
	assert.Equal(t, "doc-sum", stored.DocumentChecksum)
	assert.Equal(t, utils.ComputeSignatureChecksum(stored), stored.Checksum)
	assert.Equal(t, stored.SignedAt, stored.SignedAt.Truncate(time.Microsecond))
	assert.Empty(t, response.DrawnImageURL)
	f.notifications.AssertCalled(t, "Notify", mock.Anything, mock.MatchedBy(func(n *requests.CreateNotification) bool {
		return n.Type == constvars.NotificationTypeSignatureCaptured && n.RecipientIDs[0] == "owner-1"
	}))
}

func TestESignatureUsecase_SignDrawnStoresImage(t *testing.T) {
	f := newESignatureFixture()
	f.switchRequests.On("LoadVisible", mock.Anything, patientSession, "sr-1").Return(openRequest, nil)
	f.signatures.On("ExistsForSigner", mock.Anything, "patient-1", "", "sr-1").Return(false, nil)
	f.storage.On("PutObject", mock.Anything, mock.Anything, int64(len(pngBytes)), constvars.MIMEImagePNG).Return(nil)
	f.storage.On("GetObjectUrlWithExpiryTime", mock.Anything, mock.Anything, time.Hour).Return("https://minio.local/sig.png", nil)
	f.signatures.On("Create", mock.Anything, mock.Anything).Return(nil)

	response, err := f.uc.Sign(context.Background(), patientSession, &requests.CreateESignature{
		SwitchRequestID: "sr-1",
		SignatureType:   constvars.SignatureTypeDrawn,
		DrawnImage:      constvars.DrawnSignatureDataPrefix + base64.StdEncoding.EncodeToString(pngBytes),
		Consent:         true,
	})
	require.NoError(t, err)
	assert.Equal(t, utils.SHA256Hex(pngBytes), response.DrawnImageChecksum)
	assert.Equal(t, "https://minio.local/sig.png", response.DrawnImageURL)
	assert.NotEmpty(t, response.DrawnImageKey)
}

func TestESignatureUsecase_SignRejections(t *testing.T) {
	tests := []struct {
		name       string
		request    *requests.CreateESignature
		sr         *models.SwitchRequest
		exists     bool
		wantStatus int
	}{
		{
			name:       "consent missing",
			request:    &requests.CreateESignature{SwitchRequestID: "sr-1", SignatureType: constvars.SignatureTypeTyped, TypedName: "Pat"},
			wantStatus: 400,
		},
		{
			name:       "closed request",
			request:    &requests.CreateESignature{SwitchRequestID: "sr-1", SignatureType: constvars.SignatureTypeTyped, TypedName: "Pat", Consent: true},
			sr:         &models.SwitchRequest{ID: "sr-1", PatientID: "patient-1", Status: constvars.SwitchRequestStatusDenied},
			wantStatus: 409,
		},
		{
			name:       "already signed",
			request:    &requests.CreateESignature{SwitchRequestID: "sr-1", SignatureType: constvars.SignatureTypeTyped, TypedName: "Pat", Consent: true},
			sr:         openRequest,
			exists:     true,
			wantStatus: 409,
		},
		{
			name:       "typed name missing",
			request:    &requests.CreateESignature{SwitchRequestID: "sr-1", SignatureType: constvars.SignatureTypeTyped, Consent: true},
			sr:         openRequest,
			wantStatus: 400,
		},
		{
			name:       "typed name with field separator",
			request:    &requests.CreateESignature{SwitchRequestID: "sr-1", SignatureType: constvars.SignatureTypeTyped, TypedName: "Pat|sr-2", Consent: true},
			sr:         openRequest,
			wantStatus: 400,
		},
		{
			name: "drawn image is not a png",
			request: &requests.CreateESignature{
				SwitchRequestID: "sr-1",
				SignatureType:   constvars.SignatureTypeDrawn,
				DrawnImage:      base64.StdEncoding.EncodeToString([]byte("GIF89a")),
				Consent:         true,
			},
			sr:         openRequest,
			wantStatus: 400,
		},
		{
			name: "drawn image is not base64",
			request: &requests.CreateESignature{
				SwitchRequestID: "sr-1",
				SignatureType:   constvars.SignatureTypeDrawn,
				DrawnImage:      "***",
				Consent:         true,
			},
			sr:         openRequest,
			wantStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newESignatureFixture()
			if tt.sr != nil {
				f.switchRequests.On("LoadVisible", mock.Anything, patientSession, "sr-1").Return(tt.sr, nil)
			}
			f.signatures.On("ExistsForSigner", mock.Anything, "patient-1", "", "sr-1").Return(tt.exists, nil)

			_, err := f.uc.Sign(context.Background(), patientSession, tt.request)
			requireStatus(t, err, tt.wantStatus)
			f.signatures.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.storage.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestESignatureUsecase_SignRemovesDrawnImageWhenInsertFails(t *testing.T) {
	f := newESignatureFixture()
	f.switchRequests.On("LoadVisible", mock.Anything, patientSession, "sr-1").Return(openRequest, nil)
	f.signatures.On("ExistsForSigner", mock.Anything, "patient-1", "", "sr-1").Return(false, nil)
	f.storage.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.storage.On("RemoveObject", mock.Anything, mock.Anything).Return(nil)
	f.signatures.On("Create", mock.Anything, mock.Anything).Return(exceptions.ErrPostgresDBInsertData(errors.New("boom")))

	_, err := f.uc.Sign(context.Background(), patientSession, &requests.CreateESignature{
		SwitchRequestID: "sr-1",
		SignatureType:   constvars.SignatureTypeDrawn,
		DrawnImage:      base64.StdEncoding.EncodeToString(pngBytes),
		Consent:         true,
	})
	requireStatus(t, err, 500)
	f.storage.AssertCalled(t, "RemoveObject", mock.Anything, mock.Anything)
}

func TestESignatureUsecase_Verify(t *testing.T) {
	signature := func() *models.ESignature {
		sig := &models.ESignature{
			ID:               "sig-1",
			SignerID:         "patient-1",
			DocumentID:       "doc-1",
			SwitchRequestID:  "sr-1",
			SignatureType:    constvars.SignatureTypeTyped,
			TypedName:        "Pat",
			DocumentChecksum: "doc-sum",
			SignedAt:         time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		}
		sig.Checksum = utils.ComputeSignatureChecksum(sig)
		return sig
	}

	tests := []struct {
		name          string
		mutate        func(*models.ESignature)
		document      *models.Document
		wantValid     bool
		wantMatches   bool
		wantUnchanged bool
	}{
		{"intact", func(*models.ESignature) {}, &models.Document{ID: "doc-1", Checksum: "doc-sum"}, true, true, true},
		{"tampered row", func(s *models.ESignature) { s.TypedName = "Someone Else" }, &models.Document{ID: "doc-1", Checksum: "doc-sum"}, false, false, true},
		{"document replaced", func(*models.ESignature) {}, &models.Document{ID: "doc-1", Checksum: "other"}, false, true, false},
		{"document gone", func(*models.ESignature) {}, nil, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newESignatureFixture()
			sig := signature()
			tt.mutate(sig)
			f.signatures.On("FindByID", mock.Anything, "sig-1").Return(sig, nil)
			f.switchRequests.On("LoadVisible", mock.Anything, patientSession, "sr-1").Return(openRequest, nil)
			f.documents.On("FindByID", mock.Anything, "doc-1").Return(tt.document, nil)

			result, err := f.uc.Verify(context.Background(), patientSession, "sig-1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Equal(t, tt.wantMatches, result.ChecksumMatches)
			assert.Equal(t, tt.wantUnchanged, result.DocumentUnchanged)
		})
	}
}

func TestESignatureUsecase_FindByIDChecksVisibility(t *testing.T) {
	f := newESignatureFixture()
	stranger := &models.Session{ProfileID: "patient-2", Role: constvars.RolePatient}
	f.signatures.On("FindByID", mock.Anything, "sig-1").Return(&models.ESignature{ID: "sig-1", SwitchRequestID: "sr-1"}, nil)
	f.switchRequests.On("LoadVisible", mock.Anything, stranger, "sr-1").Return(nil, exceptions.ErrRowAccessDenied(nil, "patient-2", constvars.AuditEntitySwitchRequest, "sr-1"))

	_, err := f.uc.FindByID(context.Background(), stranger, "sig-1")
	requireStatus(t, err, 403)

	f.signatures.On("FindByID", mock.Anything, "missing").Return(nil, nil)
	_, err = f.uc.FindByID(context.Background(), stranger, "missing")
	requireStatus(t, err, 404)
}
