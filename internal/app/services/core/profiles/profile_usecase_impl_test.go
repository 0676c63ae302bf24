package profiles

import (
	"context"
	"testing"

	"carelink-service/internal/app/contracts/mocks"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProfileUsecase_UpdateMe(t *testing.T) {
	repo := new(mocks.ProfileRepository)
	audit := new(mocks.AuditLogUsecase)
	uc := NewProfileUsecase(repo, audit, zap.NewNop())
	session := &models.Session{ProfileID: "p-1", Role: constvars.RolePatient}

	repo.On("FindByID", mock.Anything, "p-1").Return(&models.Profile{ID: "p-1", FullName: "Old"}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
		return p.FullName == "New Name" && p.DateOfBirth != nil && p.DateOfBirth.Year() == 1950
	})).Return(nil)
	audit.On("Record", mock.Anything, mock.MatchedBy(func(e *models.AuditLog) bool {
		return e.Action == constvars.AuditActionUpdate && e.EntityID == "p-1"
	})).Return()

	profile, err := uc.UpdateMe(context.Background(), session, &requests.UpdateProfile{
		FullName:    "New Name",
		DateOfBirth: "1950-04-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", profile.FullName)
	repo.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestProfileUsecase_FindByIDAccess(t *testing.T) {
	repo := new(mocks.ProfileRepository)
	uc := NewProfileUsecase(repo, new(mocks.AuditLogUsecase), zap.NewNop())
	repo.On("FindByID", mock.Anything, "p-2").Return(&models.Profile{ID: "p-2"}, nil)

	tests := []struct {
		name       string
		session    *models.Session
		wantStatus int
	}{
		{"self", &models.Session{ProfileID: "p-2", Role: constvars.RolePatient}, 0},
		{"admin", &models.Session{ProfileID: "admin-1", Role: constvars.RoleAdmin}, 0},
		{"stranger", &models.Session{ProfileID: "p-3", Role: constvars.RoleAgency}, 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := uc.FindByID(context.Background(), tt.session, "p-2")
			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.Equal(t, "p-2", profile.ID)
				return
			}
			var customErr *exceptions.CustomError
			require.ErrorAs(t, err, &customErr)
			assert.Equal(t, tt.wantStatus, customErr.StatusCode)
		})
	}
}

func TestProfileUsecase_GetMeMissing(t *testing.T) {
	repo := new(mocks.ProfileRepository)
	uc := NewProfileUsecase(repo, new(mocks.AuditLogUsecase), zap.NewNop())
	repo.On("FindByID", mock.Anything, "p-9").Return(nil, nil)

	_, err := uc.GetMe(context.Background(), &models.Session{ProfileID: "p-9"})

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, 404, customErr.StatusCode)
}

func TestProfileUsecase_FindAllAdminOnly(t *testing.T) {
	repo := new(mocks.ProfileRepository)
	uc := NewProfileUsecase(repo, new(mocks.AuditLogUsecase), zap.NewNop())

	_, _, err := uc.FindAll(context.Background(), &models.Session{ProfileID: "p-1", Role: constvars.RolePatient}, &requests.FindAllProfiles{})
	require.Error(t, err)
	repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}
