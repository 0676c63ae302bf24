package agencies

import (
	"context"
	"errors"
	"testing"
	"time"

	"carelink-service/internal/app/contracts"
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

type agencyFixture struct {
	agencies *mocks.AgencyRepository
	members  *mocks.AgencyMemberRepository
	profiles *mocks.ProfileRepository
	registry *mocks.LicenseRegistryClient
	guard    *mocks.AccessGuard
	audit    *mocks.AuditLogUsecase
	uc       contracts.AgencyUsecase
}

func newAgencyFixture() *agencyFixture {
	f := &agencyFixture{
		agencies: new(mocks.AgencyRepository),
		members:  new(mocks.AgencyMemberRepository),
		profiles: new(mocks.ProfileRepository),
		registry: new(mocks.LicenseRegistryClient),
		guard:    new(mocks.AccessGuard),
		audit:    new(mocks.AuditLogUsecase),
	}
	f.audit.On("Record", mock.Anything, mock.Anything).Return()
	f.uc = NewAgencyUsecase(f.agencies, f.members, f.profiles, f.registry, f.guard, f.audit, zap.NewNop())
	return f
}

var (
	adminSession   = &models.Session{ProfileID: "admin-1", Role: constvars.RoleAdmin}
	patientSession = &models.Session{ProfileID: "patient-1", Role: constvars.RolePatient}
	ownerSession   = &models.Session{ProfileID: "owner-1", Role: constvars.RoleAgency}
	staffSession   = &models.Session{ProfileID: "staff-1", Role: constvars.RoleAgency}
)

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, status, customErr.StatusCode)
}

func TestAgencyUsecase_FindAllHidesUnverified(t *testing.T) {
	f := newAgencyFixture()
	f.agencies.On("FindAll", mock.Anything, mock.Anything).Return([]models.Agency{}, 0, nil)

	_, _, err := f.uc.FindAll(context.Background(), patientSession, &requests.FindAllAgencies{})
	require.NoError(t, err)
	_, _, err = f.uc.FindAll(context.Background(), adminSession, &requests.FindAllAgencies{})
	require.NoError(t, err)

	calls := f.agencies.Calls
	require.Len(t, calls, 2)
	assert.True(t, calls[0].Arguments.Get(1).(*requests.FindAllAgencies).OnlyVerified)
	assert.False(t, calls[1].Arguments.Get(1).(*requests.FindAllAgencies).OnlyVerified)
}

func TestAgencyUsecase_FindByIDUnverified(t *testing.T) {
	f := newAgencyFixture()
	f.agencies.On("FindByID", mock.Anything, "a-1").Return(&models.Agency{ID: "a-1"}, nil)
	f.guard.On("Membership", mock.Anything, "a-1", "patient-1").Return(nil, nil)
	f.guard.On("Membership", mock.Anything, "a-1", "owner-1").Return(&models.AgencyMember{Role: constvars.MemberRoleOwner}, nil)

	_, err := f.uc.FindByID(context.Background(), patientSession, "a-1")
	requireStatus(t, err, 404)

	agency, err := f.uc.FindByID(context.Background(), ownerSession, "a-1")
	require.NoError(t, err)
	assert.Equal(t, "a-1", agency.ID)
}

func TestAgencyUsecase_CreateAgencyRoleOnly(t *testing.T) {
	f := newAgencyFixture()
	f.agencies.On("CreateWithOwner", mock.Anything, mock.Anything, mock.MatchedBy(func(m *models.AgencyMember) bool {
		return m.ProfileID == "owner-1" && m.Role == constvars.MemberRoleOwner
	})).Return(nil)

	_, err := f.uc.Create(context.Background(), patientSession, &requests.UpsertAgency{Name: "Nope"})
	requireStatus(t, err, 403)

	agency, err := f.uc.Create(context.Background(), ownerSession, &requests.UpsertAgency{Name: "Sunrise Care", LicenseState: "CA", State: "CA"})
	require.NoError(t, err)
	assert.True(t, agency.AcceptingPatients)
	assert.False(t, agency.Verified)
	assert.Equal(t, []string{}, agency.Services)
}

func TestAgencyUsecase_Verify(t *testing.T) {
	expired := time.Now().Add(-time.Hour)

	tests := []struct {
		name       string
		record     *models.LicenseRecord
		lookupErr  error
		wantStatus int
	}{
		{"active in state", &models.LicenseRecord{LicenseNumber: "HC-1", Status: "active", State: "CA"}, nil, 0},
		{"number differs only in case", &models.LicenseRecord{LicenseNumber: "hc-1", Status: "active", State: "CA"}, nil, 0},
		{"not found", nil, nil, 422},
		{"suspended", &models.LicenseRecord{LicenseNumber: "HC-1", Status: "suspended", State: "CA"}, nil, 422},
		{"other state", &models.LicenseRecord{LicenseNumber: "HC-1", Status: "active", State: "NV"}, nil, 422},
		{"expired", &models.LicenseRecord{LicenseNumber: "HC-1", Status: "active", State: "CA", ExpiresAt: &expired}, nil, 422},
		{"other license number", &models.LicenseRecord{LicenseNumber: "HC-2", Status: "active", State: "CA"}, nil, 422},
		{"missing license number", &models.LicenseRecord{Status: "active", State: "CA"}, nil, 422},
		{"registry unavailable", nil, exceptions.ErrLicenseRegistryRequest(errors.New("timeout")), 502},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAgencyFixture()
			f.agencies.On("FindByID", mock.Anything, "a-1").Return(&models.Agency{ID: "a-1", LicenseNumber: "HC-1", LicenseState: "CA"}, nil)
			f.registry.On("LookupLicense", mock.Anything, "HC-1", "CA").Return(tt.record, tt.lookupErr)
			f.agencies.On("MarkVerified", mock.Anything, "a-1", mock.Anything).Return(nil)

			agency, err := f.uc.Verify(context.Background(), adminSession, "a-1")
			if tt.wantStatus != 0 {
				requireStatus(t, err, tt.wantStatus)
				f.agencies.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.True(t, agency.Verified)
			assert.NotNil(t, agency.VerifiedAt)
		})
	}
}

func TestAgencyUsecase_VerifyAdminOnly(t *testing.T) {
	f := newAgencyFixture()

	_, err := f.uc.Verify(context.Background(), ownerSession, "a-1")
	requireStatus(t, err, 403)
	f.registry.AssertNotCalled(t, "LookupLicense", mock.Anything, mock.Anything, mock.Anything)
}

func TestAgencyUsecase_AddMemberRoleRules(t *testing.T) {
	f := newAgencyFixture()
	f.agencies.On("FindByID", mock.Anything, "a-1").Return(&models.Agency{ID: "a-1"}, nil)
	f.guard.On("Membership", mock.Anything, "a-1", "owner-1").Return(&models.AgencyMember{Role: constvars.MemberRoleOwner}, nil)
	f.guard.On("Membership", mock.Anything, "a-1", "staff-1").Return(&models.AgencyMember{Role: constvars.MemberRoleAdmin}, nil)
	f.profiles.On("FindByEmail", mock.Anything, "new@agency.com").Return(&models.Profile{ID: "p-new", Role: constvars.RoleAgency}, nil)
	f.profiles.On("FindByEmail", mock.Anything, "pat@example.com").Return(&models.Profile{ID: "p-pat", Role: constvars.RolePatient}, nil)
	f.members.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.AddMember(context.Background(), staffSession, "a-1", &requests.AddAgencyMember{Email: "new@agency.com", Role: constvars.MemberRoleAdmin})
	requireStatus(t, err, 403)

	member, err := f.uc.AddMember(context.Background(), staffSession, "a-1", &requests.AddAgencyMember{Email: "new@agency.com", Role: constvars.MemberRoleStaff})
	require.NoError(t, err)
	assert.Equal(t, "p-new", member.ProfileID)

	_, err = f.uc.AddMember(context.Background(), ownerSession, "a-1", &requests.AddAgencyMember{Email: "pat@example.com", Role: constvars.MemberRoleStaff})
	requireStatus(t, err, 400)
}

func TestAgencyUsecase_RemoveLastOwner(t *testing.T) {
	f := newAgencyFixture()
	f.guard.On("Membership", mock.Anything, "a-1", "owner-1").Return(&models.AgencyMember{Role: constvars.MemberRoleOwner}, nil)
	f.members.On("FindByID", mock.Anything, "m-1").Return(&models.AgencyMember{ID: "m-1", AgencyID: "a-1", Role: constvars.MemberRoleOwner}, nil)
	f.members.On("FindByID", mock.Anything, "m-other").Return(&models.AgencyMember{ID: "m-other", AgencyID: "a-2"}, nil)
	f.members.On("DeleteUnlessLastOwner", mock.Anything, "a-1", "m-1").Return(false, nil)

	err := f.uc.RemoveMember(context.Background(), ownerSession, "a-1", "m-1")
	requireStatus(t, err, 409)

	err = f.uc.RemoveMember(context.Background(), ownerSession, "a-1", "m-other")
	requireStatus(t, err, 404)
}
