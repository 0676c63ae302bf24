package agencies

import (
	"context"
	"errors"
	"testing"
	"time"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/queries"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var agencyColumns = []string{
	"id", "name", "license_number", "license_state", "verified", "verified_at", "phone", "email",
	"address", "city", "state", "zip_code", "services", "accepting_patients", "description",
	"created_at", "updated_at", "deleted_at",
}

func newMockDB(t *testing.T) (sqlmock.Sqlmock, *agencyPostgresRepository, *agencyMemberPostgresRepository) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return mock, &agencyPostgresRepository{DB: db}, &agencyMemberPostgresRepository{DB: db}
}

func TestAgencyRepository_CreateWithOwnerCommits(t *testing.T) {
	mock, repo, _ := newMockDB(t)
	now := time.Now().UTC()
	agency := &models.Agency{ID: "a-1", Name: "Sunrise Care", LicenseNumber: "HC-1", LicenseState: "CA", State: "CA", Services: []string{"nursing"}}
	agency.CreatedAt, agency.UpdatedAt = now, now
	owner := &models.AgencyMember{ID: "m-1", AgencyID: "a-1", ProfileID: "p-1", Role: "owner", CreatedAt: now}

	mock.ExpectBegin()
	mock.ExpectExec(queries.InsertAgency).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(queries.InsertAgencyMember).
		WithArgs("m-1", "a-1", "p-1", "owner", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateWithOwner(context.Background(), agency, owner))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyRepository_CreateWithOwnerRollsBack(t *testing.T) {
	mock, repo, _ := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(queries.InsertAgency).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(queries.InsertAgencyMember).WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	err := repo.CreateWithOwner(context.Background(), &models.Agency{ID: "a-1"}, &models.AgencyMember{ID: "m-1"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyRepository_FindAllOnlyVerified(t *testing.T) {
	mock, repo, _ := newMockDB(t)
	now := time.Now().UTC()
	request := &requests.FindAllAgencies{
		Pagination:   requests.Pagination{Page: 1, PageSize: 10},
		State:        "CA",
		OnlyVerified: true,
	}

	mock.ExpectQuery(queries.CountAgencies).
		WithArgs("", "CA", "", true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(queries.GetAllAgencies).
		WithArgs("", "CA", "", true, 10, 0).
		WillReturnRows(sqlmock.NewRows(agencyColumns).AddRow(
			"a-1", "Sunrise Care", "HC-1", "CA", true, now, "", "", "", "", "CA", "",
			"{nursing,therapy}", true, "", now, now, nil,
		))

	agencies, total, err := repo.FindAll(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, agencies, 1)
	assert.Equal(t, []string{"nursing", "therapy"}, agencies[0].Services)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyMemberRepository_CreateDuplicate(t *testing.T) {
	mock, _, members := newMockDB(t)

	mock.ExpectExec(queries.InsertAgencyMember).WillReturnError(&pq.Error{Code: pqUniqueViolation})

	err := members.Create(context.Background(), &models.AgencyMember{ID: "m-2", AgencyID: "a-1", ProfileID: "p-2"})

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, 400, customErr.StatusCode)
}

func TestAgencyMemberRepository_DeleteUnlessLastOwner(t *testing.T) {
	tests := []struct {
		name        string
		affected    int64
		wantRemoved bool
	}{
		{name: "last owner kept", affected: 0, wantRemoved: false},
		{name: "member removed", affected: 1, wantRemoved: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, _, members := newMockDB(t)

			mock.ExpectBegin()
			mock.ExpectQuery(queries.LockAgencyForMemberChange).
				WithArgs("a-1").
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a-1"))
			mock.ExpectExec(queries.DeleteAgencyMemberUnlessLastOwner).
				WithArgs("m-1", "a-1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			mock.ExpectCommit()

			removed, err := members.DeleteUnlessLastOwner(context.Background(), "a-1", "m-1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantRemoved, removed)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAgencyMemberRepository_DeleteUnlessLastOwnerMissingAgency(t *testing.T) {
	mock, _, members := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(queries.LockAgencyForMemberChange).
		WithArgs("a-9").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	removed, err := members.DeleteUnlessLastOwner(context.Background(), "a-9", "m-1")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyMemberRepository_DeleteUnlessLastOwnerRollsBackOnError(t *testing.T) {
	mock, _, members := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(queries.LockAgencyForMemberChange).
		WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a-1"))
	mock.ExpectExec(queries.DeleteAgencyMemberUnlessLastOwner).
		WithArgs("m-1", "a-1").
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	_, err := members.DeleteUnlessLastOwner(context.Background(), "a-1", "m-1")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
