package switchrequests

import (
	"context"
	"testing"
	"time"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/queries"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var switchRequestColumns = []string{
	"id", "patient_id", "current_agency_id", "new_agency_id", "status", "reason", "care_needs",
	"preferred_start_date", "reviewer_id", "decision_note", "submitted_at", "reviewed_at",
	"decided_at", "completed_at", "cancelled_at", "reminded_at", "created_at", "updated_at",
}

func newMockRepository(t *testing.T) (sqlmock.Sqlmock, *switchRequestPostgresRepository) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return mock, &switchRequestPostgresRepository{DB: db}
}

func switchRequestRow(status string, at time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(switchRequestColumns).AddRow(
		"sr-1", "patient-1", "", "agency-new", status, "moving closer to family", "", nil,
		"owner-1", "", at, at, at, at, nil, nil, at, at,
	)
}

func TestSwitchRequestRepository_CreateIsAtomic(t *testing.T) {
	mock, repo := newMockRepository(t)
	now := time.Now().UTC()
	sr := &models.SwitchRequest{ID: "sr-1", PatientID: "patient-1", NewAgencyID: "agency-new", Status: constvars.SwitchRequestStatusSubmitted}
	history := &models.SwitchRequestStatusHistory{ID: "h-1", SwitchRequestID: "sr-1", ToStatus: sr.Status, ActorID: "patient-1", CreatedAt: now}
	conversation := &models.Conversation{ID: "c-1", SwitchRequestID: "sr-1", PatientID: "patient-1", AgencyID: "agency-new", CreatedAt: now}

	mock.ExpectBegin()
	mock.ExpectExec(queries.InsertSwitchRequest).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(queries.InsertSwitchRequestStatusHistory).
		WithArgs("h-1", "sr-1", "", constvars.SwitchRequestStatusSubmitted, "patient-1", "", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(queries.InsertConversation).
		WithArgs("c-1", "sr-1", "patient-1", "agency-new", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), sr, history, conversation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSwitchRequestRepository_CreateOpenDuplicate(t *testing.T) {
	mock, repo := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(queries.InsertSwitchRequest).WillReturnError(&pq.Error{Code: pqUniqueViolation})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.SwitchRequest{ID: "sr-1"}, &models.SwitchRequestStatusHistory{}, &models.Conversation{})

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, 409, customErr.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSwitchRequestRepository_ApplyTransitionConflict(t *testing.T) {
	mock, repo := newMockRepository(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(queries.UpdateSwitchRequestStatusGuarded).
		WithArgs("sr-1", constvars.SwitchRequestStatusSubmitted, constvars.SwitchRequestStatusUnderReview, true, "staff-1", "", now).
		WillReturnRows(sqlmock.NewRows(switchRequestColumns))
	mock.ExpectRollback()

	_, err := repo.ApplyTransition(context.Background(), &models.SwitchRequestTransition{
		SwitchRequestID: "sr-1",
		FromStatus:      constvars.SwitchRequestStatusSubmitted,
		ToStatus:        constvars.SwitchRequestStatusUnderReview,
		ActorID:         "staff-1",
		At:              now,
		History:         &models.SwitchRequestStatusHistory{ID: "h-2"},
	})

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, 409, customErr.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSwitchRequestRepository_ApplyTransitionCompletedMovesPatient(t *testing.T) {
	mock, repo := newMockRepository(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(queries.UpdateSwitchRequestStatusGuarded).
		WithArgs("sr-1", constvars.SwitchRequestStatusAccepted, constvars.SwitchRequestStatusCompleted, true, "owner-1", "", now).
		WillReturnRows(switchRequestRow(constvars.SwitchRequestStatusCompleted, now))
	mock.ExpectExec(queries.InsertSwitchRequestStatusHistory).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(queries.UpdateProfileCurrentAgency).
		WithArgs("patient-1", "agency-new", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sr, err := repo.ApplyTransition(context.Background(), &models.SwitchRequestTransition{
		SwitchRequestID:       "sr-1",
		FromStatus:            constvars.SwitchRequestStatusAccepted,
		ToStatus:              constvars.SwitchRequestStatusCompleted,
		ActorID:               "owner-1",
		At:                    now,
		History:               &models.SwitchRequestStatusHistory{ID: "h-3", SwitchRequestID: "sr-1"},
		MovePatientToAgencyID: "agency-new",
		PatientID:             "patient-1",
	})
	require.NoError(t, err)
	assert.Equal(t, constvars.SwitchRequestStatusCompleted, sr.Status)
	assert.Equal(t, "owner-1", sr.ReviewerID)
	require.NotNil(t, sr.CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSwitchRequestRepository_FindAllScopes(t *testing.T) {
	mock, repo := newMockRepository(t)
	now := time.Now().UTC()

	mock.ExpectQuery(queries.CountSwitchRequests).
		WithArgs("", "", "staff-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(queries.GetAllSwitchRequests).
		WithArgs("", "", "staff-1", 10, 0).
		WillReturnRows(switchRequestRow(constvars.SwitchRequestStatusSubmitted, now))

	request := newFindAll(1, 10)
	request.MemberProfileID = "staff-1"
	items, total, err := repo.FindAll(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
