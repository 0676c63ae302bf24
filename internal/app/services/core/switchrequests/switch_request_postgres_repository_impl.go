package switchrequests

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/queries"

	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

type switchRequestPostgresRepository struct {
	DB *sql.DB
}

func NewSwitchRequestPostgresRepository(db *sql.DB) contracts.SwitchRequestRepository {
	return &switchRequestPostgresRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSwitchRequest(row rowScanner) (*models.SwitchRequest, error) {
	var sr models.SwitchRequest
	err := row.Scan(
		&sr.ID,
		&sr.PatientID,
		&sr.CurrentAgencyID,
		&sr.NewAgencyID,
		&sr.Status,
		&sr.Reason,
		&sr.CareNeeds,
		&sr.PreferredStartDate,
		&sr.ReviewerID,
		&sr.DecisionNote,
		&sr.SubmittedAt,
		&sr.ReviewedAt,
		&sr.DecidedAt,
		&sr.CompletedAt,
		&sr.CancelledAt,
		&sr.RemindedAt,
		&sr.CreatedAt,
		&sr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func collectSwitchRequests(rows *sql.Rows) ([]models.SwitchRequest, error) {
	switchRequests := make([]models.SwitchRequest, 0)
	for rows.Next() {
		sr, err := scanSwitchRequest(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		switchRequests = append(switchRequests, *sr)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return switchRequests, nil
}

func insertHistory(ctx context.Context, tx *sql.Tx, history *models.SwitchRequestStatusHistory) error {
	_, err := tx.ExecContext(ctx, queries.InsertSwitchRequestStatusHistory,
		history.ID,
		history.SwitchRequestID,
		history.FromStatus,
		history.ToStatus,
		history.ActorID,
		history.Note,
		history.CreatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *switchRequestPostgresRepository) Create(ctx context.Context, sr *models.SwitchRequest, history *models.SwitchRequestStatusHistory, conversation *models.Conversation) error {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBBeginTransaction(err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, queries.InsertSwitchRequest,
		sr.ID,
		sr.PatientID,
		sr.CurrentAgencyID,
		sr.NewAgencyID,
		sr.Status,
		sr.Reason,
		sr.CareNeeds,
		sr.PreferredStartDate,
		sr.SubmittedAt,
		sr.CreatedAt,
		sr.UpdatedAt,
	)
	if err != nil {
		// The partial unique index on open requests catches the race the
		// usecase pre-check cannot.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return exceptions.ErrOpenSwitchRequestExists(err, sr.PatientID, sr.NewAgencyID)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}

	if err := insertHistory(ctx, tx, history); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, queries.InsertConversation,
		conversation.ID,
		conversation.SwitchRequestID,
		conversation.PatientID,
		conversation.AgencyID,
		conversation.CreatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBCommitTransaction(err)
	}
	return nil
}

func (repo *switchRequestPostgresRepository) FindByID(ctx context.Context, switchRequestID string) (*models.SwitchRequest, error) {
	sr, err := scanSwitchRequest(repo.DB.QueryRowContext(ctx, queries.GetSwitchRequestByID, switchRequestID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return sr, nil
}

func (repo *switchRequestPostgresRepository) FindAll(ctx context.Context, request *requests.FindAllSwitchRequests) ([]models.SwitchRequest, int, error) {
	filterArgs := []interface{}{request.Status, request.PatientID, request.MemberProfileID}

	var total int
	err := repo.DB.QueryRowContext(ctx, queries.CountSwitchRequests, filterArgs...).Scan(&total)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetAllSwitchRequests, append(filterArgs, request.PageSize, request.Offset())...)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	switchRequests, err := collectSwitchRequests(rows)
	if err != nil {
		return nil, 0, err
	}
	return switchRequests, total, nil
}

func (repo *switchRequestPostgresRepository) ExistsOpenForAgency(ctx context.Context, patientID, newAgencyID string) (bool, error) {
	var exists bool
	err := repo.DB.QueryRowContext(ctx, queries.ExistsOpenSwitchRequestForAgency, patientID, newAgencyID).Scan(&exists)
	if err != nil {
		return false, exceptions.ErrPostgresDBFindData(err)
	}
	return exists, nil
}

// ApplyTransition runs the guarded status update, the history insert and,
// when requested, the patient's agency move in a single transaction.
func (repo *switchRequestPostgresRepository) ApplyTransition(ctx context.Context, transition *models.SwitchRequestTransition) (*models.SwitchRequest, error) {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, exceptions.ErrPostgresDBBeginTransaction(err)
	}
	defer tx.Rollback()

	setReviewer := transition.ToStatus != constvars.SwitchRequestStatusCancelled
	sr, err := scanSwitchRequest(tx.QueryRowContext(ctx, queries.UpdateSwitchRequestStatusGuarded,
		transition.SwitchRequestID,
		transition.FromStatus,
		transition.ToStatus,
		setReviewer,
		transition.ActorID,
		transition.Note,
		transition.At,
	))
	if err == sql.ErrNoRows {
		return nil, exceptions.ErrSwitchRequestStatusConflict(err, transition.SwitchRequestID, transition.FromStatus)
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBUpdateData(err)
	}

	if transition.History != nil {
		if err := insertHistory(ctx, tx, transition.History); err != nil {
			return nil, err
		}
	}

	if transition.MovePatientToAgencyID != "" {
		_, err = tx.ExecContext(ctx, queries.UpdateProfileCurrentAgency,
			transition.PatientID,
			transition.MovePatientToAgencyID,
			transition.At,
		)
		if err != nil {
			return nil, exceptions.ErrPostgresDBUpdateData(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, exceptions.ErrPostgresDBCommitTransaction(err)
	}
	return sr, nil
}

func (repo *switchRequestPostgresRepository) FindHistory(ctx context.Context, switchRequestID string) ([]models.SwitchRequestStatusHistory, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetSwitchRequestHistory, switchRequestID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	history := make([]models.SwitchRequestStatusHistory, 0)
	for rows.Next() {
		var h models.SwitchRequestStatusHistory
		err := rows.Scan(&h.ID, &h.SwitchRequestID, &h.FromStatus, &h.ToStatus, &h.ActorID, &h.Note, &h.CreatedAt)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return history, nil
}

func (repo *switchRequestPostgresRepository) FindStaleSubmitted(ctx context.Context, submittedBefore time.Time, limit int) ([]models.SwitchRequest, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetStaleSubmittedSwitchRequests, submittedBefore, limit)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	return collectSwitchRequests(rows)
}

func (repo *switchRequestPostgresRepository) MarkReminded(ctx context.Context, switchRequestID string, at time.Time) error {
	_, err := repo.DB.ExecContext(ctx, queries.MarkSwitchRequestReminded, switchRequestID, at)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}
