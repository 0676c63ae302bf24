package agencies

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/queries"

	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

type agencyPostgresRepository struct {
	DB *sql.DB
}

func NewAgencyPostgresRepository(db *sql.DB) contracts.AgencyRepository {
	return &agencyPostgresRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAgency(row rowScanner) (*models.Agency, error) {
	var agency models.Agency
	var services pq.StringArray
	err := row.Scan(
		&agency.ID,
		&agency.Name,
		&agency.LicenseNumber,
		&agency.LicenseState,
		&agency.Verified,
		&agency.VerifiedAt,
		&agency.Phone,
		&agency.Email,
		&agency.Address,
		&agency.City,
		&agency.State,
		&agency.ZipCode,
		&services,
		&agency.AcceptingPatients,
		&agency.Description,
		&agency.CreatedAt,
		&agency.UpdatedAt,
		&agency.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	agency.Services = []string(services)
	if agency.Services == nil {
		agency.Services = []string{}
	}
	return &agency, nil
}

// CreateWithOwner inserts the agency and its first owner in one transaction.
func (repo *agencyPostgresRepository) CreateWithOwner(ctx context.Context, agency *models.Agency, owner *models.AgencyMember) error {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBBeginTransaction(err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, queries.InsertAgency,
		agency.ID,
		agency.Name,
		agency.LicenseNumber,
		agency.LicenseState,
		agency.Phone,
		agency.Email,
		agency.Address,
		agency.City,
		agency.State,
		agency.ZipCode,
		pq.Array(agency.Services),
		agency.AcceptingPatients,
		agency.Description,
		agency.CreatedAt,
		agency.UpdatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}

	_, err = tx.ExecContext(ctx, queries.InsertAgencyMember,
		owner.ID,
		owner.AgencyID,
		owner.ProfileID,
		owner.Role,
		owner.CreatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBCommitTransaction(err)
	}
	return nil
}

func (repo *agencyPostgresRepository) FindByID(ctx context.Context, agencyID string) (*models.Agency, error) {
	agency, err := scanAgency(repo.DB.QueryRowContext(ctx, queries.GetAgencyByID, agencyID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return agency, nil
}

func (repo *agencyPostgresRepository) FindAll(ctx context.Context, request *requests.FindAllAgencies) ([]models.Agency, int, error) {
	filterArgs := []interface{}{request.Name, request.State, request.Service, request.OnlyVerified}

	var total int
	err := repo.DB.QueryRowContext(ctx, queries.CountAgencies, filterArgs...).Scan(&total)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetAllAgencies, append(filterArgs, request.PageSize, request.Offset())...)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	agencies := make([]models.Agency, 0)
	for rows.Next() {
		agency, err := scanAgency(rows)
		if err != nil {
			return nil, 0, exceptions.ErrPostgresDBFindData(err)
		}
		agencies = append(agencies, *agency)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return agencies, total, nil
}

func (repo *agencyPostgresRepository) Update(ctx context.Context, agency *models.Agency) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpdateAgency,
		agency.ID,
		agency.Name,
		agency.LicenseNumber,
		agency.LicenseState,
		agency.Phone,
		agency.Email,
		agency.Address,
		agency.City,
		agency.State,
		agency.ZipCode,
		pq.Array(agency.Services),
		agency.AcceptingPatients,
		agency.Description,
		agency.Verified,
		agency.VerifiedAt,
		agency.UpdatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *agencyPostgresRepository) SoftDelete(ctx context.Context, agencyID string, at time.Time) error {
	_, err := repo.DB.ExecContext(ctx, queries.SoftDeleteAgency, agencyID, at)
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	return nil
}

func (repo *agencyPostgresRepository) MarkVerified(ctx context.Context, agencyID string, at time.Time) error {
	_, err := repo.DB.ExecContext(ctx, queries.MarkAgencyVerified, agencyID, at)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
