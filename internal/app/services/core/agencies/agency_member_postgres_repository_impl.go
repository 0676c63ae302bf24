package agencies

import (
	"context"
	"database/sql"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/queries"
)

type agencyMemberPostgresRepository struct {
	DB *sql.DB
}

func NewAgencyMemberPostgresRepository(db *sql.DB) contracts.AgencyMemberRepository {
	return &agencyMemberPostgresRepository{
		DB: db,
	}
}

func scanAgencyMember(row rowScanner) (*models.AgencyMember, error) {
	var member models.AgencyMember
	err := row.Scan(
		&member.ID,
		&member.AgencyID,
		&member.ProfileID,
		&member.Role,
		&member.Email,
		&member.FullName,
		&member.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (repo *agencyMemberPostgresRepository) Create(ctx context.Context, member *models.AgencyMember) error {
	_, err := repo.DB.ExecContext(ctx, queries.InsertAgencyMember,
		member.ID,
		member.AgencyID,
		member.ProfileID,
		member.Role,
		member.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return exceptions.ErrMemberAlreadyExists(err, member.ProfileID, member.AgencyID)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *agencyMemberPostgresRepository) FindByID(ctx context.Context, memberID string) (*models.AgencyMember, error) {
	member, err := scanAgencyMember(repo.DB.QueryRowContext(ctx, queries.GetAgencyMemberByID, memberID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return member, nil
}

func (repo *agencyMemberPostgresRepository) FindMembership(ctx context.Context, agencyID, profileID string) (*models.AgencyMember, error) {
	member, err := scanAgencyMember(repo.DB.QueryRowContext(ctx, queries.GetAgencyMembership, agencyID, profileID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return member, nil
}

func (repo *agencyMemberPostgresRepository) FindAllByAgencyID(ctx context.Context, agencyID string) ([]models.AgencyMember, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetAgencyMembersByAgencyID, agencyID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	members := make([]models.AgencyMember, 0)
	for rows.Next() {
		member, err := scanAgencyMember(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		members = append(members, *member)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return members, nil
}

func (repo *agencyMemberPostgresRepository) FindProfileIDsByAgencyID(ctx context.Context, agencyID string) ([]string, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetAgencyMemberProfileIDs, agencyID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	profileIDs := make([]string, 0)
	for rows.Next() {
		var profileID string
		if err := rows.Scan(&profileID); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		profileIDs = append(profileIDs, profileID)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return profileIDs, nil
}

// DeleteUnlessLastOwner holds the agency row lock for the duration of the
// delete so two removals cannot both pass the owner count.
func (repo *agencyMemberPostgresRepository) DeleteUnlessLastOwner(ctx context.Context, agencyID, memberID string) (bool, error) {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, exceptions.ErrPostgresDBBeginTransaction(err)
	}
	defer tx.Rollback()

	var lockedID string
	err = tx.QueryRowContext(ctx, queries.LockAgencyForMemberChange, agencyID).Scan(&lockedID)
	if err == sql.ErrNoRows {
		return false, nil
	} else if err != nil {
		return false, exceptions.ErrPostgresDBFindData(err)
	}

	result, err := tx.ExecContext(ctx, queries.DeleteAgencyMemberUnlessLastOwner, memberID, agencyID)
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}

	if err := tx.Commit(); err != nil {
		return false, exceptions.ErrPostgresDBCommitTransaction(err)
	}
	return affected > 0, nil
}
