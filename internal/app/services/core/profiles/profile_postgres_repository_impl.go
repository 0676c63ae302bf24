package profiles

import (
	"context"
	"database/sql"
	"errors"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/queries"

	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

type profilePostgresRepository struct {
	DB *sql.DB
}

func NewProfilePostgresRepository(db *sql.DB) contracts.ProfileRepository {
	return &profilePostgresRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var profile models.Profile
	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&profile.PasswordHash,
		&profile.FullName,
		&profile.Phone,
		&profile.Role,
		&profile.DateOfBirth,
		&profile.Address,
		&profile.CurrentAgencyID,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&profile.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (repo *profilePostgresRepository) Create(ctx context.Context, profile *models.Profile) error {
	_, err := repo.DB.ExecContext(ctx, queries.InsertProfile,
		profile.ID,
		profile.Email,
		profile.PasswordHash,
		profile.FullName,
		profile.Phone,
		profile.Role,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return exceptions.ErrEmailAlreadyExist(err)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *profilePostgresRepository) FindByID(ctx context.Context, profileID string) (*models.Profile, error) {
	profile, err := scanProfile(repo.DB.QueryRowContext(ctx, queries.GetProfileByID, profileID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return profile, nil
}

func (repo *profilePostgresRepository) FindByIDs(ctx context.Context, profileIDs []string) ([]models.Profile, error) {
	if len(profileIDs) == 0 {
		return []models.Profile{}, nil
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetProfilesByIDs, pq.Array(profileIDs))
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	return collectProfiles(rows)
}

func (repo *profilePostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	profile, err := scanProfile(repo.DB.QueryRowContext(ctx, queries.GetProfileByEmail, email))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return profile, nil
}

func (repo *profilePostgresRepository) FindAll(ctx context.Context, request *requests.FindAllProfiles) ([]models.Profile, int, error) {
	var total int
	err := repo.DB.QueryRowContext(ctx, queries.CountProfiles, request.Role).Scan(&total)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetAllProfiles, request.Role, request.PageSize, request.Offset())
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	profiles, err := collectProfiles(rows)
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (repo *profilePostgresRepository) Update(ctx context.Context, profile *models.Profile) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpdateProfile,
		profile.ID,
		profile.FullName,
		profile.Phone,
		profile.DateOfBirth,
		profile.Address,
		profile.UpdatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func collectProfiles(rows *sql.Rows) ([]models.Profile, error) {
	profiles := make([]models.Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return profiles, nil
}
