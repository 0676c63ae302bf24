package esignatures

import (
	"context"
	"database/sql"
	"errors"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/queries"

	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

type eSignaturePostgresRepository struct {
	DB *sql.DB
}

func NewESignaturePostgresRepository(db *sql.DB) contracts.ESignatureRepository {
	return &eSignaturePostgresRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanESignature(row rowScanner) (*models.ESignature, error) {
	var signature models.ESignature
	err := row.Scan(
		&signature.ID,
		&signature.SignerID,
		&signature.DocumentID,
		&signature.SwitchRequestID,
		&signature.SignatureType,
		&signature.TypedName,
		&signature.DrawnImageKey,
		&signature.DrawnImageChecksum,
		&signature.DocumentChecksum,
		&signature.Checksum,
		&signature.IPAddress,
		&signature.UserAgent,
		&signature.SignedAt,
	)
	if err != nil {
		return nil, err
	}
	return &signature, nil
}

func (repo *eSignaturePostgresRepository) Create(ctx context.Context, signature *models.ESignature) error {
	_, err := repo.DB.ExecContext(ctx, queries.InsertESignature,
		signature.ID,
		signature.SignerID,
		signature.DocumentID,
		signature.SwitchRequestID,
		signature.SignatureType,
		signature.TypedName,
		signature.DrawnImageKey,
		signature.DrawnImageChecksum,
		signature.DocumentChecksum,
		signature.Checksum,
		signature.IPAddress,
		signature.UserAgent,
		signature.SignedAt,
	)
	if err != nil {
		// Concurrent signers past ExistsForSigner land on the signer unique indexes.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			target := signature.SwitchRequestID
			if signature.DocumentID != "" {
				target = signature.DocumentID
			}
			return exceptions.ErrAlreadySigned(err, signature.SignerID, target)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *eSignaturePostgresRepository) FindByID(ctx context.Context, signatureID string) (*models.ESignature, error) {
	signature, err := scanESignature(repo.DB.QueryRowContext(ctx, queries.GetESignatureByID, signatureID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return signature, nil
}

func (repo *eSignaturePostgresRepository) FindAllBySwitchRequestID(ctx context.Context, switchRequestID string) ([]models.ESignature, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetESignaturesBySwitchRequestID, switchRequestID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	signatures := make([]models.ESignature, 0)
	for rows.Next() {
		signature, err := scanESignature(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		signatures = append(signatures, *signature)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return signatures, nil
}

// ExistsForSigner matches on document when documentID is set, otherwise on
// the bare switch request.
func (repo *eSignaturePostgresRepository) ExistsForSigner(ctx context.Context, signerID, documentID, switchRequestID string) (bool, error) {
	var exists bool
	err := repo.DB.QueryRowContext(ctx, queries.ExistsESignatureForSigner, signerID, documentID, switchRequestID).Scan(&exists)
	if err != nil {
		return false, exceptions.ErrPostgresDBFindData(err)
	}
	return exists, nil
}
