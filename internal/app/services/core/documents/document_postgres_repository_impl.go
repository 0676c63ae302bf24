package documents

import (
	"context"
	"database/sql"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/queries"
)

type documentPostgresRepository struct {
	DB *sql.DB
}

func NewDocumentPostgresRepository(db *sql.DB) contracts.DocumentRepository {
	return &documentPostgresRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var document models.Document
	err := row.Scan(
		&document.ID,
		&document.SwitchRequestID,
		&document.UploadedBy,
		&document.DocumentType,
		&document.FileName,
		&document.ContentType,
		&document.SizeBytes,
		&document.StorageKey,
		&document.Checksum,
		&document.CreatedAt,
		&document.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &document, nil
}

func (repo *documentPostgresRepository) Create(ctx context.Context, document *models.Document) error {
	_, err := repo.DB.ExecContext(ctx, queries.InsertDocument,
		document.ID,
		document.SwitchRequestID,
		document.UploadedBy,
		document.DocumentType,
		document.FileName,
		document.ContentType,
		document.SizeBytes,
		document.StorageKey,
		document.Checksum,
		document.CreatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *documentPostgresRepository) FindByID(ctx context.Context, documentID string) (*models.Document, error) {
	document, err := scanDocument(repo.DB.QueryRowContext(ctx, queries.GetDocumentByID, documentID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return document, nil
}

func (repo *documentPostgresRepository) FindAllBySwitchRequestID(ctx context.Context, switchRequestID string) ([]models.Document, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetDocumentsBySwitchRequestID, switchRequestID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	documents := make([]models.Document, 0)
	for rows.Next() {
		document, err := scanDocument(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		documents = append(documents, *document)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return documents, nil
}

// SoftDeleteIfUnsigned checks for referencing signatures in the same
// statement as the delete, so a signature captured concurrently wins.
func (repo *documentPostgresRepository) SoftDeleteIfUnsigned(ctx context.Context, documentID string, at time.Time) (bool, error) {
	result, err := repo.DB.ExecContext(ctx, queries.SoftDeleteDocumentIfUnsigned, documentID, at)
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	return affected > 0, nil
}
