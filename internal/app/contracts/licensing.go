package contracts

import (
	"context"

	"carelink-service/internal/app/models"
)

type LicenseRegistryClient interface {
	LookupLicense(ctx context.Context, licenseNumber, state string) (*models.LicenseRecord, error)
}
