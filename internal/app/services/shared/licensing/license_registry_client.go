package licensing

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/exceptions"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const licenseLookupPath = "/v1/licenses"

type licenseRegistryClient struct {
	httpClient *resty.Client
	Log        *zap.Logger
}

// NewLicenseRegistryClient builds a client for the state licensing registry.
// Lookups are retried on transport errors and 5xx answers.
func NewLicenseRegistryClient(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.LicenseRegistryClient {
	registry := internalConfig.LicenseRegistry
	client := resty.New().
		SetBaseURL(strings.TrimRight(registry.BaseUrl, "/")).
		SetTimeout(time.Duration(registry.RequestTimeoutSeconds) * time.Second).
		SetRetryCount(registry.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader(constvars.HeaderAccept, constvars.MIMEApplicationJSON).
		SetHeader(constvars.HeaderXAPIKey, registry.ApiKey)

	return &licenseRegistryClient{
		httpClient: client,
		Log:        logger,
	}
}

// LookupLicense returns nil without an error when the registry does not know the license.
func (c *licenseRegistryClient) LookupLicense(ctx context.Context, licenseNumber, state string) (*models.LicenseRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("licenseRegistryClient.LookupLicense called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("number", licenseNumber).
		SetQueryParam("state", state).
		Get(licenseLookupPath)
	if err != nil {
		c.Log.Error("licenseRegistryClient.LookupLicense request failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrLicenseRegistryRequest(err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		c.Log.Info("licenseRegistryClient.LookupLicense license unknown",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, nil
	case resp.StatusCode() != http.StatusOK:
		err := fmt.Errorf("license registry answered %d", resp.StatusCode())
		c.Log.Error("licenseRegistryClient.LookupLicense unexpected status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode()),
		)
		return nil, exceptions.ErrLicenseRegistryRequest(err)
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return nil, exceptions.ErrLicenseRegistryRequest(fmt.Errorf("license registry returned invalid json"))
	}

	data := gjson.GetBytes(body, "data")
	record := &models.LicenseRecord{
		LicenseNumber: data.Get("license_number").String(),
		State:         strings.ToUpper(data.Get("state").String()),
		Status:        strings.ToLower(data.Get("status").String()),
		HolderName:    data.Get("holder_name").String(),
	}
	if expires := data.Get("expires_at"); expires.Exists() && expires.Type != gjson.Null {
		expiresAt, err := time.Parse(time.RFC3339, expires.String())
		if err == nil {
			record.ExpiresAt = &expiresAt
		}
	}

	c.Log.Info("licenseRegistryClient.LookupLicense succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return record, nil
}
