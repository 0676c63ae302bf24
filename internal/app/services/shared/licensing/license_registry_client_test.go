package licensing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"carelink-service/internal/app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) *licenseRegistryClient {
	cfg := &config.InternalConfig{}
	cfg.LicenseRegistry.BaseUrl = baseURL
	cfg.LicenseRegistry.ApiKey = "registry-key"
	cfg.LicenseRegistry.RequestTimeoutSeconds = 2
	cfg.LicenseRegistry.RetryCount = 1
	return NewLicenseRegistryClient(cfg, zap.NewNop()).(*licenseRegistryClient)
}

func TestLicenseRegistryClient_LookupLicense(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/licenses", r.URL.Path)
		assert.Equal(t, "registry-key", r.Header.Get("X-API-Key"))

		switch r.URL.Query().Get("number") {
		case "HC-100":
			assert.Equal(t, "TX", r.URL.Query().Get("state"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":{"license_number":"HC-100","state":"tx","status":"ACTIVE","holder_name":"Sunrise Home Care","expires_at":"2099-01-01T00:00:00Z"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	record, err := client.LookupLicense(context.Background(), "HC-100", "TX")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "TX", record.State)
	assert.Equal(t, "active", record.Status)
	assert.Equal(t, "Sunrise Home Care", record.HolderName)
	assert.True(t, record.IsActive())

	missing, err := client.LookupLicense(context.Background(), "HC-404", "TX")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLicenseRegistryClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).LookupLicense(context.Background(), "HC-100", "TX")

	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
