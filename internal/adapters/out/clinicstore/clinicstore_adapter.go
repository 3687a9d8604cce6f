package clinicstore

import (
	"context"
	"fmt"
	"net/http"

	"github.com/clinera/appointment-slots-service/internal/config"
	"github.com/clinera/appointment-slots-service/internal/core/ports/out"
)

// ClinicStoreAdapter talks to the managed backend's REST layer
// (PostgREST-style table endpoints with eq./lt./gt. filters). Row
// level policies on the backend side are its own concern; this
// adapter authenticates with the service key.
type ClinicStoreAdapter struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	serviceKey string
	logger     out.LoggerPort
}

func NewClinicStoreAdapter(cfg *config.Config, logger out.LoggerPort) *ClinicStoreAdapter {
	return &ClinicStoreAdapter{
		client:     &http.Client{Timeout: cfg.BackendTimeout()},
		baseURL:    cfg.Backend.URL,
		apiKey:     cfg.Backend.APIKey,
		serviceKey: cfg.Backend.ServiceKey,
		logger:     logger,
	}
}

func (a *ClinicStoreAdapter) newRequest(ctx context.Context, method, table, rawQuery string) (*http.Request, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", a.baseURL, table)
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}

	req.URL.RawQuery = rawQuery
	req.Header.Set("apikey", a.apiKey)
	req.Header.Set("Authorization", "Bearer "+a.serviceKey)
	req.Header.Set("Accept", "application/json")

	return req, nil
}
