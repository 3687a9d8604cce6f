package clinicstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	nurl "net/url"

	"github.com/google/uuid"

	"github.com/clinera/appointment-slots-service/internal/core/ports/out"
)

func (a *ClinicStoreAdapter) DoctorExists(ctx context.Context, doctorID uuid.UUID) (bool, error) {
	query := nurl.Values{}
	query.Add("id", "eq."+doctorID.String())
	query.Add("select", "id")

	req, err := a.newRequest(ctx, http.MethodGet, "doctors", query.Encode())
	if err != nil {
		return false, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("clinicstore.doctors.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("clinicstore.doctors.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"status":   resp.StatusCode,
		})
		return false, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var rows []struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return false, err
	}

	return len(rows) > 0, nil
}
