package clinicstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	nurl "net/url"
	"time"

	"github.com/google/uuid"

	"github.com/clinera/appointment-slots-service/internal/core/domain"
	"github.com/clinera/appointment-slots-service/internal/core/ports/out"
)

func (a *ClinicStoreAdapter) GetBlockedIntervals(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]domain.BlockedInterval, error) {
	a.logger.Info("clinicstore.blocked_intervals.fetch", out.LogFields{
		"doctorId": doctorID,
	})

	// Overlap with [from, to): block starts before the span ends and
	// ends after the span starts.
	query := nurl.Values{}
	query.Add("doctor_id", "eq."+doctorID.String())
	query.Add("start_datetime", "lt."+to.Format(time.RFC3339))
	query.Add("end_datetime", "gt."+from.Format(time.RFC3339))

	req, err := a.newRequest(ctx, http.MethodGet, "blocked_intervals", query.Encode())
	if err != nil {
		a.logger.Error("clinicstore.blocked_intervals.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("clinicstore.blocked_intervals.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("clinicstore.blocked_intervals.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"status":   resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var blocks []domain.BlockedInterval
	if err := json.NewDecoder(resp.Body).Decode(&blocks); err != nil {
		a.logger.Error("clinicstore.blocked_intervals.decode_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("clinicstore.blocked_intervals.fetch_success", out.LogFields{
		"doctorId": doctorID,
		"count":    len(blocks),
	})

	return blocks, nil
}
