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

func (a *ClinicStoreAdapter) GetScheduleRules(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday) ([]domain.ScheduleRule, error) {
	a.logger.Info("clinicstore.schedule_rules.fetch", out.LogFields{
		"doctorId": doctorID,
		"weekday":  int(weekday),
	})

	query := nurl.Values{}
	query.Add("doctor_id", "eq."+doctorID.String())
	query.Add("day_of_week", fmt.Sprintf("eq.%d", int(weekday)))
	query.Add("is_active", "eq.true")

	req, err := a.newRequest(ctx, http.MethodGet, "schedule_rules", query.Encode())
	if err != nil {
		a.logger.Error("clinicstore.schedule_rules.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("clinicstore.schedule_rules.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("clinicstore.schedule_rules.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"status":   resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var rules []domain.ScheduleRule
	if err := json.NewDecoder(resp.Body).Decode(&rules); err != nil {
		a.logger.Error("clinicstore.schedule_rules.decode_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("clinicstore.schedule_rules.fetch_success", out.LogFields{
		"doctorId": doctorID,
		"count":    len(rules),
	})

	return rules, nil
}
