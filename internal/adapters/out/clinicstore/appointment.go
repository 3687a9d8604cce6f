package clinicstore

import (
	"bytes"
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

func (a *ClinicStoreAdapter) GetAppointments(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]domain.Appointment, error) {
	a.logger.Info("clinicstore.appointments.fetch", out.LogFields{
		"doctorId": doctorID,
		"date":     date.Format("2006-01-02"),
	})

	query := nurl.Values{}
	query.Add("doctor_id", "eq."+doctorID.String())
	query.Add("appointment_date", "eq."+date.Format("2006-01-02"))
	query.Add("status", "neq.cancelled")

	req, err := a.newRequest(ctx, http.MethodGet, "appointments", query.Encode())
	if err != nil {
		a.logger.Error("clinicstore.appointments.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("clinicstore.appointments.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("clinicstore.appointments.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"status":   resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var appointments []domain.Appointment
	if err := json.NewDecoder(resp.Body).Decode(&appointments); err != nil {
		a.logger.Error("clinicstore.appointments.decode_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("clinicstore.appointments.fetch_success", out.LogFields{
		"doctorId": doctorID,
		"count":    len(appointments),
	})

	return appointments, nil
}

func (a *ClinicStoreAdapter) CreateAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	a.logger.Info("clinicstore.appointments.create", out.LogFields{
		"doctorId": appointment.DoctorID,
		"date":     appointment.Date.Date.Format("2006-01-02"),
		"start":    appointment.StartTime.String(),
	})

	body, err := json.Marshal(appointment)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/rest/v1/appointments", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", a.apiKey)
	req.Header.Set("Authorization", "Bearer "+a.serviceKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("clinicstore.appointments.create_failed", out.LogFields{
			"doctorId": appointment.DoctorID,
			"error":    err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	// The backend enforces uniqueness on (doctor, date, start time)
	// among non-cancelled rows; a lost booking race comes back 409.
	if resp.StatusCode == http.StatusConflict {
		a.logger.Info("clinicstore.appointments.create_conflict", out.LogFields{
			"doctorId": appointment.DoctorID,
			"start":    appointment.StartTime.String(),
		})
		return nil, fmt.Errorf("%w: %s", domain.ErrSlotTaken, appointment.StartTime)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		a.logger.Error("clinicstore.appointments.create_failed", out.LogFields{
			"doctorId": appointment.DoctorID,
			"status":   resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var created []domain.Appointment
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		a.logger.Error("clinicstore.appointments.create_decode_failed", out.LogFields{
			"doctorId": appointment.DoctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	if len(created) == 0 {
		return nil, fmt.Errorf("empty create response")
	}

	a.logger.Debug("clinicstore.appointments.create_success", out.LogFields{
		"appointmentId": created[0].ID,
	})

	return &created[0], nil
}
