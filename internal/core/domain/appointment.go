package domain

import (
	"github.com/google/uuid"

	"github.com/clinera/appointment-slots-service/internal/core/json_types"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

type Appointment struct {
	ID         uuid.UUID            `json:"id"`
	DoctorID   uuid.UUID            `json:"doctor_id"`
	PatientRef string               `json:"patient_ref"`
	Date       json_types.Date      `json:"appointment_date"`
	StartTime  json_types.TimeOfDay `json:"start_time"`
	EndTime    json_types.TimeOfDay `json:"end_time"`
	Status     AppointmentStatus    `json:"status"`
}

// Occupying reports whether the appointment still holds its interval.
// Cancelled appointments free the slot.
func (a Appointment) Occupying() bool {
	return a.Status != AppointmentStatusCancelled
}
