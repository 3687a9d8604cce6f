package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/clinera/appointment-slots-service/internal/core/json_types"
	"github.com/clinera/appointment-slots-service/internal/core/ports/out"
)

type AppointmentChangeMessage struct {
	DoctorID uuid.UUID       `json:"doctor_id"`
	Date     json_types.Date `json:"appointment_date"`
}

func (l *ChangeListener) startAppointmentQueue(ctx context.Context) error {
	return l.consume(ctx,
		l.cfg.RabbitMQ.AppointmentQueueName,
		l.cfg.RabbitMQ.AppointmentQueueBind,
		l.cfg.RabbitMQ.AppointmentQueueExchange,
		l.processAppointmentMessage,
	)
}

func (l *ChangeListener) processAppointmentMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := l.parseChangeMessageRoutingKey(msg)
	if err != nil {
		return err
	}

	if routingKey.ResourceType != ChangeResourceTypeAppointment {
		return nil
	}

	var msgJSON AppointmentChangeMessage
	if err := json.Unmarshal(msg.Body, &msgJSON); err != nil {
		return err
	}

	l.logger.Info("appointment.message.received", out.LogFields{
		"doctorId": msgJSON.DoctorID,
		"date":     msgJSON.Date.Date.Format("2006-01-02"),
	})

	if routingKey.EventType == ChangeEventTypeInvalidate {
		go l.availability.InvalidateDaySlots(ctx, msgJSON.DoctorID, msgJSON.Date.Date)

		l.logger.Info("appointment.message.invalidated", out.LogFields{
			"doctorId": msgJSON.DoctorID,
		})
	}

	return nil
}
