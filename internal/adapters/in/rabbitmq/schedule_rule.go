package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/clinera/appointment-slots-service/internal/core/ports/out"
)

type ScheduleRuleChangeMessage struct {
	DoctorID uuid.UUID `json:"doctor_id"`
}

func (l *ChangeListener) startScheduleRuleQueue(ctx context.Context) error {
	return l.consume(ctx,
		l.cfg.RabbitMQ.ScheduleRuleQueueName,
		l.cfg.RabbitMQ.ScheduleRuleQueueBind,
		l.cfg.RabbitMQ.ScheduleRuleQueueExchange,
		l.processScheduleRuleMessage,
	)
}

// A rule change moves every day of the week for that doctor, so the
// whole doctor prefix goes.
func (l *ChangeListener) processScheduleRuleMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := l.parseChangeMessageRoutingKey(msg)
	if err != nil {
		return err
	}

	if routingKey.ResourceType != ChangeResourceTypeScheduleRule {
		return nil
	}

	var msgJSON ScheduleRuleChangeMessage
	if err := json.Unmarshal(msg.Body, &msgJSON); err != nil {
		return err
	}

	if routingKey.EventType == ChangeEventTypeInvalidate {
		go l.availability.InvalidateDoctorSlots(ctx, msgJSON.DoctorID)

		l.logger.Info("schedule_rule.message.invalidated", out.LogFields{
			"doctorId": msgJSON.DoctorID,
		})
	}

	return nil
}
