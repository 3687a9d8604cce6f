package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/clinera/appointment-slots-service/internal/core/ports/out"
)

type BlockedIntervalChangeMessage struct {
	DoctorID uuid.UUID `json:"doctor_id"`
}

func (l *ChangeListener) startBlockedIntervalQueue(ctx context.Context) error {
	return l.consume(ctx,
		l.cfg.RabbitMQ.BlockedIntervalQueueName,
		l.cfg.RabbitMQ.BlockedIntervalQueueBind,
		l.cfg.RabbitMQ.BlockedIntervalQueueExchange,
		l.processBlockedIntervalMessage,
	)
}

// A block can span several days; invalidating per doctor keeps the
// handler free of span arithmetic.
func (l *ChangeListener) processBlockedIntervalMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := l.parseChangeMessageRoutingKey(msg)
	if err != nil {
		return err
	}

	if routingKey.ResourceType != ChangeResourceTypeBlockedInterval {
		return nil
	}

	var msgJSON BlockedIntervalChangeMessage
	if err := json.Unmarshal(msg.Body, &msgJSON); err != nil {
		return err
	}

	if routingKey.EventType == ChangeEventTypeInvalidate {
		go l.availability.InvalidateDoctorSlots(ctx, msgJSON.DoctorID)

		l.logger.Info("blocked_interval.message.invalidated", out.LogFields{
			"doctorId": msgJSON.DoctorID,
		})
	}

	return nil
}
