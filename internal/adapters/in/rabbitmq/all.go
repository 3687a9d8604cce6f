package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/clinera/appointment-slots-service/internal/core/ports/out"
)

func (l *ChangeListener) startAllQueue(ctx context.Context) error {
	return l.consume(ctx,
		l.cfg.RabbitMQ.AllQueueName,
		l.cfg.RabbitMQ.AllQueueBind,
		l.cfg.RabbitMQ.AllQueueExchange,
		l.processAllMessage,
	)
}

func (l *ChangeListener) processAllMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := l.parseChangeMessageRoutingKey(msg)
	if err != nil {
		return err
	}

	if routingKey.ResourceType != ChangeResourceTypeAll {
		return nil
	}

	if routingKey.EventType == ChangeEventTypeInvalidate {
		go l.availability.InvalidateAllSlots(ctx)

		l.logger.Info("_all_.message.invalidated", out.LogFields{
			"slots_cache": true,
		})
	}

	return nil
}
