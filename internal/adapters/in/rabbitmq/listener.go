package rabbitmq

import (
	"context"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/clinera/appointment-slots-service/internal/config"
	"github.com/clinera/appointment-slots-service/internal/core/ports/in"
	"github.com/clinera/appointment-slots-service/internal/core/ports/out"
)

// ChangeListener consumes clinic change events and drops the affected
// slot-cache entries. The availability read itself stays snapshot
// based; this only keeps a warm cache from going stale.
type ChangeListener struct {
	conn         *amqp.Connection
	channel      *amqp.Channel
	availability in.AvailabilityUseCase
	cfg          *config.Config
	logger       out.LoggerPort
}

type (
	ChangeEventType    string
	ChangeResourceType string
)

type ChangeMessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType ChangeResourceType
	EventType    ChangeEventType
}

const (
	ChangeResourceTypeAll             ChangeResourceType = "_all_"
	ChangeResourceTypeAppointment     ChangeResourceType = "appointment"
	ChangeResourceTypeScheduleRule    ChangeResourceType = "schedulerule"
	ChangeResourceTypeBlockedInterval ChangeResourceType = "blockedinterval"
)

const (
	ChangeEventTypeInvalidate ChangeEventType = "invalidate"
)

func NewChangeListener(availability in.AvailabilityUseCase, cfg *config.Config, logger out.LoggerPort) (*ChangeListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.AmqpURI)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.AmqpURI,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &ChangeListener{
		conn:         conn,
		channel:      channel,
		availability: availability,
		cfg:          cfg,
		logger:       logger,
	}, nil
}

func (l *ChangeListener) Start(ctx context.Context) error {
	var err error
	err = l.startAppointmentQueue(ctx)
	if err != nil {
		return err
	}
	l.logger.Info("appointment.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.AppointmentQueueName,
	})
	err = l.startScheduleRuleQueue(ctx)
	if err != nil {
		return err
	}
	l.logger.Info("schedule_rule.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.ScheduleRuleQueueName,
	})
	err = l.startBlockedIntervalQueue(ctx)
	if err != nil {
		return err
	}
	l.logger.Info("blocked_interval.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.BlockedIntervalQueueName,
	})
	err = l.startAllQueue(ctx)
	if err != nil {
		return err
	}
	l.logger.Info("_all_.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.AllQueueName,
	})

	return nil
}

func (l *ChangeListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

func (l *ChangeListener) consume(ctx context.Context, queueName, bind, exchange string, process func(context.Context, amqp.Delivery) error) error {
	queue, err := l.channel.QueueDeclare(
		queueName,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}
	err = l.channel.QueueBind(
		queue.Name,
		bind,
		exchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				if err := process(ctx, msg); err != nil {
					msg.Nack(false, true) // requeue message
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	return nil
}

// Routing key examples:
// clinic.slots-svc.appointment.created.invalidate
// clinic.slots-svc.schedulerule.updated.invalidate
// clinic.slots-svc._all_.changed.invalidate
func (l *ChangeListener) parseChangeMessageRoutingKey(msg amqp.Delivery) (ChangeMessageRoutingKey, error) {
	routingKey := msg.RoutingKey
	parts := strings.Split(routingKey, ".")

	if len(parts) < 5 {
		return ChangeMessageRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return ChangeMessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: ChangeResourceType(parts[2]),
		EventType:    ChangeEventType(parts[4]),
	}, nil
}
