package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const publishTimeout = 3 * time.Second

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type rabbitPublisher struct {
	ch     channel
	conn   *amqp.Connection
	now    func() time.Time
	logger zerolog.Logger
}

// NewRabbitPublisher dials the broker and declares the events exchange.
func NewRabbitPublisher(url string, logger zerolog.Logger) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := newRabbitPublisher(ch, logger)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

func newRabbitPublisher(ch channel, logger zerolog.Logger) (*rabbitPublisher, error) {
	if err := ch.ExchangeDeclare(EventsExchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare %s: %w", EventsExchange, err)
	}

	return &rabbitPublisher{
		ch:     ch,
		now:    time.Now,
		logger: logger.With().Str("component", "event-publisher").Logger(),
	}, nil
}

// PublishOrderPlaced publishes the event to the events exchange.
func (p *rabbitPublisher) PublishOrderPlaced(ctx context.Context, event OrderPlaced, meta Metadata) error {
	envelope := Envelope[OrderPlaced]{
		EventName:     OrderPlacedEventName,
		EventVersion:  OrderPlacedVersion,
		EventID:       uuid.NewString(),
		CorrelationID: meta.CorrelationID,
		Producer:      producerName,
		PartitionKey:  event.SessionID,
		OccurredAt:    p.now().UTC(),
		Schema:        orderPlacedSchema,
		Payload:       event,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", OrderPlacedEventName, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		OrderPlacedRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     envelope.EventID,
			CorrelationId: meta.CorrelationID,
			Timestamp:     envelope.OccurredAt,
			Body:          body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", OrderPlacedRoutingKey, err)
	}

	p.logger.Info().
		Str("event_id", envelope.EventID).
		Str("order_number", event.OrderNumber).
		Msg("order placed event published")

	return nil
}

// Close closes the channel and, when owned, the connection.
func (p *rabbitPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return fmt.Errorf("close channel: %w", err)
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("close connection: %w", err)
		}
	}
	return nil
}
