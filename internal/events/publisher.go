package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tfiz/storefront-go/internal/checkout"
	"github.com/tfiz/storefront-go/internal/contracts"
)

// RabbitOrderPublisher announces committed orders on the events exchange.
// It satisfies checkout.OrderPublisher.
type RabbitOrderPublisher struct {
	ch        *amqp.Channel
	sequences SequenceRepository
}

func NewRabbitOrderPublisher(conn *amqp.Connection, sequences SequenceRepository) (*RabbitOrderPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &RabbitOrderPublisher{ch: ch, sequences: sequences}, nil
}

func (p *RabbitOrderPublisher) Close() error {
	return p.ch.Close()
}

func (p *RabbitOrderPublisher) PublishOrderPlaced(ctx context.Context, o checkout.Order) error {
	seq, err := p.sequences.NextSequence(ctx, o.SessionID)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	env := contracts.BuildOrderPlacedEvent(o, contracts.EnvelopeOptions{
		PartitionKey: o.SessionID,
		Sequence:     seq,
		OccurredAt:   o.PlacedAt,
	})
	if err := env.Validate(); err != nil {
		return fmt.Errorf("invalid envelope: %w", err)
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		OrderPlacedRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
