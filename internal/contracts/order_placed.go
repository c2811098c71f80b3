package contracts

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tfiz/storefront-go/internal/checkout"
)

const (
	OrderPlacedEventName    = "OrderPlaced"
	OrderPlacedEventVersion = 1
	StorefrontProducer      = "storefront-go"
)

// EventEnvelope wraps an OrderPlaced payload with the metadata downstream
// consumers key on. Sequence is per partition (one partition per session).
type EventEnvelope struct {
	EventName     string             `json:"eventName"`
	EventVersion  int                `json:"eventVersion"`
	EventID       string             `json:"eventId"`
	CorrelationID string             `json:"correlationId,omitempty"`
	Producer      string             `json:"producer"`
	PartitionKey  string             `json:"partitionKey"`
	Sequence      int64              `json:"sequence"`
	OccurredAt    time.Time          `json:"occurredAt"`
	Payload       OrderPlacedPayload `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID         string            `json:"orderId"`
	SessionID       string            `json:"sessionId"`
	Lines           []OrderPlacedLine `json:"lines"`
	Subtotal        int64             `json:"subtotal"`
	DiscountPercent int               `json:"discountPercent"`
	DiscountAmount  int64             `json:"discountAmount"`
	Payable         int64             `json:"payable"`
	PaymentMethod   string            `json:"paymentMethod"`
	Timestamp       time.Time         `json:"timestamp"`
}

type OrderPlacedLine struct {
	ItemID    string `json:"itemId"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

type EnvelopeOptions struct {
	PartitionKey  string
	Sequence      int64
	Producer      string
	CorrelationID string
	EventID       string
	OccurredAt    time.Time
}

// BuildOrderPlacedEvent snapshots a committed order into the wire envelope.
func BuildOrderPlacedEvent(o checkout.Order, opts EnvelopeOptions) EventEnvelope {
	eventID := opts.EventID
	if eventID == "" {
		eventID = uuid.NewString()
	}

	occurredAt := opts.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	producer := opts.Producer
	if producer == "" {
		producer = StorefrontProducer
	}

	payload := OrderPlacedPayload{
		OrderID:         o.ID,
		SessionID:       o.SessionID,
		Subtotal:        o.Subtotal,
		DiscountPercent: o.DiscountPercent,
		DiscountAmount:  o.DiscountAmount,
		Payable:         o.Payable,
		PaymentMethod:   string(o.PaymentMethod),
		Timestamp:       occurredAt,
	}
	for _, ln := range o.Lines {
		payload.Lines = append(payload.Lines, OrderPlacedLine{
			ItemID:    ln.ItemID,
			Quantity:  ln.Quantity,
			UnitPrice: ln.UnitPrice,
		})
	}

	return EventEnvelope{
		EventName:     OrderPlacedEventName,
		EventVersion:  OrderPlacedEventVersion,
		EventID:       eventID,
		CorrelationID: opts.CorrelationID,
		Producer:      producer,
		PartitionKey:  opts.PartitionKey,
		Sequence:      opts.Sequence,
		OccurredAt:    occurredAt,
		Payload:       payload,
	}
}

// Validate checks the envelope carries the identity and partitioning data
// consumers depend on.
func (e EventEnvelope) Validate() error {
	if e.EventName != OrderPlacedEventName {
		return fmt.Errorf("unexpected eventName: %s", e.EventName)
	}
	if e.EventVersion != OrderPlacedEventVersion {
		return fmt.Errorf("unexpected eventVersion: %d", e.EventVersion)
	}
	if e.PartitionKey == "" {
		return fmt.Errorf("missing partitionKey")
	}
	if e.Sequence <= 0 {
		return fmt.Errorf("sequence must be positive")
	}
	if e.Payload.OrderID == "" {
		return fmt.Errorf("missing payload orderId")
	}
	if len(e.Payload.Lines) == 0 {
		return fmt.Errorf("payload has no lines")
	}
	return nil
}
