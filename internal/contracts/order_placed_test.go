package contracts

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tfiz/storefront-go/internal/checkout"
)

func sampleOrder() checkout.Order {
	return checkout.Order{
		ID:        "a9c9bf1d-32f2-46a0-9243-97c2cf8a6c4a",
		SessionID: "1d439ea2-c678-4f2a-9ca9-d8a9755a6a5d",
		Lines: []checkout.OrderLine{
			{ItemID: "t1", Quantity: 2, UnitPrice: 1000},
		},
		Subtotal:        2000,
		DiscountPercent: 14,
		DiscountAmount:  280,
		Payable:         1720,
		PaymentMethod:   checkout.PayCard,
		PlacedAt:        time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestBuildOrderPlacedEvent(t *testing.T) {
	o := sampleOrder()

	env := BuildOrderPlacedEvent(o, EnvelopeOptions{
		PartitionKey:  o.SessionID,
		Sequence:      42,
		Producer:      StorefrontProducer,
		CorrelationID: "53b0fd3e-8d6b-49af-8c1f-12cf4182c2f7",
		EventID:       "73b0fd3e-8d6b-49af-8c1f-12cf4182c2f7",
		OccurredAt:    o.PlacedAt,
	})

	if env.EventName != OrderPlacedEventName {
		t.Fatalf("unexpected event name %s", env.EventName)
	}
	if env.EventVersion != OrderPlacedEventVersion {
		t.Fatalf("unexpected event version %d", env.EventVersion)
	}
	if env.EventID != "73b0fd3e-8d6b-49af-8c1f-12cf4182c2f7" {
		t.Fatalf("expected provided event id to be used, got %s", env.EventID)
	}
	if env.PartitionKey != o.SessionID {
		t.Fatalf("expected partition key %s, got %s", o.SessionID, env.PartitionKey)
	}
	if env.Sequence != 42 {
		t.Fatalf("expected sequence to be 42, got %d", env.Sequence)
	}
	if env.Payload.Timestamp != o.PlacedAt {
		t.Fatalf("expected payload timestamp to mirror occurredAt, got %s", env.Payload.Timestamp)
	}
	if env.Payload.Payable != 1720 || env.Payload.DiscountAmount != 280 {
		t.Fatalf("pricing not copied: %+v", env.Payload)
	}
	if len(env.Payload.Lines) != 1 || env.Payload.Lines[0].ItemID != "t1" || env.Payload.Lines[0].UnitPrice != 1000 {
		t.Fatalf("payload lines not copied correctly: %+v", env.Payload.Lines)
	}
}

func TestBuildOrderPlacedEventDefaults(t *testing.T) {
	before := time.Now().UTC()
	env := BuildOrderPlacedEvent(sampleOrder(), EnvelopeOptions{
		PartitionKey: "session-1",
		Sequence:     1,
	})

	if _, err := uuid.Parse(env.EventID); err != nil {
		t.Fatalf("expected generated event id to be a uuid, got %q", env.EventID)
	}
	if env.Producer != StorefrontProducer {
		t.Fatalf("expected default producer, got %s", env.Producer)
	}
	if env.OccurredAt.Before(before) {
		t.Fatalf("expected occurredAt to default to now, got %s", env.OccurredAt)
	}
}

func TestEnvelopeValidate(t *testing.T) {
	makeEnvelope := func() EventEnvelope {
		return BuildOrderPlacedEvent(sampleOrder(), EnvelopeOptions{
			PartitionKey: "session-1",
			Sequence:     1,
			EventID:      uuid.NewString(),
		})
	}

	if err := makeEnvelope().Validate(); err != nil {
		t.Fatalf("expected envelope to be valid, got error: %v", err)
	}

	t.Run("event name mismatch", func(t *testing.T) {
		invalid := makeEnvelope()
		invalid.EventName = "WrongEvent"
		if err := invalid.Validate(); err == nil {
			t.Fatalf("expected envelope to be invalid")
		}
	})

	t.Run("missing partition key", func(t *testing.T) {
		invalid := makeEnvelope()
		invalid.PartitionKey = ""
		if err := invalid.Validate(); err == nil {
			t.Fatalf("expected envelope to be invalid")
		}
	})

	t.Run("missing sequence", func(t *testing.T) {
		invalid := makeEnvelope()
		invalid.Sequence = 0
		if err := invalid.Validate(); err == nil {
			t.Fatalf("expected envelope to be invalid")
		}
	})

	t.Run("missing order id", func(t *testing.T) {
		invalid := makeEnvelope()
		invalid.Payload.OrderID = ""
		if err := invalid.Validate(); err == nil {
			t.Fatalf("expected envelope to be invalid")
		}
	})

	t.Run("no lines", func(t *testing.T) {
		invalid := makeEnvelope()
		invalid.Payload.Lines = nil
		if err := invalid.Validate(); err == nil {
			t.Fatalf("expected envelope to be invalid")
		}
	})
}
