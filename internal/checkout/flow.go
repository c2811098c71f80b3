package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tfiz/storefront-go/internal/cart"
	"github.com/tfiz/storefront-go/internal/discount"
	"github.com/tfiz/storefront-go/internal/unlock"
)

// Stage is where the visitor is in the checkout state machine.
type Stage string

const (
	// StageReviewing means the cart is being edited.
	StageReviewing Stage = "reviewing"
	// StageConfirming means the billing form is active.
	StageConfirming Stage = "confirming"
)

var (
	// ErrEmptyCart rejects the Reviewing->Confirming transition for a cart
	// with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNotConfirming rejects a commit issued outside the billing step.
	ErrNotConfirming = errors.New("checkout not in confirming stage")
)

// MissingFieldsError lists the required billing fields that were empty.
// The prior flow state is untouched when it is returned.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required billing fields: " + strings.Join(e.Fields, ", ")
}

type PaymentMethod string

const (
	PayCard   PaymentMethod = "card"
	PayUPI    PaymentMethod = "upi"
	PayCrypto PaymentMethod = "crypto"
)

// BillingDetails is transient: it lives only for the duration of the
// checkout and is never persisted. Format validation (email shape, payment
// method membership) happens at the HTTP boundary via the validate tags;
// the flow itself only enforces presence.
type BillingDetails struct {
	FullName      string        `json:"fullName" validate:"required"`
	Email         string        `json:"email" validate:"required,email"`
	Address       string        `json:"address" validate:"required"`
	City          string        `json:"city" validate:"required"`
	Zip           string        `json:"zip" validate:"required"`
	Phone         string        `json:"phone,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"omitempty,oneof=card upi crypto"`
}

// requiredFields reports which required billing fields are empty.
func (b BillingDetails) requiredFields() []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"fullName", b.FullName},
		{"email", b.Email},
		{"address", b.Address},
		{"city", b.City},
		{"zip", b.Zip},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// OrderLine is a priced snapshot of one cart line at commit time.
type OrderLine struct {
	ItemID    string `json:"itemId"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// Order is the committed purchase summary handed to the event publisher.
type Order struct {
	ID              string        `json:"orderId"`
	SessionID       string        `json:"sessionId"`
	Lines           []OrderLine   `json:"lines"`
	Subtotal        int64         `json:"subtotal"`
	DiscountPercent int           `json:"discountPercent"`
	DiscountAmount  int64         `json:"discountAmount"`
	Payable         int64         `json:"payable"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	PlacedAt        time.Time     `json:"placedAt"`
}

// OrderPublisher announces committed orders to downstream consumers.
type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, o Order) error
}

// Flow drives one session's checkout: Reviewing -> Confirming -> commit back
// to Reviewing with an empty cart, or cancel back to Reviewing with
// everything retained.
type Flow struct {
	sessionID string
	cart      *cart.Cart
	source    cart.ItemSource
	roller    *discount.Roller
	history   *unlock.Registry
	publisher OrderPublisher
	logger    *zap.Logger

	stage   Stage
	billing BillingDetails

	now   func() time.Time
	newID func() string
}

func NewFlow(sessionID string, c *cart.Cart, source cart.ItemSource, roller *discount.Roller, history *unlock.Registry, publisher OrderPublisher, logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{
		sessionID: sessionID,
		cart:      c,
		source:    source,
		roller:    roller,
		history:   history,
		publisher: publisher,
		logger:    logger,
		stage:     StageReviewing,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (f *Flow) Stage() Stage {
	return f.stage
}

// Billing returns the current billing draft. Cancel retains it.
func (f *Flow) Billing() BillingDetails {
	return f.billing
}

// Begin moves Reviewing -> Confirming. It is rejected for an empty cart and
// a no-op when the billing form is already active.
func (f *Flow) Begin() error {
	if f.stage == StageConfirming {
		return nil
	}
	if f.cart.Len() == 0 {
		return ErrEmptyCart
	}
	f.stage = StageConfirming
	return nil
}

// Cancel moves Confirming -> Reviewing with no side effects: cart and
// billing draft stay as they are.
func (f *Flow) Cancel() {
	f.stage = StageReviewing
}

// Commit validates the billing details and commits the purchase: one history
// entry per cart line (per item, not per unit, duplicates kept), an
// OrderPlaced announcement, then the cart is cleared and the flow returns to
// Reviewing. The discount state is deliberately left alone. Any failure
// before the history append leaves all prior state intact.
func (f *Flow) Commit(ctx context.Context, billing BillingDetails) (Order, error) {
	if f.stage != StageConfirming {
		return Order{}, ErrNotConfirming
	}

	f.billing = billing
	if missing := billing.requiredFields(); len(missing) > 0 {
		return Order{}, &MissingFieldsError{Fields: missing}
	}

	order := f.buildOrder(billing)

	ids := make([]string, 0, len(order.Lines))
	for _, ln := range order.Lines {
		ids = append(ids, ln.ItemID)
	}
	if err := f.history.Append(ctx, ids...); err != nil {
		return Order{}, fmt.Errorf("record purchases: %w", err)
	}

	// The announcement is advisory: a broker outage must not leak into
	// cart/checkout state once the purchase is recorded.
	if f.publisher != nil {
		if err := f.publisher.PublishOrderPlaced(ctx, order); err != nil {
			f.logger.Warn("publish order placed",
				zap.String("orderId", order.ID), zap.Error(err))
		}
	}

	f.cart.Clear()
	f.stage = StageReviewing
	return order, nil
}

func (f *Flow) buildOrder(billing BillingDetails) Order {
	quote := f.roller.Apply(f.cart.Subtotal())

	lines := f.cart.Lines()
	orderLines := make([]OrderLine, 0, len(lines))
	for _, ln := range lines {
		var unit int64
		if item, ok := f.source.Get(ln.ItemID); ok {
			unit = item.Price
		}
		orderLines = append(orderLines, OrderLine{
			ItemID:    ln.ItemID,
			Quantity:  ln.Quantity,
			UnitPrice: unit,
		})
	}

	method := billing.PaymentMethod
	if method == "" {
		method = PayCard
	}

	return Order{
		ID:              f.newID(),
		SessionID:       f.sessionID,
		Lines:           orderLines,
		Subtotal:        quote.Subtotal,
		DiscountPercent: quote.Percent,
		DiscountAmount:  quote.DiscountAmount,
		Payable:         quote.Payable,
		PaymentMethod:   method,
		PlacedAt:        f.now().UTC(),
	}
}
