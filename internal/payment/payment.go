package payment

import (
	"context"
	"errors"
)

var ErrInvalidSignature = errors.New("webhook signature verification failed")

// LineItem is one priced cart line. UnitAmount is in minor currency units.
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// SessionParams describes a hosted checkout session request. The shipping
// amount is a fixed delivery fee in minor units. OrderID and RestaurantID
// travel as metadata so the completion callback can correlate back.
type SessionParams struct {
	LineItems      []LineItem
	ShippingAmount int64
	Currency       string
	OrderID        int
	RestaurantID   int
	SuccessURL     string
	CancelURL      string
}

type Session struct {
	ID  string
	URL string
}

// SessionCreator is the narrow slice of the payment provider this backend
// depends on. The provider is swappable and testable via a substitute.
type SessionCreator interface {
	CreateSession(ctx context.Context, params SessionParams) (*Session, error)
}

// CheckoutCompleted is the decoded completion callback.
type CheckoutCompleted struct {
	OrderID      int
	RestaurantID int
	AmountTotal  int64
}

// WebhookVerifier authenticates a provider callback and extracts the
// completion payload. A nil result with nil error means the event was
// authentic but not a completion; callers acknowledge and ignore it.
type WebhookVerifier interface {
	VerifyEvent(payload []byte, signatureHeader string) (*CheckoutCompleted, error)
}
