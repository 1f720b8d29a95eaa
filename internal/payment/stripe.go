package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

// StripeGateway backs the payment port with Stripe hosted checkout.
type StripeGateway struct {
	endpointSecret string
}

func NewStripeGateway(apiKey, endpointSecret string) *StripeGateway {
	stripe.Key = apiKey
	return &StripeGateway{endpointSecret: endpointSecret}
}

func (g *StripeGateway) CreateSession(ctx context.Context, p SessionParams) (*Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(p.LineItems))
	for _, li := range p.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(p.Currency),
				UnitAmount: stripe.Int64(li.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(li.Name),
				},
			},
			Quantity: stripe.Int64(li.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:      stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: lineItems,
		ShippingOptions: []*stripe.CheckoutSessionShippingOptionParams{
			{
				ShippingRateData: &stripe.CheckoutSessionShippingOptionShippingRateDataParams{
					DisplayName: stripe.String("Standard Delivery"),
					Type:        stripe.String("fixed_amount"),
					FixedAmount: &stripe.CheckoutSessionShippingOptionShippingRateDataFixedAmountParams{
						Amount:   stripe.Int64(p.ShippingAmount),
						Currency: stripe.String(p.Currency),
					},
				},
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata("orderId", strconv.Itoa(p.OrderID))
	params.AddMetadata("restaurantId", strconv.Itoa(p.RestaurantID))

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &Session{ID: s.ID, URL: s.URL}, nil
}

func (g *StripeGateway) VerifyEvent(payload []byte, signatureHeader string) (*CheckoutCompleted, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, g.endpointSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if event.Type != "checkout.session.completed" {
		return nil, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}

	orderID, err := strconv.Atoi(cs.Metadata["orderId"])
	if err != nil {
		return nil, fmt.Errorf("event metadata has no usable orderId: %w", err)
	}
	restaurantID, _ := strconv.Atoi(cs.Metadata["restaurantId"])

	return &CheckoutCompleted{
		OrderID:      orderID,
		RestaurantID: restaurantID,
		AmountTotal:  cs.AmountTotal,
	}, nil
}

var (
	_ SessionCreator  = (*StripeGateway)(nil)
	_ WebhookVerifier = (*StripeGateway)(nil)
)
