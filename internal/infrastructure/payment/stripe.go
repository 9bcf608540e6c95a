// Package payment implements the payment gateway port against Stripe.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/gadgetlab/store-api/internal/core/ports"
)

// StripeGateway creates Stripe Checkout sessions. The API client is held on
// the gateway rather than configured globally so tests and multiple
// instances can carry their own keys.
type StripeGateway struct {
	api        *client.API
	successURL string
	cancelURL  string
}

// NewStripeGateway builds a gateway for the given secret key. clientURL is
// the storefront origin the buyer is redirected back to.
func NewStripeGateway(secretKey, clientURL string) *StripeGateway {
	return &StripeGateway{
		api:        client.New(secretKey, nil),
		successURL: clientURL + "/order/success",
		cancelURL:  clientURL + "/order/canceled",
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, items []ports.PaymentLineItem) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(item.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:   stripe.String(item.Name),
					Images: stripe.StringSlice([]string{item.ImageURL}),
				},
				UnitAmount: stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(g.successURL),
		CancelURL:          stripe.String(g.cancelURL),
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout session: %w", err)
	}
	return sess.ID, nil
}
