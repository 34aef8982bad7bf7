// Package stripe wraps the Stripe checkout flow for package purchases.
package stripe

import (
	"fmt"

	"github.com/stripe/stripe-go/v80"
	checkoutsession "github.com/stripe/stripe-go/v80/checkout/session"
)

// CheckoutService creates hosted checkout sessions for the pricing tiers.
type CheckoutService struct {
	baseURL string
}

// NewCheckoutService configures the global Stripe key and returns a service.
// An empty key disables checkout; callers should treat a nil service as
// "card payment unavailable".
func NewCheckoutService(secretKey, baseURL string) *CheckoutService {
	if secretKey == "" {
		return nil
	}
	stripe.Key = secretKey
	return &CheckoutService{baseURL: baseURL}
}

// CreatePackageSession builds a checkout session for one package priced in
// EGP. amount is in whole pounds.
func (s *CheckoutService) CreatePackageSession(packageName string, amount int64, clientEmail string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("egp"),
					UnitAmount: stripe.Int64(amount * 100),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(packageName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.baseURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.baseURL + "/payment/cancelled"),
	}
	if clientEmail != "" {
		params.CustomerEmail = stripe.String(clientEmail)
	}

	session, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return session, nil
}

// GetSession fetches a checkout session to confirm its payment status.
func (s *CheckoutService) GetSession(id string) (*stripe.CheckoutSession, error) {
	session, err := checkoutsession.Get(id, nil)
	if err != nil {
		return nil, fmt.Errorf("get checkout session: %w", err)
	}
	return session, nil
}
