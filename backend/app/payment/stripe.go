package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/charge"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/paymentsource"
	"github.com/stripe/stripe-go/v76/token"
)

type StripeProcessor struct {
	customers customer.Client
	tokens    token.Client
	sources   paymentsource.Client
	charges   charge.Client
}

func NewStripe(secretKey string) *StripeProcessor {
	return newStripe(secretKey, stripe.GetBackend(stripe.APIBackend))
}

func newStripe(secretKey string, b stripe.Backend) *StripeProcessor {
	return &StripeProcessor{
		customers: customer.Client{B: b, Key: secretKey},
		tokens:    token.Client{B: b, Key: secretKey},
		sources:   paymentsource.Client{B: b, Key: secretKey},
		charges:   charge.Client{B: b, Key: secretKey},
	}
}

// translate turns card errors into ErrDeclined and leaves everything else
// (network, auth, rate limit) as a processor failure.
func translate(err error) error {
	var serr *stripe.Error
	if errors.As(err, &serr) && serr.Type == stripe.ErrorTypeCard {
		return fmt.Errorf("%w: %s", ErrDeclined, serr.Msg)
	}
	return err
}

func (p *StripeProcessor) CreateCustomer(ctx context.Context, name, email string) (string, error) {
	params := &stripe.CustomerParams{Name: stripe.String(name), Email: stripe.String(email)}
	params.Context = ctx
	c, err := p.customers.New(params)
	if err != nil {
		return "", translate(err)
	}
	return c.ID, nil
}

func (p *StripeProcessor) TokenizeCard(ctx context.Context, card Card) (string, error) {
	params := &stripe.TokenParams{Card: &stripe.CardParams{
		Name:     stripe.String(card.Name),
		Number:   stripe.String(card.Number),
		ExpMonth: stripe.String(card.ExpMonth),
		ExpYear:  stripe.String(card.ExpYear),
		CVC:      stripe.String(card.CVC),
	}}
	params.Context = ctx
	t, err := p.tokens.New(params)
	if err != nil {
		return "", translate(err)
	}
	return t.ID, nil
}

func (p *StripeProcessor) AttachSource(ctx context.Context, customerID, tokenID string) (string, error) {
	params := &stripe.PaymentSourceParams{
		Customer: stripe.String(customerID),
		Source:   &stripe.PaymentSourceSourceParams{Token: stripe.String(tokenID)},
	}
	params.Context = ctx
	src, err := p.sources.New(params)
	if err != nil {
		return "", translate(err)
	}
	return src.ID, nil
}

func (p *StripeProcessor) CreateCharge(ctx context.Context, customerID, sourceID string, amount Charge) (string, error) {
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(amount.AmountCents),
		Currency:    stripe.String(amount.Currency),
		Customer:    stripe.String(customerID),
		Description: stripe.String(amount.Description),
	}
	if err := params.SetSource(sourceID); err != nil {
		return "", err
	}
	params.Context = ctx
	ch, err := p.charges.New(params)
	if err != nil {
		return "", translate(err)
	}
	return ch.ID, nil
}
