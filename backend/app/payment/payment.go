// Package payment charges the one-time feed subscription through a card
// processor. Gateway runs the four processor steps behind a circuit breaker;
// Stripe and Sandbox are the two processors.
package payment

import (
	"context"
	"errors"
)

var (
	// ErrDeclined means the processor refused the card. It never trips the breaker.
	ErrDeclined = errors.New("card declined")
	// ErrUnavailable means the breaker is open and the processor was not called.
	ErrUnavailable = errors.New("payment processor unavailable")
)

type Card struct {
	Name     string
	Number   string
	ExpMonth string
	ExpYear  string
	CVC      string
}

type Charge struct {
	AmountCents int64
	Currency    string
	Description string
}

// Processor is the card processor API used by Gateway, one call per step.
type Processor interface {
	CreateCustomer(ctx context.Context, name, email string) (string, error)
	TokenizeCard(ctx context.Context, card Card) (string, error)
	AttachSource(ctx context.Context, customerID, tokenID string) (string, error)
	CreateCharge(ctx context.Context, customerID, sourceID string, charge Charge) (string, error)
}
