package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// DeclinedCards are the card numbers Sandbox refuses, matching the
// processor's published test cards for declines.
var DeclinedCards = map[string]bool{
	"4000000000000002": true, // generic decline
	"4000000000009995": true, // insufficient funds
	"4000000000000069": true, // expired card
}

// Sandbox is an in-process Processor for local runs without processor
// credentials and for tests. It never moves money.
type Sandbox struct {
	mu      sync.Mutex
	charges []string
	// Fail, when set, makes every call return it (processor outage).
	Fail error
}

func NewSandbox() *Sandbox { return &Sandbox{} }

func (s *Sandbox) id(prefix string) string { return prefix + "_" + uuid.NewString()[:8] }

func (s *Sandbox) CreateCustomer(_ context.Context, name, email string) (string, error) {
	if s.Fail != nil {
		return "", s.Fail
	}
	return s.id("cus"), nil
}

func (s *Sandbox) TokenizeCard(_ context.Context, card Card) (string, error) {
	if s.Fail != nil {
		return "", s.Fail
	}
	if DeclinedCards[card.Number] {
		return "", fmt.Errorf("%w: card %s***", ErrDeclined, card.Number[:4])
	}
	return s.id("tok"), nil
}

func (s *Sandbox) AttachSource(_ context.Context, customerID, tokenID string) (string, error) {
	if s.Fail != nil {
		return "", s.Fail
	}
	return s.id("card"), nil
}

func (s *Sandbox) CreateCharge(_ context.Context, customerID, sourceID string, charge Charge) (string, error) {
	if s.Fail != nil {
		return "", s.Fail
	}
	id := s.id("ch")
	s.mu.Lock()
	s.charges = append(s.charges, id)
	s.mu.Unlock()
	return id, nil
}

// Charges returns the ids of every successful charge so far.
func (s *Sandbox) Charges() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.charges...)
}
