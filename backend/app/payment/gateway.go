package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"feedgate/backend/app/metrics"
	"feedgate/backend/global"

	"github.com/sony/gobreaker/v2"
)

type GatewayConfig struct {
	Charge Charge
	// FailureThreshold consecutive processor failures open the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

type Gateway struct {
	proc   Processor
	cb     *gobreaker.CircuitBreaker[string]
	charge Charge
}

func NewGateway(proc Processor, cfg GatewayConfig) *Gateway {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	timeout := cfg.OpenTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	metrics.BreakerState.Set(float64(gobreaker.StateClosed))
	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "payment-processor",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// a declined card is the processor working as intended
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrDeclined) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			global.Logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.BreakerState.Set(float64(to))
		},
	})
	return &Gateway{proc: proc, cb: cb, charge: cfg.Charge}
}

func (g *Gateway) execute(fn func() (string, error)) (string, error) {
	id, err := g.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return id, err
}

// Subscribe creates a customer, tokenizes and attaches the card, then charges
// it. It stops at the first failing step and returns the charge id on
// success. Nothing is rolled back on failure.
func (g *Gateway) Subscribe(ctx context.Context, name, email string, card Card) (string, error) {
	customerID, err := g.execute(func() (string, error) { return g.proc.CreateCustomer(ctx, name, email) })
	if err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}
	tokenID, err := g.execute(func() (string, error) { return g.proc.TokenizeCard(ctx, card) })
	if err != nil {
		return "", fmt.Errorf("tokenize card: %w", err)
	}
	sourceID, err := g.execute(func() (string, error) { return g.proc.AttachSource(ctx, customerID, tokenID) })
	if err != nil {
		return "", fmt.Errorf("attach source: %w", err)
	}
	chargeID, err := g.execute(func() (string, error) { return g.proc.CreateCharge(ctx, customerID, sourceID, g.charge) })
	if err != nil {
		return "", fmt.Errorf("charge: %w", err)
	}
	return chargeID, nil
}

func (g *Gateway) State() gobreaker.State { return g.cb.State() }
