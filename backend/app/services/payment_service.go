package services

import (
	"context"
	"errors"
	"time"

	"feedgate/backend/app/cache"
	"feedgate/backend/app/dto"
	"feedgate/backend/app/metrics"
	"feedgate/backend/app/models"
	"feedgate/backend/app/payment"
	"feedgate/backend/app/repo"
	"feedgate/backend/global"
)

// Subscriber charges the feed subscription; payment.Gateway implements it.
type Subscriber interface {
	Subscribe(ctx context.Context, name, email string, card payment.Card) (string, error)
}

type PaymentService struct {
	users   *repo.UserRepository
	gateway Subscriber
	locks   cache.Store
	lockTTL time.Duration
}

func NewPaymentService(users *repo.UserRepository, gateway Subscriber, locks cache.Store, lockTTL time.Duration) *PaymentService {
	if lockTTL <= 0 {
		lockTTL = 2 * time.Minute
	}
	return &PaymentService{users: users, gateway: gateway, locks: locks, lockTTL: lockTTL}
}

// Pay charges the user once and marks them subscribed. Any processor
// failure is ErrPaymentFailed; earlier processor steps are not undone.
func (s *PaymentService) Pay(ctx context.Context, userID string, req dto.PaymentRequest) (*models.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if u.Subscribed {
		metrics.RecordPayment(metrics.OutcomeConflict)
		return nil, ErrAlreadySubscribed
	}

	key := cache.PaymentLockKey(u.ID)
	token, ok, err := s.locks.TryLock(ctx, key, s.lockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.RecordPayment(metrics.OutcomeConflict)
		return nil, ErrPaymentInProgress
	}
	defer func() {
		if err := s.locks.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			global.Logger.Warn().Err(err).Str("user_id", u.ID).Msg("payment lock release failed")
		}
	}()

	card := payment.Card{
		Name:     req.CardName,
		Number:   req.CardNumber,
		ExpMonth: req.ExpMonth,
		ExpYear:  req.ExpYear,
		CVC:      req.CVC,
	}
	chargeID, err := s.gateway.Subscribe(ctx, req.Name, req.Email, card)
	if err != nil {
		outcome := metrics.OutcomeFailure
		switch {
		case errors.Is(err, payment.ErrDeclined):
			outcome = metrics.OutcomeDeclined
		case errors.Is(err, payment.ErrUnavailable):
			outcome = metrics.OutcomeUnavailable
		}
		metrics.RecordPayment(outcome)
		global.Logger.Warn().Err(err).Str("user_id", u.ID).Str("outcome", outcome).Msg("payment failed")
		return nil, ErrPaymentFailed
	}

	changed, err := s.users.MarkSubscribed(ctx, u.ID)
	if err != nil {
		global.Logger.Error().Err(err).Str("user_id", u.ID).Str("charge_id", chargeID).Msg("charged but could not mark subscribed")
		return nil, err
	}
	if !changed {
		// the lock expired mid-charge and another payment won; this charge needs a manual refund
		global.Logger.Error().Str("user_id", u.ID).Str("charge_id", chargeID).Msg("duplicate charge for already subscribed user")
		metrics.RecordPayment(metrics.OutcomeConflict)
		return nil, ErrAlreadySubscribed
	}

	metrics.RecordPayment(metrics.OutcomeSuccess)
	global.Logger.Info().Str("user_id", u.ID).Str("charge_id", chargeID).Msg("user subscribed")
	u.Subscribed = true
	return u, nil
}
