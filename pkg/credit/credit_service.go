package credit

import (
	"PixGen-Backend/domain"
	"context"
	"fmt"
)

type (
	CreditService interface {
		// DebitOneCredit charges exactly one credit, preferring the
		// effective subscription over the wallet. The returned charge
		// records which pool was hit so a compensating credit-back can
		// target the same pool. Returns domain.ErrInsufficientCredits
		// when both pools are exhausted.
		DebitOneCredit(ctx context.Context, userID string) (*domain.CreditCharge, error)

		// CreditOneBack refunds the pool recorded in charge. Invoked only
		// when a debit succeeded but the downstream operation failed.
		CreditOneBack(ctx context.Context, userID string, charge *domain.CreditCharge) error

		GetBalance(ctx context.Context, userID string) (*domain.CreditBalance, error)
	}

	creditService struct {
		creditRepository CreditRepository
	}
)

func NewCreditService(creditRepository CreditRepository) CreditService {
	return &creditService{
		creditRepository: creditRepository,
	}
}

func (s *creditService) DebitOneCredit(ctx context.Context, userID string) (*domain.CreditCharge, error) {
	sub, err := s.creditRepository.GetEffectiveSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	if sub != nil {
		ok, err := s.creditRepository.DecrementSubscriptionCredit(ctx, sub.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			subID := sub.ID
			return &domain.CreditCharge{
				Pool:           domain.PoolSubscription,
				SubscriptionID: &subID,
			}, nil
		}
		// The subscription was drained between the read and the guarded
		// update; fall through to the wallet.
	}

	ok, err := s.creditRepository.DecrementUserCredit(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ok {
		return &domain.CreditCharge{Pool: domain.PoolWallet}, nil
	}

	return nil, domain.ErrInsufficientCredits
}

func (s *creditService) CreditOneBack(ctx context.Context, userID string, charge *domain.CreditCharge) error {
	if charge == nil {
		return fmt.Errorf("%w: no charge recorded", domain.ErrCreditBackFailed)
	}

	var err error
	switch charge.Pool {
	case domain.PoolSubscription:
		if charge.SubscriptionID == nil {
			return fmt.Errorf("%w: subscription charge without id", domain.ErrCreditBackFailed)
		}
		err = s.creditRepository.IncrementSubscriptionCredit(ctx, *charge.SubscriptionID)
	case domain.PoolWallet:
		err = s.creditRepository.IncrementUserCredit(ctx, userID)
	default:
		return fmt.Errorf("%w: unknown pool %q", domain.ErrCreditBackFailed, charge.Pool)
	}

	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCreditBackFailed, err)
	}
	return nil
}

func (s *creditService) GetBalance(ctx context.Context, userID string) (*domain.CreditBalance, error) {
	wallet, err := s.creditRepository.GetUserCredits(ctx, userID)
	if err != nil {
		return nil, err
	}

	balance := &domain.CreditBalance{
		WalletCredits: wallet,
		Combined:      wallet,
	}

	sub, err := s.creditRepository.GetEffectiveSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		balance.Subscription = &domain.SubscriptionInfo{
			ID:               sub.ID.String(),
			PlanName:         sub.PlanName,
			CreditsRemaining: sub.CreditsRemaining,
			MaxCredits:       sub.MaxCredits,
			StartDate:        sub.StartDate,
			EndDate:          sub.EndDate,
		}
		balance.Combined += sub.CreditsRemaining
	}

	return balance, nil
}
