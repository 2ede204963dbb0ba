package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	MessageSuccessGetBalance = "credit balance retrieved successfully"

	MessageFailedGetBalance = "failed to retrieve credit balance"

	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrCreditBackFailed    = errors.New("failed to refund debited credit")
)

const (
	// Pool identifiers for a credit charge.
	PoolWallet       = "wallet"
	PoolSubscription = "subscription"
)

type (
	// CreditCharge records which pool a debit landed on so the
	// compensating credit-back hits the same pool.
	CreditCharge struct {
		Pool           string     `json:"pool"`
		SubscriptionID *uuid.UUID `json:"subscription_id,omitempty"`
	}

	SubscriptionInfo struct {
		ID               string    `json:"id"`
		PlanName         string    `json:"plan_name"`
		CreditsRemaining int       `json:"credits_remaining"`
		MaxCredits       int       `json:"max_credits"`
		StartDate        time.Time `json:"start_date"`
		EndDate          time.Time `json:"end_date"`
	}

	CreditBalance struct {
		WalletCredits int               `json:"wallet_credits"`
		Subscription  *SubscriptionInfo `json:"subscription,omitempty"`
		Combined      int               `json:"combined"`
	}
)
