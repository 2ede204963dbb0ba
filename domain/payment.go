package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessInitiatePayment = "payment initiated successfully"
	MessageSuccessSettlePayment   = "payment settled successfully"
	MessageSuccessCancelPayment   = "payment cancelled"
	MessageSuccessGetPlans        = "plans retrieved successfully"

	MessageFailedInitiatePayment = "failed to initiate payment"
	MessageFailedSettlePayment   = "failed to settle payment"
	MessageFailedGetPlans        = "failed to retrieve plans"

	ErrInvalidPlan         = errors.New("invalid plan selected")
	ErrPurchaseNotAllowed  = errors.New("plan can only be purchased with fewer than 4 credits remaining")
	ErrInvalidSignature    = errors.New("invalid payment signature")
	ErrMalformedPayload    = errors.New("malformed payment payload")
	ErrIntentExpired       = errors.New("purchase intent expired or missing")
	ErrTransactionMismatch = errors.New("callback transaction does not match purchase intent")
	ErrAlreadySettled      = errors.New("transaction already settled")
	ErrCommitFailed        = errors.New("failed to commit settlement")
)

type (
	// PurchaseIntent links an outbound signed payment request to its
	// eventual gateway callback. It lives in the intent store only.
	PurchaseIntent struct {
		UserID    string    `json:"user_id"`
		PlanID    string    `json:"plan_id"`
		PlanName  string    `json:"plan_name"`
		Credits   int       `json:"credits"`
		Amount    float64   `json:"amount"`
		TxnUUID   string    `json:"txn_uuid"`
		CreatedAt time.Time `json:"created_at"`
	}

	// PaymentForm carries the fields of the auto-submitted checkout form.
	PaymentForm struct {
		CheckoutURL string            `json:"checkout_url"`
		Fields      map[string]string `json:"fields"`
		IntentToken string            `json:"intent_token"`
	}

	SettlementResult struct {
		SubscriptionID string  `json:"subscription_id"`
		TransactionID  string  `json:"transaction_id"`
		PlanName       string  `json:"plan_name"`
		Credits        int     `json:"credits"`
		Amount         float64 `json:"amount"`
	}

	PlanResponse struct {
		ID      string  `json:"id"`
		Name    string  `json:"name"`
		Credits int     `json:"credits"`
		Amount  float64 `json:"amount"`
	}

	InitiatePaymentRequest struct {
		PlanID string `json:"plan_id" validate:"required"`
	}
)
