package payment

import (
	"PixGen-Backend/domain"
	"PixGen-Backend/internal/utils"
	"PixGen-Backend/pkg/credit"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// A new plan may only be bought while combined remaining credits are
// below this floor; it prevents stacking paid allowances.
const purchaseCreditFloor = 4

type (
	PaymentService interface {
		GetPlans(ctx context.Context) ([]*domain.PlanResponse, error)

		// InitiatePayment builds the signed checkout form for the plan and
		// stores the purchase intent under an opaque token carried through
		// the gateway round trip.
		InitiatePayment(ctx context.Context, userID string, planID string) (*domain.PaymentForm, error)

		// SettlePayment consumes a verified gateway callback: signature
		// check, intent match, replay guard, then the atomic commit. The
		// intent is preserved when the commit fails.
		SettlePayment(ctx context.Context, intentToken string, encodedCallback string) (*domain.SettlementResult, error)

		// CancelPayment discards the pending intent (gateway failure URL).
		CancelPayment(intentToken string)
	}

	paymentService struct {
		paymentRepository PaymentRepository
		creditService     credit.CreditService
		intents           IntentStore
		codec             SignatureCodec
		checkoutURL       string
		appURL            string
		productCode       string
	}
)

func NewPaymentService(
	paymentRepository PaymentRepository,
	creditService credit.CreditService,
	intents IntentStore,
	codec SignatureCodec,
) PaymentService {
	return &paymentService{
		paymentRepository: paymentRepository,
		creditService:     creditService,
		intents:           intents,
		codec:             codec,
		checkoutURL:       utils.GetConfig("ESEWA_CHECKOUT_URL"),
		appURL:            utils.GetConfig("APP_URL"),
		productCode:       utils.GetConfig("ESEWA_PRODUCT_CODE"),
	}
}

func (s *paymentService) GetPlans(ctx context.Context) ([]*domain.PlanResponse, error) {
	plans, err := s.paymentRepository.GetActivePlans(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		result = append(result, &domain.PlanResponse{
			ID:      plan.ID,
			Name:    plan.Name,
			Credits: plan.Credits,
			Amount:  plan.Amount,
		})
	}
	return result, nil
}

func (s *paymentService) InitiatePayment(ctx context.Context, userID string, planID string) (*domain.PaymentForm, error) {
	plan, err := s.paymentRepository.GetPlanByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidPlan
		}
		return nil, err
	}

	balance, err := s.creditService.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance.Combined >= purchaseCreditFloor {
		return nil, domain.ErrPurchaseNotAllowed
	}

	txnUUID := fmt.Sprintf("%s-%d", userID, time.Now().Unix())
	token := s.intents.Put(domain.PurchaseIntent{
		UserID:   userID,
		PlanID:   plan.ID,
		PlanName: plan.Name,
		Credits:  plan.Credits,
		Amount:   plan.Amount,
		TxnUUID:  txnUUID,
	})

	amount := strconv.FormatFloat(plan.Amount, 'f', -1, 64)
	fields := map[string]string{
		"amount":                  amount,
		"tax_amount":              "0",
		"product_service_charge":  "0",
		"product_delivery_charge": "0",
		"product_code":            s.productCode,
		"total_amount":            amount,
		"transaction_uuid":        txnUUID,
		"success_url":             s.appURL + "/api/v1/payments/success?token=" + token,
		"failure_url":             s.appURL + "/api/v1/payments/failure?token=" + token,
		"signed_field_names":      "total_amount,transaction_uuid,product_code",
		"signature":               s.codec.SignCheckout(amount, txnUUID),
	}

	return &domain.PaymentForm{
		CheckoutURL: s.checkoutURL,
		Fields:      fields,
		IntentToken: token,
	}, nil
}

func (s *paymentService) SettlePayment(ctx context.Context, intentToken string, encodedCallback string) (*domain.SettlementResult, error) {
	data, err := s.codec.VerifyCallback(encodedCallback)
	if err != nil {
		return nil, err
	}

	intent, ok := s.intents.Get(intentToken)
	if !ok {
		return nil, domain.ErrIntentExpired
	}

	if data["transaction_uuid"] != intent.TxnUUID {
		return nil, domain.ErrTransactionMismatch
	}

	settled, err := s.paymentRepository.TransactionExistsByPID(ctx, intent.TxnUUID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCommitFailed, err)
	}
	if settled {
		// Replay of an already-settled callback: the ledger stays
		// untouched and the intent is no longer needed.
		s.intents.Delete(intentToken)
		return nil, domain.ErrAlreadySettled
	}

	userUUID, err := uuid.Parse(intent.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	var refID *string
	if code := data["transaction_code"]; code != "" {
		refID = &code
	}

	subscription, transaction, err := s.paymentRepository.CommitSettlement(ctx, userUUID, *intent, refID)
	if err != nil {
		// Intent stays in the store so the settlement can be retried.
		return nil, fmt.Errorf("%w: %v", domain.ErrCommitFailed, err)
	}

	s.intents.Delete(intentToken)

	return &domain.SettlementResult{
		SubscriptionID: subscription.ID.String(),
		TransactionID:  transaction.ID.String(),
		PlanName:       intent.PlanName,
		Credits:        intent.Credits,
		Amount:         intent.Amount,
	}, nil
}

func (s *paymentService) CancelPayment(intentToken string) {
	s.intents.Delete(intentToken)
}
