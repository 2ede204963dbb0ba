package payment

import (
	"PixGen-Backend/domain"
	"PixGen-Backend/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const subscriptionPeriod = 30 * 24 * time.Hour

type (
	PaymentRepository interface {
		GetPlanByID(ctx context.Context, id string) (*entities.Plan, error)
		GetActivePlans(ctx context.Context) ([]*entities.Plan, error)
		TransactionExistsByPID(ctx context.Context, pid string) (bool, error)

		// CommitSettlement turns a verified callback into ledger state as
		// one unit of work: every still-active subscription of the user is
		// demoted to replaced, the success transaction is appended, and
		// the new subscription is inserted. Nothing persists on error.
		CommitSettlement(ctx context.Context, userID uuid.UUID, intent domain.PurchaseIntent, refID *string) (*entities.Subscription, *entities.Transaction, error)
	}

	paymentRepository struct {
		db *gorm.DB
	}
)

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

func (r *paymentRepository) GetPlanByID(ctx context.Context, id string) (*entities.Plan, error) {
	var plan entities.Plan
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *paymentRepository) GetActivePlans(ctx context.Context) ([]*entities.Plan, error) {
	var plans []*entities.Plan
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("amount ASC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *paymentRepository) TransactionExistsByPID(ctx context.Context, pid string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Transaction{}).
		Where("pid = ?", pid).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *paymentRepository) CommitSettlement(ctx context.Context, userID uuid.UUID, intent domain.PurchaseIntent, refID *string) (*entities.Subscription, *entities.Transaction, error) {
	transaction := &entities.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		PlanName:      intent.PlanName,
		Amount:        intent.Amount,
		Status:        "success",
		PID:           intent.TxnUUID,
		RefID:         refID,
		PaymentMethod: "eSewa",
		CreatedAt:     time.Now(),
	}

	startDate := time.Now()
	subscription := &entities.Subscription{
		ID:               uuid.New(),
		UserID:           userID,
		PlanName:         intent.PlanName,
		CreditsRemaining: intent.Credits,
		MaxCredits:       intent.Credits,
		StartDate:        startDate,
		EndDate:          startDate.Add(subscriptionPeriod),
		Status:           entities.SubscriptionStatusActive,
		TransactionID:    &transaction.ID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Subscription{}).
			Where("user_id = ? AND status = ?", userID, entities.SubscriptionStatusActive).
			Update("status", entities.SubscriptionStatusReplaced).Error; err != nil {
			return err
		}

		if err := tx.Create(transaction).Error; err != nil {
			return err
		}

		return tx.Create(subscription).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return subscription, transaction, nil
}
