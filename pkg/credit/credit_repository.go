package credit

import (
	"PixGen-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CreditRepository interface {
		// GetEffectiveSubscription returns the subscription eligible to be
		// debited: active, unexpired, non-zero balance. Returns nil when
		// none qualifies.
		GetEffectiveSubscription(ctx context.Context, userID string) (*entities.Subscription, error)

		// The decrement methods are single guarded conditional updates;
		// the returned bool reports whether exactly one row was affected.
		DecrementSubscriptionCredit(ctx context.Context, subscriptionID uuid.UUID) (bool, error)
		DecrementUserCredit(ctx context.Context, userID string) (bool, error)

		IncrementSubscriptionCredit(ctx context.Context, subscriptionID uuid.UUID) error
		IncrementUserCredit(ctx context.Context, userID string) error

		GetUserCredits(ctx context.Context, userID string) (int, error)
	}

	creditRepository struct {
		db *gorm.DB
	}
)

func NewCreditRepository(db *gorm.DB) CreditRepository {
	return &creditRepository{
		db: db,
	}
}

func (r *creditRepository) GetEffectiveSubscription(ctx context.Context, userID string) (*entities.Subscription, error) {
	var sub entities.Subscription
	if err := r.db.WithContext(ctx).
		Where(
			"user_id = ? AND status = ? AND end_date > ? AND credits_remaining > 0",
			userID, entities.SubscriptionStatusActive, time.Now(),
		).
		Order("end_date DESC").
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *creditRepository) DecrementSubscriptionCredit(ctx context.Context, subscriptionID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("id = ? AND credits_remaining > 0", subscriptionID).
		UpdateColumn("credits_remaining", gorm.Expr("credits_remaining - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *creditRepository) DecrementUserCredit(ctx context.Context, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ? AND credits > 0", userID).
		UpdateColumn("credits", gorm.Expr("credits - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *creditRepository) IncrementSubscriptionCredit(ctx context.Context, subscriptionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("id = ?", subscriptionID).
		UpdateColumn("credits_remaining", gorm.Expr("credits_remaining + 1")).Error
}

func (r *creditRepository) IncrementUserCredit(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		UpdateColumn("credits", gorm.Expr("credits + 1")).Error
}

func (r *creditRepository) GetUserCredits(ctx context.Context, userID string) (int, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Select("credits").
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		return 0, err
	}
	return user.Credits, nil
}
