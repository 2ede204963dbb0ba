package credit

import (
	"context"
	"sync"
	"testing"
	"time"

	"PixGen-Backend/domain"
	"PixGen-Backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, credits int) entities.User {
	t.Helper()
	user := entities.User{
		ID:       uuid.New(),
		Username: "tester",
		Email:    uuid.NewString() + "@example.com",
		Credits:  credits,
		Verified: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedSubscription(t *testing.T, db *gorm.DB, userID uuid.UUID, remaining int, status string, endDate time.Time) entities.Subscription {
	t.Helper()
	sub := entities.Subscription{
		ID:               uuid.New(),
		UserID:           userID,
		PlanName:         "pro",
		CreditsRemaining: remaining,
		MaxCredits:       1000,
		StartDate:        endDate.AddDate(0, 0, -30),
		EndDate:          endDate,
		Status:           status,
	}
	require.NoError(t, db.Create(&sub).Error)
	return sub
}

func walletCredits(t *testing.T, db *gorm.DB, userID uuid.UUID) int {
	t.Helper()
	var user entities.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	return user.Credits
}

func subscriptionCredits(t *testing.T, db *gorm.DB, subID uuid.UUID) int {
	t.Helper()
	var sub entities.Subscription
	require.NoError(t, db.First(&sub, "id = ?", subID).Error)
	return sub.CreditsRemaining
}

func TestDebitOneCreditWalletOnly(t *testing.T) {
	db := newTestDB(t)
	service := NewCreditService(NewCreditRepository(db))
	user := seedUser(t, db, 1)

	charge, err := service.DebitOneCredit(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.PoolWallet, charge.Pool)
	assert.Nil(t, charge.SubscriptionID)
	assert.Equal(t, 0, walletCredits(t, db, user.ID))

	_, err = service.DebitOneCredit(context.Background(), user.ID.String())
	assert.ErrorIs(t, err, domain.ErrInsufficientCredits)
	assert.Equal(t, 0, walletCredits(t, db, user.ID))
}

func TestDebitOneCreditPrefersSubscription(t *testing.T) {
	db := newTestDB(t)
	service := NewCreditService(NewCreditRepository(db))
	user := seedUser(t, db, 5)
	sub := seedSubscription(t, db, user.ID, 1, entities.SubscriptionStatusActive, time.Now().Add(24*time.Hour))

	charge, err := service.DebitOneCredit(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.PoolSubscription, charge.Pool)
	require.NotNil(t, charge.SubscriptionID)
	assert.Equal(t, sub.ID, *charge.SubscriptionID)

	assert.Equal(t, 0, subscriptionCredits(t, db, sub.ID))
	assert.Equal(t, 5, walletCredits(t, db, user.ID))

	// Subscription drained; the next debit hits the wallet.
	charge, err = service.DebitOneCredit(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.PoolWallet, charge.Pool)
	assert.Equal(t, 4, walletCredits(t, db, user.ID))
}

func TestDebitOneCreditLapsedSubscriptionFallsToWallet(t *testing.T) {
	db := newTestDB(t)
	service := NewCreditService(NewCreditRepository(db))
	user := seedUser(t, db, 2)
	sub := seedSubscription(t, db, user.ID, 40, entities.SubscriptionStatusActive, time.Now().Add(-time.Hour))

	charge, err := service.DebitOneCredit(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.PoolWallet, charge.Pool)
	assert.Equal(t, 1, walletCredits(t, db, user.ID))
	assert.Equal(t, 40, subscriptionCredits(t, db, sub.ID))
}

func TestDebitOneCreditIgnoresReplacedSubscription(t *testing.T) {
	db := newTestDB(t)
	service := NewCreditService(NewCreditRepository(db))
	user := seedUser(t, db, 1)
	sub := seedSubscription(t, db, user.ID, 40, entities.SubscriptionStatusReplaced, time.Now().Add(24*time.Hour))

	charge, err := service.DebitOneCredit(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.PoolWallet, charge.Pool)
	assert.Equal(t, 40, subscriptionCredits(t, db, sub.ID))
}

func TestCreditOneBackRefundsSamePool(t *testing.T) {
	db := newTestDB(t)
	service := NewCreditService(NewCreditRepository(db))

	t.Run("subscription", func(t *testing.T) {
		user := seedUser(t, db, 4)
		sub := seedSubscription(t, db, user.ID, 10, entities.SubscriptionStatusActive, time.Now().Add(24*time.Hour))

		charge, err := service.DebitOneCredit(context.Background(), user.ID.String())
		require.NoError(t, err)
		require.Equal(t, 9, subscriptionCredits(t, db, sub.ID))

		require.NoError(t, service.CreditOneBack(context.Background(), user.ID.String(), charge))
		assert.Equal(t, 10, subscriptionCredits(t, db, sub.ID))
		assert.Equal(t, 4, walletCredits(t, db, user.ID))
	})

	t.Run("wallet", func(t *testing.T) {
		user := seedUser(t, db, 4)

		charge, err := service.DebitOneCredit(context.Background(), user.ID.String())
		require.NoError(t, err)
		require.Equal(t, 3, walletCredits(t, db, user.ID))

		require.NoError(t, service.CreditOneBack(context.Background(), user.ID.String(), charge))
		assert.Equal(t, 4, walletCredits(t, db, user.ID))
	})
}

func TestCreditOneBackRejectsBadCharge(t *testing.T) {
	db := newTestDB(t)
	service := NewCreditService(NewCreditRepository(db))
	user := seedUser(t, db, 4)

	err := service.CreditOneBack(context.Background(), user.ID.String(), nil)
	assert.ErrorIs(t, err, domain.ErrCreditBackFailed)

	err = service.CreditOneBack(context.Background(), user.ID.String(), &domain.CreditCharge{Pool: domain.PoolSubscription})
	assert.ErrorIs(t, err, domain.ErrCreditBackFailed)

	err = service.CreditOneBack(context.Background(), user.ID.String(), &domain.CreditCharge{Pool: "loyalty"})
	assert.ErrorIs(t, err, domain.ErrCreditBackFailed)
}

func TestDecrementIsGuarded(t *testing.T) {
	db := newTestDB(t)
	repo := NewCreditRepository(db)
	user := seedUser(t, db, 1)

	ok, err := repo.DecrementUserCredit(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.True(t, ok)

	// The balance is now zero; the guard must refuse a second decrement
	// rather than going negative.
	ok, err = repo.DecrementUserCredit(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, walletCredits(t, db, user.ID))

	sub := seedSubscription(t, db, user.ID, 1, entities.SubscriptionStatusActive, time.Now().Add(24*time.Hour))
	ok, err = repo.DecrementSubscriptionCredit(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DecrementSubscriptionCredit(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, subscriptionCredits(t, db, sub.ID))
}

func TestDebitOneCreditConcurrentNeverDoubleSpends(t *testing.T) {
	db := newTestDB(t)
	service := NewCreditService(NewCreditRepository(db))
	user := seedUser(t, db, 1)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.DebitOneCredit(context.Background(), user.ID.String())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientCredits)
		}
	}

	// One credit, at most one winner; the guarded update must never let
	// the balance go observably negative.
	assert.Equal(t, 1, successes)
	assert.Equal(t, 0, walletCredits(t, db, user.ID))
}

func TestGetBalanceCombinesPools(t *testing.T) {
	db := newTestDB(t)
	service := NewCreditService(NewCreditRepository(db))

	user := seedUser(t, db, 3)
	balance, err := service.GetBalance(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 3, balance.WalletCredits)
	assert.Nil(t, balance.Subscription)
	assert.Equal(t, 3, balance.Combined)

	sub := seedSubscription(t, db, user.ID, 120, entities.SubscriptionStatusActive, time.Now().Add(24*time.Hour))
	balance, err = service.GetBalance(context.Background(), user.ID.String())
	require.NoError(t, err)
	require.NotNil(t, balance.Subscription)
	assert.Equal(t, sub.ID.String(), balance.Subscription.ID)
	assert.Equal(t, 120, balance.Subscription.CreditsRemaining)
	assert.Equal(t, 123, balance.Combined)
}

func TestGetBalanceLapsedSubscriptionContributesNothing(t *testing.T) {
	db := newTestDB(t)
	service := NewCreditService(NewCreditRepository(db))

	user := seedUser(t, db, 2)
	seedSubscription(t, db, user.ID, 80, entities.SubscriptionStatusActive, time.Now().Add(-time.Hour))

	balance, err := service.GetBalance(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Nil(t, balance.Subscription)
	assert.Equal(t, 2, balance.Combined)
}
