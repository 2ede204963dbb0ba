package admin

import (
	"PixGen-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	AdminRepository interface {
		GetAdminByUsername(ctx context.Context, username string) (*entities.Admin, error)

		CountUsers(ctx context.Context) (int64, error)
		CountActiveSubscriptions(ctx context.Context) (int64, error)
		SumRevenue(ctx context.Context) (float64, error)
		SumRevenueSince(ctx context.Context, since time.Time) (float64, error)
		CountGenerationsSince(ctx context.Context, since time.Time) (int64, error)
	}

	adminRepository struct {
		db *gorm.DB
	}
)

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{
		db: db,
	}
}

func (r *adminRepository) GetAdminByUsername(ctx context.Context, username string) (*entities.Admin, error) {
	var admin entities.Admin
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&count).Error
	return count, err
}

func (r *adminRepository) CountActiveSubscriptions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("status = ?", entities.SubscriptionStatusActive).
		Count(&count).Error
	return count, err
}

func (r *adminRepository) SumRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&entities.Transaction{}).
		Where("amount > 0").
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total)
	return total, err
}

func (r *adminRepository) SumRevenueSince(ctx context.Context, since time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&entities.Transaction{}).
		Where("amount > 0 AND created_at >= ?", since).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total)
	return total, err
}

func (r *adminRepository) CountGenerationsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Generation{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}
