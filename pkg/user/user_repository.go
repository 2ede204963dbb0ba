package user

import (
	"PixGen-Backend/entities"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		EmailExists(ctx context.Context, email string) (bool, error)
		UpdateUsername(ctx context.Context, userID string, username string) error
		DeleteUserCascade(ctx context.Context, userID string) error

		CreateVerificationCode(ctx context.Context, code *entities.VerificationCode) error
		GetValidVerificationCode(ctx context.Context, email string, code string) (*entities.VerificationCode, error)
		GetLatestVerificationCode(ctx context.Context, email string) (*entities.VerificationCode, error)
		DeleteVerificationCodes(ctx context.Context, email string) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) UpdateUsername(ctx context.Context, userID string, username string) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		Update("username", username).Error
}

func (r *userRepository) DeleteUserCascade(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&entities.Generation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&entities.Subscription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&entities.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&entities.User{}).Error
	})
}

func (r *userRepository) CreateVerificationCode(ctx context.Context, code *entities.VerificationCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *userRepository) GetValidVerificationCode(ctx context.Context, email string, code string) (*entities.VerificationCode, error) {
	var record entities.VerificationCode
	if err := r.db.WithContext(ctx).
		Where("email = ? AND code = ? AND expires_at > ?", email, code, time.Now()).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *userRepository) GetLatestVerificationCode(ctx context.Context, email string) (*entities.VerificationCode, error) {
	var record entities.VerificationCode
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *userRepository) DeleteVerificationCodes(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&entities.VerificationCode{}).Error
}
