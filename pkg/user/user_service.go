package user

import (
	"PixGen-Backend/domain"
	"PixGen-Backend/entities"
	"PixGen-Backend/internal/utils/mailing"
	"PixGen-Backend/pkg/credit"
	"PixGen-Backend/pkg/jwt"
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	codeLength   = 6
	codeLifetime = 10 * time.Minute
	codeCooldown = 60 * time.Second
)

type (
	UserService interface {
		SendVerificationCode(ctx context.Context, email string) error
		Register(ctx context.Context, req domain.RegisterRequest) error
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.MeResponse, error)
		UpdateUsername(ctx context.Context, userID string, username string) error
		DeleteAccount(ctx context.Context, userID string) error
	}

	userService struct {
		userRepository UserRepository
		creditService  credit.CreditService
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, creditService credit.CreditService, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		creditService:  creditService,
		jwtService:     jwtService,
	}
}

func (s *userService) SendVerificationCode(ctx context.Context, email string) error {
	exists, err := s.userRepository.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrEmailExists
	}

	latest, err := s.userRepository.GetLatestVerificationCode(ctx, email)
	if err != nil {
		return err
	}
	if latest != nil && time.Since(latest.CreatedAt) < codeCooldown {
		return domain.ErrCodeCooldown
	}

	code, err := generateNumericCode(codeLength)
	if err != nil {
		return err
	}

	if err := s.userRepository.DeleteVerificationCodes(ctx, email); err != nil {
		return err
	}
	if err := s.userRepository.CreateVerificationCode(ctx, &entities.VerificationCode{
		ID:        uuid.New(),
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(codeLifetime),
		CreatedAt: time.Now(),
	}); err != nil {
		return err
	}

	return mailing.SendVerificationCode(email, code)
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) error {
	record, err := s.userRepository.GetValidVerificationCode(ctx, req.Email, req.Code)
	if err != nil {
		return err
	}
	if record == nil {
		return domain.ErrInvalidCode
	}

	exists, err := s.userRepository.EmailExists(ctx, req.Email)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepository.CreateUser(ctx, &entities.User{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Credits:  3,
		Verified: true,
		Role:     domain.RoleUser,
	}); err != nil {
		return err
	}

	return s.userRepository.DeleteVerificationCodes(ctx, req.Email)
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCredentialsInvalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return &domain.LoginResponse{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.MeResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	balance, err := s.creditService.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.MeResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Balance:  balance,
	}, nil
}

func (s *userService) UpdateUsername(ctx context.Context, userID string, username string) error {
	return s.userRepository.UpdateUsername(ctx, userID, username)
}

func (s *userService) DeleteAccount(ctx context.Context, userID string) error {
	return s.userRepository.DeleteUserCascade(ctx, userID)
}

func generateNumericCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
