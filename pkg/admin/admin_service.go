package admin

import (
	"PixGen-Backend/domain"
	"PixGen-Backend/pkg/jwt"
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	AdminService interface {
		Login(ctx context.Context, req domain.AdminLoginRequest) (*domain.AdminLoginResponse, error)
		GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	}

	adminService struct {
		adminRepository AdminRepository
		jwtService      jwt.JWTService
	}
)

func NewAdminService(adminRepository AdminRepository, jwtService jwt.JWTService) AdminService {
	return &adminService{
		adminRepository: adminRepository,
		jwtService:      jwtService,
	}
}

func (s *adminService) Login(ctx context.Context, req domain.AdminLoginRequest) (*domain.AdminLoginResponse, error) {
	admin, err := s.adminRepository.GetAdminByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAdminCredentialsInvalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrAdminCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(admin.ID.String(), domain.RoleAdmin)
	return &domain.AdminLoginResponse{Token: token}, nil
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	totalUsers, err := s.adminRepository.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	activeSubs, err := s.adminRepository.CountActiveSubscriptions(ctx)
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.adminRepository.SumRevenue(ctx)
	if err != nil {
		return nil, err
	}
	monthRevenue, err := s.adminRepository.SumRevenueSince(ctx, startOfMonth)
	if err != nil {
		return nil, err
	}
	imagesToday, err := s.adminRepository.CountGenerationsSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}
	imagesThisMonth, err := s.adminRepository.CountGenerationsSince(ctx, startOfMonth)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalUsers:          totalUsers,
		ActiveSubscriptions: activeSubs,
		TotalRevenue:        totalRevenue,
		RevenueThisMonth:    monthRevenue,
		ImagesToday:         imagesToday,
		ImagesThisMonth:     imagesThisMonth,
	}, nil
}
