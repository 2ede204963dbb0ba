package domain

import (
	"errors"
)

var (
	MessageSuccessAdminLogin = "admin logged in successfully"
	MessageSuccessDashboard  = "dashboard stats retrieved successfully"

	MessageFailedAdminLogin = "invalid username or password"
	MessageFailedDashboard  = "failed to retrieve dashboard stats"

	ErrAdminCredentialsInvalid = errors.New("invalid username or password")
)

type (
	AdminLoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	AdminLoginResponse struct {
		Token string `json:"token"`
	}

	DashboardStats struct {
		TotalUsers          int64   `json:"total_users"`
		ActiveSubscriptions int64   `json:"active_subscriptions"`
		TotalRevenue        float64 `json:"total_revenue"`
		RevenueThisMonth    float64 `json:"revenue_this_month"`
		ImagesToday         int64   `json:"images_today"`
		ImagesThisMonth     int64   `json:"images_this_month"`
	}
)
