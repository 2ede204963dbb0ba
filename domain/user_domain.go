package domain

import (
	"errors"
)

var (
	MessageSuccessRegister       = "account created successfully"
	MessageSuccessLogin          = "logged in successfully"
	MessageSuccessSendCode       = "verification code sent"
	MessageSuccessGetMe          = "profile retrieved successfully"
	MessageSuccessUpdateUsername = "username updated successfully"
	MessageSuccessDeleteAccount  = "account deleted successfully"

	MessageFailedRegister       = "failed to create account"
	MessageFailedLogin          = "invalid email or password"
	MessageFailedSendCode       = "failed to send verification code"
	MessageFailedGetMe          = "failed to retrieve profile"
	MessageFailedUpdateUsername = "failed to update username"
	MessageFailedDeleteAccount  = "failed to delete account"

	ErrEmailExists        = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCode        = errors.New("verification code is invalid")
	ErrCodeCooldown       = errors.New("please wait 60 seconds before requesting a new code")
	ErrCredentialsInvalid = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type (
	SendCodeRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	RegisterRequest struct {
		Username string `json:"username" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Code     string `json:"code" validate:"required,len=6"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token    string `json:"token"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}

	UpdateUsernameRequest struct {
		Username string `json:"username" validate:"required"`
	}

	MeResponse struct {
		ID       string         `json:"id"`
		Username string         `json:"username"`
		Email    string         `json:"email"`
		Balance  *CreditBalance `json:"balance"`
	}
)
