package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGenerate       = "images generated successfully"
	MessageSuccessGetGenerations = "generations retrieved successfully"
	MessageSuccessDeleteImage    = "image deleted successfully"

	MessageFailedGenerate       = "failed to generate images"
	MessageFailedGetGenerations = "failed to retrieve generations"
	MessageFailedDeleteImage    = "failed to delete image"

	ErrGenerationBusy        = errors.New("generation already in progress")
	ErrGenerationBackend     = errors.New("generation backend failed")
	ErrGenerationNotFound    = errors.New("generation not found")
	ErrGuestCreditsExhausted = errors.New("free guest credits exhausted")
)

type (
	GenerateRequest struct {
		Prompt string `json:"prompt" validate:"required"`
		Aspect string `json:"aspect" validate:"required"`
	}

	GenerateResponse struct {
		Images []string `json:"images"`
	}

	GenerationItem struct {
		ID          string    `json:"id"`
		Prompt      string    `json:"prompt"`
		ImageURL    string    `json:"image_url"`
		AspectRatio string    `json:"aspect_ratio"`
		CreatedAt   time.Time `json:"created_at"`
	}
)
