package handlers

import (
	"PixGen-Backend/domain"
	"PixGen-Backend/internal/api/presenters"
	"PixGen-Backend/pkg/generation"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	guestCreditsCookie = "guest_credits"
	guestUsedCookie    = "guest_used"
	guestDailyCredits  = 2
)

type (
	GenerationHandler interface {
		Generate(c *fiber.Ctx) error
		GenerateGuest(c *fiber.Ctx) error
		GetLibrary(c *fiber.Ctx) error
		DeleteGeneration(c *fiber.Ctx) error
	}

	generationHandler struct {
		generationService generation.GenerationService
		validator         *validator.Validate
	}
)

func NewGenerationHandler(generationService generation.GenerationService, validator *validator.Validate) GenerationHandler {
	return &generationHandler{
		generationService: generationService,
		validator:         validator,
	}
}

func (h *generationHandler) Generate(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.GenerateRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGenerate, err)
	}

	resp, err := h.generationService.GenerateForUser(c.Context(), userID, *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientCredits):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedGenerate, err)
		case errors.Is(err, domain.ErrGenerationBusy):
			return presenters.ErrorResponse(c, fiber.StatusTooManyRequests, domain.MessageFailedGenerate, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGenerate, err)
		}
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessGenerate)
}

func (h *generationHandler) GenerateGuest(c *fiber.Ctx) error {
	credits := guestCreditsLeft(c)
	if credits <= 0 {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedGenerate, domain.ErrGuestCreditsExhausted)
	}

	req := new(domain.GenerateRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGenerate, err)
	}

	resp, err := h.generationService.GenerateForGuest(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrGenerationBusy) {
			return presenters.ErrorResponse(c, fiber.StatusTooManyRequests, domain.MessageFailedGenerate, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGenerate, err)
	}

	setGuestCookies(c, credits-1)
	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessGenerate)
}

func (h *generationHandler) GetLibrary(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	items, err := h.generationService.GetUserGenerations(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetGenerations, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetGenerations)
}

func (h *generationHandler) DeleteGeneration(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	generationID := c.Params("id")

	if err := h.generationService.DeleteGeneration(c.Context(), userID, generationID); err != nil {
		if errors.Is(err, domain.ErrGenerationNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteImage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteImage, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteImage)
}

// Guests get two free generations per day, tracked by cookies: a
// short-lived counter plus a day-long used marker that survives the
// counter cookie being dropped.
func guestCreditsLeft(c *fiber.Ctx) int {
	if raw := c.Cookies(guestCreditsCookie); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	if c.Cookies(guestUsedCookie) == "1" {
		return 0
	}
	return guestDailyCredits
}

func setGuestCookies(c *fiber.Ctx, remaining int) {
	c.Cookie(&fiber.Cookie{
		Name:    guestCreditsCookie,
		Value:   strconv.Itoa(remaining),
		Expires: time.Now().Add(24 * time.Hour),
	})
	c.Cookie(&fiber.Cookie{
		Name:    guestUsedCookie,
		Value:   "1",
		Expires: time.Now().Add(24 * time.Hour),
	})
}
