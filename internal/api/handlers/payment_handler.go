package handlers

import (
	"PixGen-Backend/domain"
	"PixGen-Backend/internal/api/presenters"
	"PixGen-Backend/pkg/payment"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PaymentHandler interface {
		GetPlans(c *fiber.Ctx) error
		InitiatePayment(c *fiber.Ctx) error
		PaymentSuccess(c *fiber.Ctx) error
		PaymentFailure(c *fiber.Ctx) error
	}

	paymentHandler struct {
		paymentService payment.PaymentService
		validator      *validator.Validate
	}
)

func NewPaymentHandler(paymentService payment.PaymentService, validator *validator.Validate) PaymentHandler {
	return &paymentHandler{
		paymentService: paymentService,
		validator:      validator,
	}
}

func (h *paymentHandler) GetPlans(c *fiber.Ctx) error {
	plans, err := h.paymentService.GetPlans(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPlans, err)
	}

	return presenters.SuccessResponse(c, plans, fiber.StatusOK, domain.MessageSuccessGetPlans)
}

func (h *paymentHandler) InitiatePayment(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.InitiatePaymentRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInitiatePayment, err)
	}

	form, err := h.paymentService.InitiatePayment(c.Context(), userID, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPlan):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedInitiatePayment, err)
		case errors.Is(err, domain.ErrPurchaseNotAllowed):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedInitiatePayment, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInitiatePayment, err)
		}
	}

	return presenters.SuccessResponse(c, form, fiber.StatusOK, domain.MessageSuccessInitiatePayment)
}

// PaymentSuccess is the gateway success callback. The user identity
// comes from the stored intent, not a session; the callback only needs
// the intent token issued at initiation and the signed data blob.
func (h *paymentHandler) PaymentSuccess(c *fiber.Ctx) error {
	token := c.Query("token")
	data := c.Query("data")
	if data == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSettlePayment, domain.ErrMalformedPayload)
	}

	result, err := h.paymentService.SettlePayment(c.Context(), token, data)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSignature), errors.Is(err, domain.ErrTransactionMismatch):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSettlePayment, err)
		case errors.Is(err, domain.ErrMalformedPayload):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSettlePayment, err)
		case errors.Is(err, domain.ErrIntentExpired), errors.Is(err, domain.ErrAlreadySettled):
			return presenters.ErrorResponse(c, fiber.StatusGone, domain.MessageFailedSettlePayment, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSettlePayment, err)
		}
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessSettlePayment)
}

func (h *paymentHandler) PaymentFailure(c *fiber.Ctx) error {
	h.paymentService.CancelPayment(c.Query("token"))
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelPayment)
}
