package payment

import (
	"io"
	"net/http"

	"tutorhub/internal/domain"
	"tutorhub/internal/middleware"
	"tutorhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody matches the limit the provider documents for event payloads.
const maxWebhookBody = 65536

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.POST("/payments/intent", middleware.RequireRole(domain.RoleStudent), h.CreateIntent)
	public.POST("/payments/webhook", h.Webhook)
}

// CreateIntent godoc
// @Summary      Create payment intent
// @Description  Starts a card payment for the student's confirmed booking
// @Tags         Payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body CreateIntentRequest true "Booking to pay for"
// @Success      201 {object} IntentResponse
// @Router       /payments/intent [post]
func (h *Handler) CreateIntent(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}

	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.CreateIntent(c.Request.Context(), p.ID, req.BookingID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.Error(c, http.StatusServiceUnavailable, "READ_ERROR", "Failed to read request body")
		return
	}

	if err := h.service.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
