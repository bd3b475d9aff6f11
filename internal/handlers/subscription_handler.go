package handlers

import (
	"net/http"

	"auditionhub_backend/internal/logger"
	"auditionhub_backend/internal/services"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody caps webhook payloads read into memory.
const maxWebhookBody = 1 << 20

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/pricing", h.Pricing)
	rg.POST("/webhooks/stripe", h.StripeWebhook)

	protected := rg.Group("")
	protected.Use(authMW)
	{
		protected.GET("/subscription", h.GetSubscription)
		protected.POST("/subscription/cancel", h.CancelSubscription)
		protected.POST("/payments/checkout", h.Checkout)
	}
}

// Pricing godoc
// @Summary Subscription tiers and their limits
// @Tags subscriptions
// @Produce json
// @Success 200 {array} subscription.Plan
// @Router /pricing [get]
func (h *SubscriptionHandler) Pricing(c *gin.Context) {
	c.JSON(http.StatusOK, h.subscriptionService.Pricing())
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.GetSubscription(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// Checkout godoc
// @Summary Start a Stripe Checkout session for a plan or a paid service
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CheckoutRequest true "What to buy"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 503 {object} apperrors.ErrorResponse
// @Router /payments/checkout [post]
func (h *SubscriptionHandler) Checkout(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CheckoutRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	session, err := h.subscriptionService.Checkout(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.CancelSubscription(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// StripeWebhook godoc
// @Summary Stripe event receiver
// @Description The raw body is verified against the Stripe-Signature header.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe signature"
// @Success 200 {object} dto.WebhookResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /webhooks/stripe [post]
func (h *SubscriptionHandler) StripeWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	payload, err := c.GetRawData()
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to read stripe webhook body", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unable to read request body"))
		return
	}

	err = h.subscriptionService.HandleWebhook(c.Request.Context(), h.GetDB(c), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{Received: true})
}
