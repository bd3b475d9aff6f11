package handlers

import (
	"net/http"

	"auditionhub_backend/internal/logger"
	"auditionhub_backend/internal/services"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const emailSignatureHeader = "X-Email-Signature"

type EmailHandler struct {
	*BaseHandler
	emailService services.EmailService
}

func NewEmailHandler(base *BaseHandler, emailService services.EmailService) *EmailHandler {
	return &EmailHandler{
		BaseHandler:  base,
		emailService: emailService,
	}
}

func (h *EmailHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/webhooks/email", h.InboundEmail)

	email := rg.Group("/email")
	email.Use(authMW)
	{
		email.GET("/settings", h.GetSettings)
		email.PUT("/settings", h.UpdateSettings)
		email.GET("/logs", h.ListLogs)
	}
}

// InboundEmail godoc
// @Summary Receive a forwarded casting email
// @Description When a webhook secret is configured the body must carry an HMAC-SHA256 hex signature.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Email-Signature header string false "HMAC-SHA256 of the body"
// @Param request body dto.InboundEmailRequest true "Email"
// @Success 200 {object} dto.InboundEmailResponse
// @Failure 400 {object} apperrors.ErrorResponse "Could not parse required audition details"
// @Failure 404 {object} apperrors.ErrorResponse "Unknown forwarding address"
// @Router /webhooks/email [post]
func (h *EmailHandler) InboundEmail(c *gin.Context) {
	ctx := c.Request.Context()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	payload, err := c.GetRawData()
	if err != nil {
		logger.CtxWithError(ctx, "failed to read inbound email body", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unable to read request body"))
		return
	}

	if err := h.emailService.VerifySignature(payload, c.GetHeader(emailSignatureHeader)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.InboundEmailRequest
	if err := binding.JSON.BindBody(payload, &req); err != nil {
		logger.CtxWithError(ctx, "Failed to bind inbound email", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}
	if !h.validate(c, &req, "body") {
		return
	}

	result, err := h.emailService.IngestEmail(ctx, h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EmailHandler) GetSettings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	settings, err := h.emailService.GetSettings(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *EmailHandler) UpdateSettings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEmailSettingsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	settings, err := h.emailService.UpdateSettings(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// ListLogs returns the user's email logs, newest first.
func (h *EmailHandler) ListLogs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	logs, err := h.emailService.ListLogs(h.GetDB(c), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
