package handlers

import (
	"net/http"

	"auditionhub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	*BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(base *BaseHandler, analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      base,
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/dashboard", authMW, h.Dashboard)
	rg.GET("/analytics", authMW, h.Analytics)
}

// Dashboard godoc
// @Summary Audition and expense overview
// @Description Cached per user for 60 seconds.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Dashboard
// @Router /dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.analyticsService.Dashboard(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// Analytics godoc
// @Summary Insights, six-month trends and recent auditions
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Analytics
// @Router /analytics [get]
func (h *AnalyticsHandler) Analytics(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	analytics, err := h.analyticsService.Analytics(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}
