package handlers

import (
	"net/http"

	"auditionhub_backend/internal/services"
	"auditionhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuditionHandler struct {
	*BaseHandler
	auditionService services.AuditionService
}

func NewAuditionHandler(base *BaseHandler, auditionService services.AuditionService) *AuditionHandler {
	return &AuditionHandler{
		BaseHandler:     base,
		auditionService: auditionService,
	}
}

func (h *AuditionHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	auditions := rg.Group("/auditions")
	auditions.Use(authMW)
	{
		auditions.GET("", h.ListAuditions)
		auditions.POST("", h.CreateAudition)
		auditions.GET("/calendar", h.Calendar)
		auditions.GET("/:id", h.GetAudition)
		auditions.PUT("/:id", h.UpdateAudition)
		auditions.PATCH("/:id/status", h.UpdateStatus)
		auditions.DELETE("/:id", h.DeleteAudition)
	}
}

// CreateAudition godoc
// @Summary Record an audition
// @Description FREE plans may create 10 auditions per calendar month by hand.
// @Tags auditions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAuditionRequest true "Audition"
// @Success 201 {object} models.Audition
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse "PLAN_LIMIT_EXCEEDED"
// @Router /auditions [post]
func (h *AuditionHandler) CreateAudition(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAuditionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	audition, err := h.auditionService.CreateAudition(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, audition)
}

// ListAuditions godoc
// @Summary List auditions
// @Tags auditions
// @Produce json
// @Security BearerAuth
// @Param search query string false "Project title or role name"
// @Param status query string false "Status or ALL"
// @Param type query string false "Type or ALL"
// @Param tab query string false "upcoming, past or all"
// @Param actor_id query string false "Actor"
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} dto.PaginatedResponse
// @Router /auditions [get]
func (h *AuditionHandler) ListAuditions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.AuditionListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	page, pageSize := ParsePagination(c)

	result, err := h.auditionService.ListAuditions(h.GetDB(c), userID, &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AuditionHandler) GetAudition(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	audition, err := h.auditionService.GetAudition(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, audition)
}

func (h *AuditionHandler) UpdateAudition(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAuditionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	audition, err := h.auditionService.UpdateAudition(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, audition)
}

// UpdateStatus godoc
// @Summary Change the status of an audition
// @Tags auditions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Audition ID"
// @Param request body dto.UpdateAuditionStatusRequest true "New status"
// @Success 200 {object} models.Audition
// @Router /auditions/{id}/status [patch]
func (h *AuditionHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAuditionStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	audition, err := h.auditionService.UpdateStatus(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, audition)
}

func (h *AuditionHandler) DeleteAudition(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.auditionService.DeleteAudition(c.Request.Context(), h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Calendar godoc
// @Summary Audition and callback events in a date range
// @Tags auditions
// @Produce json
// @Security BearerAuth
// @Param from query string false "RFC3339 or YYYY-MM-DD, defaults to the first day of this month"
// @Param to query string false "RFC3339 or YYYY-MM-DD, defaults to the end of this month"
// @Success 200 {array} dto.CalendarEvent
// @Router /auditions/calendar [get]
func (h *AuditionHandler) Calendar(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	from, to, err := ParseQueryDateRange(c, "from", "to")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	entries, err := h.auditionService.Calendar(h.GetDB(c), userID, from, to)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
