package handlers

import (
	"net/http"

	"auditionhub_backend/internal/services"
	"auditionhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ActorHandler struct {
	*BaseHandler
	actorService services.ActorService
}

func NewActorHandler(base *BaseHandler, actorService services.ActorService) *ActorHandler {
	return &ActorHandler{
		BaseHandler:  base,
		actorService: actorService,
	}
}

func (h *ActorHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	actors := rg.Group("/actors")
	actors.Use(authMW)
	{
		actors.GET("", h.ListActors)
		actors.POST("", h.CreateActor)
		actors.GET("/:id", h.GetActor)
		actors.PUT("/:id", h.UpdateActor)
		actors.DELETE("/:id", h.DeleteActor)
	}
}

// CreateActor godoc
// @Summary Add a child-actor profile
// @Description FREE plans hold at most one active actor.
// @Tags actors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateActorRequest true "Actor"
// @Success 201 {object} models.Actor
// @Failure 403 {object} apperrors.ErrorResponse "PLAN_LIMIT_EXCEEDED"
// @Router /actors [post]
func (h *ActorHandler) CreateActor(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateActorRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	actor, err := h.actorService.CreateActor(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, actor)
}

func (h *ActorHandler) ListActors(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	active, err := ParseQueryBool(c, "active")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	actors, err := h.actorService.ListActors(h.GetDB(c), userID, active)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, actors)
}

func (h *ActorHandler) GetActor(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	actor, err := h.actorService.GetActor(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, actor)
}

func (h *ActorHandler) UpdateActor(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateActorRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	actor, err := h.actorService.UpdateActor(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, actor)
}

func (h *ActorHandler) DeleteActor(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.actorService.DeleteActor(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
