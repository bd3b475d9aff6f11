package handlers

import (
	"net/http"

	"auditionhub_backend/internal/services"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ============================================
// UPLOAD HANDLER
// ============================================

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

// ============================================
// ROUTES
// ============================================

func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	uploads := rg.Group("/uploads")
	uploads.Use(authMW)
	{
		uploads.POST("", h.UploadFile)
		uploads.GET("/:id", h.GetUpload)
		uploads.DELETE("/:id", h.DeleteUpload)
	}
}

// ============================================
// HANDLERS
// ============================================

// UploadFile godoc
// @Summary Upload a headshot, resume, sides, receipt or self-tape
// @Description With entity_type and entity_id the file URL is written to that record.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File"
// @Param bucket formData string true "headshots, resumes, sides, receipts or selftapes"
// @Param entity_type formData string false "actor, audition or expense"
// @Param entity_id formData string false "Entity ID"
// @Success 201 {object} models.Upload
// @Failure 413 {object} apperrors.ErrorResponse
// @Failure 415 {object} apperrors.ErrorResponse
// @Router /uploads [post]
func (h *UploadHandler) UploadFile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UploadRequest
	if !h.BindAndValidate_Form(c, &req) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	upload, err := h.uploadService.Upload(c.Request.Context(), h.GetDB(c), userID, &req, services.FileInput{
		Name:    fileHeader.Filename,
		Size:    fileHeader.Size,
		Content: file,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, upload)
}

func (h *UploadHandler) GetUpload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	upload, err := h.uploadService.GetUpload(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, upload)
}

// DeleteUpload removes the stored file and its thumbnail.
func (h *UploadHandler) DeleteUpload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.uploadService.DeleteUpload(c.Request.Context(), h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
