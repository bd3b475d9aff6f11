package handlers

import (
	"net/http"

	"auditionhub_backend/internal/services"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const maxSpreadsheetSize = 10 << 20

type ImportHandler struct {
	*BaseHandler
	importService services.ImportService
}

func NewImportHandler(base *BaseHandler, importService services.ImportService) *ImportHandler {
	return &ImportHandler{
		BaseHandler:   base,
		importService: importService,
	}
}

func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	imports := rg.Group("/import")
	imports.Use(authMW)
	{
		imports.POST("/google-sheets", h.ImportGoogleSheets)
		imports.POST("/airtable", h.ImportAirtable)
		imports.POST("/spreadsheet", h.ImportSpreadsheet)
	}
}

// ImportGoogleSheets godoc
// @Summary Import auditions from a Google Sheet
// @Tags import
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GoogleSheetsImportRequest true "Sheet"
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} apperrors.ErrorResponse "No data found in spreadsheet"
// @Failure 502 {object} apperrors.ErrorResponse
// @Router /import/google-sheets [post]
func (h *ImportHandler) ImportGoogleSheets(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.GoogleSheetsImportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.importService.ImportGoogleSheets(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ImportHandler) ImportAirtable(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AirtableImportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.importService.ImportAirtable(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ImportSpreadsheet accepts a .csv or .xlsx file in the multipart field "file".
func (h *ImportHandler) ImportSpreadsheet(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing spreadsheet file"))
		return
	}
	if fileHeader.Size > maxSpreadsheetSize {
		h.HandleServiceError(c, apperrors.ErrFileTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	result, err := h.importService.ImportSpreadsheet(c.Request.Context(), h.GetDB(c), userID, fileHeader.Filename, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
