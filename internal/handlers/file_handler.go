package handlers

import (
	"bufio"
	"net/http"
	"path"
	"strings"

	"auditionhub_backend/internal/logger"
	"auditionhub_backend/internal/storage"
	"auditionhub_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// sniffLen is how much of a file mimetype needs to classify it.
const sniffLen = 3072

// FileHandler serves stored objects under /files. With object storage the
// upload URLs point at the bucket, so this only sees local files.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, store storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     store,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files/*path", h.ServeFile)
	rg.HEAD("/files/*path", h.ServeFile)
}

func (h *FileHandler) ServeFile(c *gin.Context) {
	ctx := c.Request.Context()

	key, err := storage.CleanKey(strings.TrimPrefix(c.Param("path"), "/"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid file path"))
		return
	}

	exists, err := h.storage.Exists(ctx, key)
	if err != nil {
		h.HandleServiceError(c, apperrors.ExternalServiceError(err, "storage", "Storage unavailable"))
		return
	}
	if !exists {
		apperrors.HandleError(c, apperrors.NewNotFoundError("file", "File not found"))
		return
	}

	reader, err := h.storage.Open(ctx, key)
	if err != nil {
		h.HandleServiceError(c, apperrors.ExternalServiceError(err, "storage", "Storage unavailable"))
		return
	}
	defer reader.Close()

	buffered := bufio.NewReaderSize(reader, sniffLen)
	head, _ := buffered.Peek(sniffLen)
	contentType := mimetype.Detect(head).String()

	c.Header("Cache-Control", "private, max-age=86400")
	c.Header("Content-Disposition", `inline; filename="`+path.Base(key)+`"`)
	c.Header("X-Content-Type-Options", "nosniff")
	if c.Request.Method == http.MethodHead {
		c.Header("Content-Type", contentType)
		c.Status(http.StatusOK)
		return
	}

	c.DataFromReader(http.StatusOK, -1, contentType, buffered, nil)
	if len(c.Errors) > 0 {
		logger.CtxWarn(ctx, "file stream interrupted", "key", key, "error", c.Errors.Last().Error())
	}
}
