package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"auditionhub_backend/internal/imageprocessor"
	"auditionhub_backend/internal/logger"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/internal/storage"
	"auditionhub_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sniffLen matches the read limit mimetype uses by default.
const sniffLen = 3072

// FileInput is an uploaded file as handed over by the HTTP layer.
type FileInput struct {
	Name    string
	Size    int64
	Content io.Reader
}

type UploadService interface {
	Upload(ctx context.Context, db *gorm.DB, userID string, req *dto.UploadRequest, file FileInput) (*models.Upload, error)
	GetUpload(db *gorm.DB, userID, id string) (*models.Upload, error)
	DeleteUpload(ctx context.Context, db *gorm.DB, userID, id string) error
}

// UploadLimits are the per-kind size caps in bytes.
type UploadLimits struct {
	MaxImageSize int64
	MaxPDFSize   int64
	MaxVideoSize int64
}

type UploadServiceImpl struct {
	uploadRepo   repositories.UploadRepository
	actorRepo    repositories.ActorRepository
	auditionRepo repositories.AuditionRepository
	expenseRepo  repositories.ExpenseRepository
	storage      storage.Storage
	processor    *imageprocessor.Processor
	buckets      map[string]map[string]int64 // bucket -> mime -> limit
}

func NewUploadService(
	uploadRepo repositories.UploadRepository,
	actorRepo repositories.ActorRepository,
	auditionRepo repositories.AuditionRepository,
	expenseRepo repositories.ExpenseRepository,
	store storage.Storage,
	processor *imageprocessor.Processor,
	limits UploadLimits,
) UploadService {
	return &UploadServiceImpl{
		uploadRepo:   uploadRepo,
		actorRepo:    actorRepo,
		auditionRepo: auditionRepo,
		expenseRepo:  expenseRepo,
		storage:      store,
		processor:    processor,
		buckets:      bucketRules(limits),
	}
}

func bucketRules(l UploadLimits) map[string]map[string]int64 {
	images := map[string]int64{
		"image/jpeg": l.MaxImageSize,
		"image/png":  l.MaxImageSize,
		"image/webp": l.MaxImageSize,
	}
	withPDF := func(m map[string]int64) map[string]int64 {
		out := map[string]int64{"application/pdf": l.MaxPDFSize}
		for k, v := range m {
			out[k] = v
		}
		return out
	}

	return map[string]map[string]int64{
		dto.BucketHeadshots: images,
		dto.BucketResumes:   {"application/pdf": l.MaxPDFSize},
		dto.BucketSides:     withPDF(images),
		dto.BucketReceipts:  withPDF(images),
		dto.BucketSelftapes: {
			"video/mp4":       l.MaxVideoSize,
			"video/quicktime": l.MaxVideoSize,
		},
	}
}

// entityBuckets lists which buckets may be attached to each entity.
var entityBuckets = map[string][]string{
	dto.EntityActor:    {dto.BucketHeadshots, dto.BucketResumes},
	dto.EntityAudition: {dto.BucketSides, dto.BucketSelftapes},
	dto.EntityExpense:  {dto.BucketReceipts},
}

func (s *UploadServiceImpl) Upload(ctx context.Context, db *gorm.DB, userID string, req *dto.UploadRequest, file FileInput) (*models.Upload, error) {
	allowed, ok := s.buckets[req.Bucket]
	if !ok {
		return nil, apperrors.ErrInvalidBucket
	}
	if req.EntityType != "" {
		if !canAttach(req.EntityType, req.Bucket) {
			return nil, apperrors.ErrInvalidUploadTarget
		}
		if err := s.checkEntity(db, userID, req.EntityType, req.EntityID); err != nil {
			return nil, err
		}
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, apperrors.InternalError(fmt.Errorf("read upload: %w", err))
	}
	head = head[:n]

	mime := mimetype.Detect(head)
	contentType := mime.String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	limit, ok := allowed[contentType]
	if !ok {
		return nil, apperrors.ErrInvalidFileType
	}
	if file.Size > limit {
		return nil, apperrors.ErrFileTooLarge
	}

	upload := &models.Upload{
		UserID:       userID,
		Bucket:       req.Bucket,
		EntityType:   req.EntityType,
		EntityID:     req.EntityID,
		Path:         fmt.Sprintf("%s/%s/%s%s", req.Bucket, userID, uuid.NewString(), mime.Extension()),
		MimeType:     contentType,
		OriginalName: file.Name,
	}

	// Stream at most limit+1 bytes so a lying Content-Length is still caught.
	counter := &countingReader{r: io.LimitReader(io.MultiReader(bytes.NewReader(head), file.Content), limit+1)}
	var body io.Reader = counter
	var buffered []byte
	if req.Bucket == dto.BucketHeadshots {
		buffered, err = io.ReadAll(counter)
		if err != nil {
			return nil, apperrors.InternalError(fmt.Errorf("read upload: %w", err))
		}
		body = bytes.NewReader(buffered)
	}

	if err := s.storage.Save(ctx, upload.Path, body, contentType); err != nil {
		return nil, apperrors.ExternalServiceError(err, "upload", "Failed to store file")
	}
	if counter.n > limit {
		s.removeFiles(ctx, upload.Path)
		return nil, apperrors.ErrFileTooLarge
	}
	upload.Size = counter.n
	upload.URL = s.storage.URL(upload.Path)

	if buffered != nil {
		s.attachThumbnail(ctx, upload, buffered)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.uploadRepo.Create(tx, upload); err != nil {
			return apperrors.DatabaseError(err)
		}
		if upload.EntityType == "" {
			return nil
		}
		return s.linkEntity(tx, userID, upload, upload.URL)
	})
	if err != nil {
		s.removeFiles(ctx, upload.Path, upload.ThumbnailPath)
		return nil, err
	}

	logger.CtxInfo(ctx, "file uploaded",
		"upload_id", upload.ID,
		"bucket", upload.Bucket,
		"mime_type", upload.MimeType,
		"size", upload.Size,
	)
	return upload, nil
}

func (s *UploadServiceImpl) GetUpload(db *gorm.DB, userID, id string) (*models.Upload, error) {
	upload, err := s.uploadRepo.FindByID(db, userID, id)
	if err != nil {
		return nil, repoErr(err)
	}
	return upload, nil
}

// DeleteUpload removes the record, clears the entity link if it still points
// at this file, then drops the file and its thumbnail from storage.
func (s *UploadServiceImpl) DeleteUpload(ctx context.Context, db *gorm.DB, userID, id string) error {
	var upload *models.Upload
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		upload, err = s.uploadRepo.FindByID(tx, userID, id)
		if err != nil {
			return repoErr(err)
		}
		if upload.EntityType != "" {
			if err := s.unlinkEntity(tx, userID, upload); err != nil {
				return err
			}
		}
		return repoErr(s.uploadRepo.Delete(tx, userID, id))
	})
	if err != nil {
		return err
	}

	s.removeFiles(ctx, upload.Path, upload.ThumbnailPath)
	return nil
}

func (s *UploadServiceImpl) attachThumbnail(ctx context.Context, upload *models.Upload, data []byte) {
	if s.processor == nil {
		return
	}
	thumb, err := s.processor.Thumbnail(bytes.NewReader(data), imageprocessor.HeadshotThumbnailSize)
	if err != nil {
		logger.CtxWarn(ctx, "failed to build headshot thumbnail", "path", upload.Path, "error", err)
		return
	}

	base := strings.TrimSuffix(upload.Path, extOf(upload.Path))
	key := base + "_thumb" + thumb.Ext
	if err := s.storage.Save(ctx, key, bytes.NewReader(thumb.Data), thumb.ContentType); err != nil {
		logger.CtxWarn(ctx, "failed to store headshot thumbnail", "path", key, "error", err)
		return
	}
	upload.ThumbnailPath = key
	upload.ThumbnailURL = s.storage.URL(key)
}

func (s *UploadServiceImpl) checkEntity(db *gorm.DB, userID, entityType, entityID string) error {
	var err error
	switch entityType {
	case dto.EntityActor:
		_, err = s.actorRepo.FindByID(db, userID, entityID)
	case dto.EntityAudition:
		_, err = s.auditionRepo.FindByID(db, userID, entityID)
	case dto.EntityExpense:
		_, err = s.expenseRepo.FindByID(db, userID, entityID)
	default:
		return apperrors.ErrInvalidUploadTarget
	}
	return repoErr(err)
}

// linkEntity writes url into the field that matches the upload's bucket.
func (s *UploadServiceImpl) linkEntity(db *gorm.DB, userID string, upload *models.Upload, url string) error {
	switch upload.EntityType {
	case dto.EntityActor:
		actor, err := s.actorRepo.FindByID(db, userID, upload.EntityID)
		if err != nil {
			return repoErr(err)
		}
		if upload.Bucket == dto.BucketHeadshots {
			actor.HeadshotURL = url
		} else {
			actor.ResumeURL = url
		}
		return repoErr(s.actorRepo.Update(db, actor))

	case dto.EntityAudition:
		audition, err := s.auditionRepo.FindByID(db, userID, upload.EntityID)
		if err != nil {
			return repoErr(err)
		}
		if upload.Bucket == dto.BucketSides {
			audition.SidesURL = url
		} else {
			audition.SelftapeURL = url
		}
		return repoErr(s.auditionRepo.Update(db, audition))

	case dto.EntityExpense:
		expense, err := s.expenseRepo.FindByID(db, userID, upload.EntityID)
		if err != nil {
			return repoErr(err)
		}
		expense.ReceiptURL = url
		return repoErr(s.expenseRepo.Update(db, expense))
	}
	return apperrors.ErrInvalidUploadTarget
}

func (s *UploadServiceImpl) unlinkEntity(db *gorm.DB, userID string, upload *models.Upload) error {
	current, err := s.linkedURL(db, userID, upload)
	if err != nil {
		// entity already gone
		if apperrors.Is(err, apperrors.ErrActorNotFound) ||
			apperrors.Is(err, apperrors.ErrAuditionNotFound) ||
			apperrors.Is(err, apperrors.ErrExpenseNotFound) {
			return nil
		}
		return err
	}
	if current != upload.URL {
		return nil
	}
	return s.linkEntity(db, userID, upload, "")
}

func (s *UploadServiceImpl) linkedURL(db *gorm.DB, userID string, upload *models.Upload) (string, error) {
	switch upload.EntityType {
	case dto.EntityActor:
		actor, err := s.actorRepo.FindByID(db, userID, upload.EntityID)
		if err != nil {
			return "", repoErr(err)
		}
		if upload.Bucket == dto.BucketHeadshots {
			return actor.HeadshotURL, nil
		}
		return actor.ResumeURL, nil
	case dto.EntityAudition:
		audition, err := s.auditionRepo.FindByID(db, userID, upload.EntityID)
		if err != nil {
			return "", repoErr(err)
		}
		if upload.Bucket == dto.BucketSides {
			return audition.SidesURL, nil
		}
		return audition.SelftapeURL, nil
	case dto.EntityExpense:
		expense, err := s.expenseRepo.FindByID(db, userID, upload.EntityID)
		if err != nil {
			return "", repoErr(err)
		}
		return expense.ReceiptURL, nil
	}
	return "", nil
}

func (s *UploadServiceImpl) removeFiles(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.CtxWarn(ctx, "failed to delete stored file", "path", key, "error", err)
		}
	}
}

func canAttach(entityType, bucket string) bool {
	for _, b := range entityBuckets[entityType] {
		if b == bucket {
			return true
		}
	}
	return false
}

func extOf(key string) string {
	if i := strings.LastIndexByte(key, '.'); i > strings.LastIndexByte(key, '/') {
		return key[i:]
	}
	return ""
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
