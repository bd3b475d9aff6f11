package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"auditionhub_backend/internal/imageprocessor"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/internal/testutil"
	"auditionhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pdfBody = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

func testLimits() UploadLimits {
	return UploadLimits{MaxImageSize: 1 << 20, MaxPDFSize: 1 << 20, MaxVideoSize: 4 << 20}
}

func newTestUploadService(store *memStorage, limits UploadLimits) UploadService {
	return NewUploadService(
		repositories.NewUploadRepository(),
		repositories.NewActorRepository(),
		repositories.NewAuditionRepository(),
		repositories.NewExpenseRepository(),
		store,
		imageprocessor.NewProcessor(80),
		limits,
	)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadService_HeadshotLinksActorAndBuildsThumbnail(t *testing.T) {
	// 1. Arrange
	db := testutil.NewTestDB(t)
	store := newMemStorage()
	svc := newTestUploadService(store, testLimits())
	user := testutil.CreateUser(t, db, "")
	actor, err := NewActorService(repositories.NewActorRepository(), repositories.NewSubscriptionRepository()).
		CreateActor(db, user.ID, &dto.CreateActorRequest{Name: "Ava", Age: 7})
	require.NoError(t, err)
	data := pngBytes(t, 800, 600)

	// 2. Act
	upload, err := svc.Upload(context.Background(), db, user.ID,
		&dto.UploadRequest{Bucket: dto.BucketHeadshots, EntityType: dto.EntityActor, EntityID: actor.ID},
		FileInput{Name: "ava.png", Size: int64(len(data)), Content: bytes.NewReader(data)},
	)

	// 3. Assert
	require.NoError(t, err)
	assert.Equal(t, "image/png", upload.MimeType)
	assert.Equal(t, int64(len(data)), upload.Size)
	assert.True(t, strings.HasPrefix(upload.Path, "headshots/"+user.ID+"/"))
	assert.True(t, strings.HasSuffix(upload.Path, ".png"))
	assert.True(t, store.has(upload.Path))
	require.NotEmpty(t, upload.ThumbnailPath)
	assert.True(t, store.has(upload.ThumbnailPath))

	cfg, _, err := image.DecodeConfig(bytes.NewReader(store.files[upload.ThumbnailPath]))
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Width)

	reloaded, err := repositories.NewActorRepository().FindByID(db, user.ID, actor.ID)
	require.NoError(t, err)
	assert.Equal(t, upload.URL, reloaded.HeadshotURL)
}

func TestUploadService_DeleteUnlinksAndRemovesFiles(t *testing.T) {
	// 1. Arrange
	db := testutil.NewTestDB(t)
	store := newMemStorage()
	svc := newTestUploadService(store, testLimits())
	user := testutil.CreateUser(t, db, "")
	actor, err := NewActorService(repositories.NewActorRepository(), repositories.NewSubscriptionRepository()).
		CreateActor(db, user.ID, &dto.CreateActorRequest{Name: "Ben", Age: 9})
	require.NoError(t, err)
	data := pngBytes(t, 50, 50)
	upload, err := svc.Upload(context.Background(), db, user.ID,
		&dto.UploadRequest{Bucket: dto.BucketHeadshots, EntityType: dto.EntityActor, EntityID: actor.ID},
		FileInput{Name: "ben.png", Size: int64(len(data)), Content: bytes.NewReader(data)},
	)
	require.NoError(t, err)

	// 2. Act
	err = svc.DeleteUpload(context.Background(), db, user.ID, upload.ID)

	// 3. Assert
	require.NoError(t, err)
	assert.False(t, store.has(upload.Path))
	assert.False(t, store.has(upload.ThumbnailPath))
	reloaded, err := repositories.NewActorRepository().FindByID(db, user.ID, actor.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.HeadshotURL)

	_, err = svc.GetUpload(db, user.ID, upload.ID)
	assert.ErrorIs(t, err, apperrors.ErrUploadNotFound)
}

func TestUploadService_ReceiptPDFLinksExpense(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := newMemStorage()
	svc := newTestUploadService(store, testLimits())
	user := testutil.CreateUser(t, db, "")
	expense := &models.Expense{UserID: user.ID, Amount: 12, Category: models.ExpenseCategoryTravel}
	require.NoError(t, repositories.NewExpenseRepository().Create(db, expense))

	upload, err := svc.Upload(context.Background(), db, user.ID,
		&dto.UploadRequest{Bucket: dto.BucketReceipts, EntityType: dto.EntityExpense, EntityID: expense.ID},
		FileInput{Name: "receipt.pdf", Size: int64(len(pdfBody)), Content: strings.NewReader(pdfBody)},
	)

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", upload.MimeType)
	assert.Empty(t, upload.ThumbnailPath)
	reloaded, err := repositories.NewExpenseRepository().FindByID(db, user.ID, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, upload.URL, reloaded.ReceiptURL)
}

func TestUploadService_Rejections(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := newMemStorage()
	user := testutil.CreateUser(t, db, "")
	other := testutil.CreateUser(t, db, "")
	ctx := context.Background()
	svc := newTestUploadService(store, testLimits())

	pdf := func() FileInput {
		return FileInput{Name: "doc.pdf", Size: int64(len(pdfBody)), Content: strings.NewReader(pdfBody)}
	}

	_, err := svc.Upload(ctx, db, user.ID, &dto.UploadRequest{Bucket: "avatars"}, pdf())
	assert.ErrorIs(t, err, apperrors.ErrInvalidBucket)

	_, err = svc.Upload(ctx, db, user.ID, &dto.UploadRequest{Bucket: dto.BucketHeadshots}, pdf())
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType, "a pdf is not a headshot")

	_, err = svc.Upload(ctx, db, user.ID, &dto.UploadRequest{Bucket: dto.BucketSelftapes, EntityType: dto.EntityExpense, EntityID: "x"}, pdf())
	assert.ErrorIs(t, err, apperrors.ErrInvalidUploadTarget)

	actor, err := NewActorService(repositories.NewActorRepository(), repositories.NewSubscriptionRepository()).
		CreateActor(db, other.ID, &dto.CreateActorRequest{Name: "Not Yours", Age: 5})
	require.NoError(t, err)
	_, err = svc.Upload(ctx, db, user.ID, &dto.UploadRequest{Bucket: dto.BucketResumes, EntityType: dto.EntityActor, EntityID: actor.ID}, pdf())
	assert.ErrorIs(t, err, apperrors.ErrActorNotFound)

	assert.Empty(t, store.files)
}

func TestUploadService_SizeLimits(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := newMemStorage()
	user := testutil.CreateUser(t, db, "")
	ctx := context.Background()
	limits := testLimits()
	limits.MaxPDFSize = 64
	svc := newTestUploadService(store, limits)

	declared := FileInput{Name: "big.pdf", Size: 1000, Content: strings.NewReader(pdfBody)}
	_, err := svc.Upload(ctx, db, user.ID, &dto.UploadRequest{Bucket: dto.BucketResumes}, declared)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)

	body := pdfBody + strings.Repeat("%", 200)
	understated := FileInput{Name: "big.pdf", Size: 10, Content: strings.NewReader(body)}
	_, err = svc.Upload(ctx, db, user.ID, &dto.UploadRequest{Bucket: dto.BucketResumes}, understated)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
	assert.Empty(t, store.files, "oversized files are removed")
}
