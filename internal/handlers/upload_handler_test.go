package handlers_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/internal/testutil/apitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, fields map[string]string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func headshotPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for x := 0; x < 400; x++ {
		for y := 0; y < 300; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadAPI_HeadshotIsAttachedAndServed(t *testing.T) {
	// 1. Arrange
	ts := apitest.NewTestServer(t)
	user := ts.Register(t, "")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/actors", user.AccessToken, dto.CreateActorRequest{Name: "Ava"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var actor models.Actor
	apitest.Decode(t, body, &actor)

	form, contentType := multipartBody(t, map[string]string{
		"bucket":      dto.BucketHeadshots,
		"entity_type": dto.EntityActor,
		"entity_id":   actor.ID,
	}, "ava.png", headshotPNG(t))

	// 2. Act
	res, body = ts.SendRaw(t, http.MethodPost, "/api/v1/uploads", user.AccessToken, form, map[string]string{
		"Content-Type": contentType,
	})

	// 3. Assert
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var upload models.Upload
	apitest.Decode(t, body, &upload)
	assert.Equal(t, "image/png", upload.MimeType)
	require.True(t, strings.HasPrefix(upload.URL, "/api/v1/files/"), upload.URL)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/actors/"+actor.ID, user.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	apitest.Decode(t, body, &actor)
	assert.Equal(t, upload.URL, actor.HeadshotURL)

	res, body = ts.SendRaw(t, http.MethodGet, upload.URL, "", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "image/png", res.Header.Get("Content-Type"))
	assert.NotEmpty(t, body)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/uploads/"+upload.ID, user.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res, _ = ts.SendRaw(t, http.MethodGet, upload.URL, "", nil, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestUploadAPI_RejectsUnsupportedContent(t *testing.T) {
	ts := apitest.NewTestServer(t)
	user := ts.Register(t, "")

	form, contentType := multipartBody(t, map[string]string{"bucket": dto.BucketHeadshots},
		"notes.png", []byte("just some text pretending to be an image"))

	res, body := ts.SendRaw(t, http.MethodPost, "/api/v1/uploads", user.AccessToken, form, map[string]string{
		"Content-Type": contentType,
	})

	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode, body)
}

func TestUploadAPI_UnknownBucket(t *testing.T) {
	ts := apitest.NewTestServer(t)
	user := ts.Register(t, "")

	form, contentType := multipartBody(t, map[string]string{"bucket": "memes"}, "a.png", headshotPNG(t))

	res, _ := ts.SendRaw(t, http.MethodPost, "/api/v1/uploads", user.AccessToken, form, map[string]string{
		"Content-Type": contentType,
	})

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestFileAPI_RejectsTraversal(t *testing.T) {
	ts := apitest.NewTestServer(t)

	res, _ := ts.SendRaw(t, http.MethodGet, "/api/v1/files/headshots/..%2F..%2Fetc%2Fpasswd", "", nil, nil)
	assert.Contains(t, []int{http.StatusBadRequest, http.StatusNotFound}, res.StatusCode)

	res, _ = ts.SendRaw(t, http.MethodGet, "/api/v1/files/headshots/missing.png", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestAdminAPI_RequiresAdminRole(t *testing.T) {
	ts := apitest.NewTestServer(t)
	parent := ts.Register(t, "")
	ts.Register(t, "boss@example.com")

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/users", parent.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	require.NoError(t, ts.DB.Model(&models.User{}).
		Where("email = ?", "boss@example.com").
		Update("role", models.UserRoleAdmin).Error)

	// The role travels in the access token, so sign in again.
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{
		Email:    "boss@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var admin dto.AuthResponse
	apitest.Decode(t, body, &admin)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/admin/users", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var page struct {
		Total int64 `json:"total"`
	}
	apitest.Decode(t, body, &page)
	assert.Equal(t, int64(2), page.Total)
}

func TestHealthAndSwagger(t *testing.T) {
	ts := apitest.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Audition Hub API")

	res, body = ts.SendRequest(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "auditionhub_http_requests_total")
}
