package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanKey(t *testing.T) {
	ok := map[string]string{
		"headshots/u1/a.jpg":  "headshots/u1/a.jpg",
		"sides//u1/./b.pdf":   "sides/u1/b.pdf",
		"receipts\\u1\\c.png": "receipts/u1/c.png",
	}
	for in, want := range ok {
		got, err := CleanKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, bad := range []string{"", "/etc/passwd", "../secret", "a/../../b", "."} {
		_, err := CleanKey(bad)
		assert.ErrorIs(t, err, ErrInvalidKey, bad)
	}
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "http://localhost:8080/files/"})
	require.NoError(t, err)

	key := "resumes/user-1/cv.pdf"
	require.NoError(t, s.Save(ctx, key, strings.NewReader("%PDF-1.4"), "application/pdf"))

	exists, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "%PDF-1.4", string(data))

	assert.Equal(t, "http://localhost:8080/files/resumes/user-1/cv.pdf", s.URL(key))
	signed, err := s.SignedURL(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, s.URL(key), signed)

	require.NoError(t, s.Delete(ctx, key))
	exists, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, key))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	err = s.Save(context.Background(), "../escape.txt", strings.NewReader("x"), "text/plain")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestNewStorage_Types(t *testing.T) {
	s, err := NewStorage(Config{Type: "local", BasePath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	_, err = NewStorage(Config{Type: "r2", Bucket: "b"})
	assert.Error(t, err)

	obj, err := NewStorage(Config{Type: "s3", Bucket: "media", Region: "eu-west-1", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	assert.Equal(t, "https://media.s3.eu-west-1.amazonaws.com/headshots/x.jpg", obj.URL("headshots/x.jpg"))

	_, err = NewStorage(Config{Type: "ftp"})
	assert.Error(t, err)
}
