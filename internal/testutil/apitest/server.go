// Package apitest runs the full HTTP stack against sqlite and in-memory fakes.
package apitest

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"auditionhub_backend/internal/app"
	"auditionhub_backend/internal/config"
	"auditionhub_backend/internal/email"
	"auditionhub_backend/internal/events"
	"auditionhub_backend/internal/logger"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/internal/services/subscription"
	"auditionhub_backend/internal/storage"
	"auditionhub_backend/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	// EmailWebhookSecret signs inbound email payloads in tests.
	EmailWebhookSecret = "email-webhook-secret"
	// ValidStripeSignature is the only Stripe-Signature FakePayments accepts.
	ValidStripeSignature = "valid"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.InitWithWriter("test", io.Discard)
}

type TestServer struct {
	Server    *httptest.Server
	DB        *gorm.DB
	Config    *config.Config
	Redis     *miniredis.Miniredis
	Mailer    *RecordingMailer
	Payments  *FakePayments
	Publisher *RecordingPublisher
	Sheets    *FakeSheets
	Storage   storage.Storage
}

// NewTestServer builds the router with test config; opts may tweak the config
// before anything is wired.
func NewTestServer(t *testing.T, opts ...func(*config.Config)) *TestServer {
	t.Helper()

	cfg := config.Default()
	cfg.RateLimit.Requests = 1000
	cfg.Email.WebhookSecret = EmailWebhookSecret
	cfg.Storage.BasePath = t.TempDir()
	for _, opt := range opts {
		opt(cfg)
	}

	db := testutil.NewTestDB(t)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	store, err := storage.NewStorage(storage.Config{
		Type:     "local",
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	require.NoError(t, err)

	ts := &TestServer{
		DB:        db,
		Config:    cfg,
		Redis:     mr,
		Mailer:    &RecordingMailer{},
		Payments:  &FakePayments{},
		Publisher: &RecordingPublisher{},
		Sheets:    &FakeSheets{},
		Storage:   store,
	}

	router := app.SetupRouter(cfg, db, &app.Deps{
		Mailer:    ts.Mailer,
		Payments:  ts.Payments,
		Publisher: ts.Publisher,
		Redis:     redisClient,
		Storage:   store,
		Sheets:    ts.Sheets,
	})

	ts.Server = httptest.NewServer(router)
	t.Cleanup(ts.Server.Close)
	return ts
}

// SendRequest sends body as JSON and returns the response with its body read.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	headers := map[string]string{}
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(jsonBody)
		headers["Content-Type"] = "application/json"
	}
	return ts.SendRaw(t, method, path, token, reqBody, headers)
}

func (ts *TestServer) SendRaw(t *testing.T, method, path, token string, body io.Reader, headers map[string]string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, ts.Server.URL+path, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(resBody)
}

// Register signs up a parent through the API.
func (ts *TestServer) Register(t *testing.T, emailAddr string) *dto.AuthResponse {
	t.Helper()

	if emailAddr == "" {
		emailAddr = testutil.UniqueEmail("parent")
	}
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Email:    emailAddr,
		Password: "password123",
		Name:     "Test Parent",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var auth dto.AuthResponse
	Decode(t, body, &auth)
	return &auth
}

// SignEmail returns the X-Email-Signature value for payload.
func SignEmail(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(EmailWebhookSecret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func Decode(t *testing.T, body string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), v), body)
}

type RecordingMailer struct {
	mu   sync.Mutex
	sent []*email.Message
}

func (m *RecordingMailer) Send(ctx context.Context, msg *email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *RecordingMailer) Validate() error { return nil }
func (m *RecordingMailer) Close() error    { return nil }

func (m *RecordingMailer) Sent() []*email.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*email.Message(nil), m.sent...)
}

// FakePayments hands out deterministic checkout sessions and replays Event on webhooks.
type FakePayments struct {
	mu        sync.Mutex
	Checkouts []subscription.CheckoutRequest
	Canceled  []string
	Event     *subscription.WebhookEvent
}

func (p *FakePayments) CreateCheckout(ctx context.Context, req subscription.CheckoutRequest) (*subscription.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Checkouts = append(p.Checkouts, req)
	id := "cs_test_" + string(rune('a'+len(p.Checkouts)-1))
	return &subscription.CheckoutSession{ID: id, URL: "https://checkout.test/" + id}, nil
}

func (p *FakePayments) CancelAtPeriodEnd(ctx context.Context, subscriptionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Canceled = append(p.Canceled, subscriptionID)
	return nil
}

func (p *FakePayments) ParseWebhook(payload []byte, signature string) (*subscription.WebhookEvent, error) {
	if signature != ValidStripeSignature {
		return nil, subscription.ErrInvalidSignature
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Event == nil {
		return nil, errors.New("no event queued")
	}
	return p.Event, nil
}

type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *RecordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *RecordingPublisher) Close() error { return nil }

func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

type FakeSheets struct {
	Rows [][]string
	Err  error
}

func (f *FakeSheets) ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	return f.Rows, f.Err
}
