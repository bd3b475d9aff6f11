package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"auditionhub_backend/internal/auth"
	"auditionhub_backend/internal/cache"
	"auditionhub_backend/internal/email"
	"auditionhub_backend/internal/events"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/subscription"

	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu        sync.Mutex
	checkouts []subscription.CheckoutRequest
	canceled  []string
	event     *subscription.WebhookEvent
	nextID    int
}

func (p *fakeProvider) CreateCheckout(ctx context.Context, req subscription.CheckoutRequest) (*subscription.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	p.checkouts = append(p.checkouts, req)
	id := "cs_test_" + strings.Repeat("x", p.nextID)
	return &subscription.CheckoutSession{ID: id, URL: "https://checkout.test/" + id}, nil
}

func (p *fakeProvider) CancelAtPeriodEnd(ctx context.Context, subscriptionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.canceled = append(p.canceled, subscriptionID)
	return nil
}

func (p *fakeProvider) ParseWebhook(payload []byte, signature string) (*subscription.WebhookEvent, error) {
	if signature != "valid" {
		return nil, subscription.ErrInvalidSignature
	}
	if p.event == nil {
		return nil, errors.New("no event")
	}
	return p.event, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type recordingMailer struct {
	mu   sync.Mutex
	sent []*email.Message
}

func (m *recordingMailer) Send(ctx context.Context, msg *email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) Validate() error { return nil }
func (m *recordingMailer) Close() error    { return nil }

// memStorage keeps uploaded files in a map.
type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (s *memStorage) Save(ctx context.Context, key string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = data
	return nil
}

func (s *memStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, key)
	return nil
}

func (s *memStorage) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[key]
	return ok, nil
}

func (s *memStorage) URL(key string) string { return "/files/" + key }

func (s *memStorage) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return s.URL(key), nil
}

func (s *memStorage) has(key string) bool {
	ok, _ := s.Exists(context.Background(), key)
	return ok
}

type fakeSheets struct {
	rows [][]string
	err  error
}

func (f *fakeSheets) ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	return f.rows, f.err
}

type fakeAirtable struct {
	records []map[string]string
}

func (f *fakeAirtable) ReadRecords(ctx context.Context, apiKey, baseID, table string) ([]map[string]string, error) {
	return f.records, nil
}

const testInboundDomain = "inbound.test"

func newTestAuthService(t *testing.T, mailer email.Provider) AuthService {
	t.Helper()
	tm, err := email.NewTemplateManager("")
	require.NoError(t, err)

	return NewAuthService(
		repositories.NewUserRepository(),
		repositories.NewRefreshTokenRepository(),
		repositories.NewSubscriptionRepository(),
		repositories.NewEmailRepository(),
		auth.NewTokenManager("test-secret", time.Hour, "auditionhub"),
		email.NewNotifier(mailer, tm, "http://app.test"),
		24*time.Hour,
		"auditionhub",
		testInboundDomain,
	)
}

func newTestAuditionService(publisher events.Publisher) *AuditionServiceImpl {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return NewAuditionService(
		repositories.NewAuditionRepository(),
		repositories.NewActorRepository(),
		repositories.NewSubscriptionRepository(),
		publisher,
		cache.NoopCache{},
	).(*AuditionServiceImpl)
}

func ptr[T any](v T) *T { return &v }
