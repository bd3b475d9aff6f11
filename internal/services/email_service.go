package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"auditionhub_backend/internal/algorithms"
	"auditionhub_backend/internal/cache"
	"auditionhub_backend/internal/logger"
	"auditionhub_backend/internal/metrics"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EmailService interface {
	VerifySignature(body []byte, signature string) error
	IngestEmail(ctx context.Context, db *gorm.DB, req *dto.InboundEmailRequest) (*dto.InboundEmailResponse, error)
	GetSettings(db *gorm.DB, userID string) (*models.EmailSettings, error)
	UpdateSettings(db *gorm.DB, userID string, req *dto.UpdateEmailSettingsRequest) (*models.EmailSettings, error)
	ListLogs(db *gorm.DB, userID string, page, pageSize int) (*dto.PaginatedResponse, error)
}

type EmailServiceImpl struct {
	emailRepo     repositories.EmailRepository
	auditionRepo  repositories.AuditionRepository
	cache         cache.Cache
	inboundDomain string
	webhookSecret string
}

func NewEmailService(
	emailRepo repositories.EmailRepository,
	auditionRepo repositories.AuditionRepository,
	c cache.Cache,
	inboundDomain string,
	webhookSecret string,
) EmailService {
	return &EmailServiceImpl{
		emailRepo:     emailRepo,
		auditionRepo:  auditionRepo,
		cache:         c,
		inboundDomain: inboundDomain,
		webhookSecret: webhookSecret,
	}
}

// VerifySignature checks the hex HMAC-SHA256 of the raw body. Without a
// configured secret every request is accepted.
func (s *EmailServiceImpl) VerifySignature(body []byte, signature string) error {
	if s.webhookSecret == "" {
		return nil
	}
	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil || len(got) == 0 {
		return apperrors.ErrEmailSignature
	}
	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return apperrors.ErrEmailSignature
	}
	return nil
}

// IngestEmail turns a forwarded casting email into an audition. The email log
// is written before anything else so every delivery leaves a trace.
func (s *EmailServiceImpl) IngestEmail(ctx context.Context, db *gorm.DB, req *dto.InboundEmailRequest) (*dto.InboundEmailResponse, error) {
	recipient := bareAddress(req.To)
	entry := &models.EmailLog{
		Sender:     req.From,
		Recipient:  recipient,
		Subject:    req.Subject,
		ReceivedAt: time.Now().UTC(),
		Status:     models.EmailLogStatusPending,
	}
	if err := s.emailRepo.CreateLog(db, entry); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	settings, err := s.emailRepo.FindSettingsByAddress(db, recipient)
	if err != nil {
		if errors.Is(err, repositories.ErrEmailSettingsNotFound) {
			s.failLog(ctx, db, entry, "unknown forwarding address")
			return nil, apperrors.ErrUnknownForwardingAddress
		}
		return nil, apperrors.DatabaseError(err)
	}
	userID := settings.UserID
	entry.UserID = &userID

	if !settings.Enabled {
		s.failLog(ctx, db, entry, "email import is disabled")
		return &dto.InboundEmailResponse{Success: false, Skipped: true}, nil
	}
	if !algorithms.MatchFilterRules(settings.FilterRules, req.From, req.To, req.Subject) {
		s.failLog(ctx, db, entry, "no filter rule matched")
		return &dto.InboundEmailResponse{Success: false, Skipped: true}, nil
	}

	parsed := algorithms.ParseAuditionEmail(req.Text, req.HTML)
	if raw, err := json.Marshal(parsed); err == nil {
		entry.ParsedContent = string(raw)
	}
	if !parsed.Complete() {
		s.failLog(ctx, db, entry, "could not parse required audition details")
		return nil, apperrors.ErrAuditionParseFailed
	}

	audition := &models.Audition{
		UserID:          userID,
		ProjectTitle:    parsed.ProjectTitle,
		RoleName:        parsed.RoleName,
		Type:            parsed.Type,
		Status:          models.AuditionStatusPending,
		Source:          models.AuditionSourceEmail,
		AuditionDate:    parsed.AuditionDate,
		Location:        parsed.Location,
		CastingCompany:  parsed.CastingCompany,
		CastingDirector: parsed.CastingDirector,
		Notes:           emailNotes(req.Subject, req.From, parsed.RawDate, parsed.AuditionDate),
	}
	if err := s.auditionRepo.Create(db, audition); err != nil {
		s.failLog(ctx, db, entry, "failed to save audition")
		return nil, apperrors.DatabaseError(err)
	}

	auditionID := audition.ID
	entry.Status = models.EmailLogStatusProcessed
	entry.AuditionID = &auditionID
	if err := s.emailRepo.UpdateLog(db, entry); err != nil {
		logger.CtxWithError(ctx, "failed to update email log", err, "log_id", entry.ID)
	}

	metrics.EmailIngested(string(models.EmailLogStatusProcessed))
	metrics.AuditionCreated(string(models.AuditionSourceEmail))
	invalidateDashboard(ctx, s.cache, userID)
	logger.CtxInfo(ctx, "audition created from email", "user_id", userID, "audition_id", auditionID)

	return &dto.InboundEmailResponse{Success: true, Audition: audition}, nil
}

// GetSettings creates the defaults on first access.
func (s *EmailServiceImpl) GetSettings(db *gorm.DB, userID string) (*models.EmailSettings, error) {
	settings, err := s.emailRepo.FindSettingsByUserID(db, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repositories.ErrEmailSettingsNotFound) {
		return nil, apperrors.DatabaseError(err)
	}

	settings = defaultEmailSettings(userID, s.inboundDomain)
	if err := s.emailRepo.CreateSettings(db, settings); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return settings, nil
}

func (s *EmailServiceImpl) UpdateSettings(db *gorm.DB, userID string, req *dto.UpdateEmailSettingsRequest) (*models.EmailSettings, error) {
	settings, err := s.GetSettings(db, userID)
	if err != nil {
		return nil, err
	}

	setIf(&settings.Enabled, req.Enabled)
	if req.FilterRules != nil {
		rules := make([]models.FilterRule, 0, len(req.FilterRules))
		for _, r := range req.FilterRules {
			rules = append(rules, models.FilterRule{
				Field:    strings.ToLower(r.Field),
				Contains: strings.TrimSpace(r.Contains),
			})
		}
		settings.FilterRules = datatypes.NewJSONSlice(rules)
	}

	if err := s.emailRepo.UpdateSettings(db, settings); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return settings, nil
}

func (s *EmailServiceImpl) ListLogs(db *gorm.DB, userID string, page, pageSize int) (*dto.PaginatedResponse, error) {
	logs, total, err := s.emailRepo.ListLogs(db, userID, pageSize, dto.Offset(page, pageSize))
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewPaginatedResponse(logs, total, page, pageSize), nil
}

func (s *EmailServiceImpl) failLog(ctx context.Context, db *gorm.DB, entry *models.EmailLog, reason string) {
	entry.Status = models.EmailLogStatusFailed
	entry.ErrorMessage = reason
	if err := s.emailRepo.UpdateLog(db, entry); err != nil {
		logger.CtxWithError(ctx, "failed to update email log", err, "log_id", entry.ID)
	}
	metrics.EmailIngested(string(models.EmailLogStatusFailed))
	logger.CtxInfo(ctx, "inbound email not imported", "reason", reason, "recipient", entry.Recipient)
}

func defaultEmailSettings(userID, inboundDomain string) *models.EmailSettings {
	return &models.EmailSettings{
		UserID:            userID,
		Enabled:           true,
		ForwardingAddress: ForwardingAddress(userID, inboundDomain),
		FilterRules:       datatypes.NewJSONSlice(algorithms.DefaultFilterRules()),
	}
}

// ForwardingAddress is the per-user inbound address casting emails are forwarded to.
func ForwardingAddress(userID, inboundDomain string) string {
	return strings.ToLower(fmt.Sprintf("auditions-%s@%s", userID, inboundDomain))
}

// bareAddress strips a display name ("Jane <jane@x.com>") when present.
func bareAddress(raw string) string {
	raw = strings.TrimSpace(raw)
	if addr, err := mail.ParseAddress(raw); err == nil {
		return strings.ToLower(addr.Address)
	}
	return strings.ToLower(raw)
}

func emailNotes(subject, from, rawDate string, parsedDate *time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported from email %q from %s.", subject, from)
	if rawDate != "" && parsedDate == nil {
		fmt.Fprintf(&b, " Date as written: %s.", rawDate)
	}
	return b.String()
}
