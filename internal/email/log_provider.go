package email

import (
	"context"
	"strings"

	"auditionhub_backend/internal/logger"
)

// LogProvider writes outgoing mail to the log. Used when no SMTP host is configured.
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Send(ctx context.Context, msg *Message) error {
	logger.CtxInfo(ctx, "Email not sent (no SMTP configured)",
		"to", strings.Join(msg.To, ","),
		"subject", msg.Subject,
	)
	return nil
}

func (p *LogProvider) Validate() error { return nil }

func (p *LogProvider) Close() error { return nil }
