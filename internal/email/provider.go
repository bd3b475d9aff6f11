package email

import "context"

// Provider delivers a fully built message.
type Provider interface {
	Send(ctx context.Context, msg *Message) error
	Validate() error
	Close() error
}

type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
	LoadTemplates(dirPath string) error
}
