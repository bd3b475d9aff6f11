package email

import (
	"context"
	"fmt"
	"time"
)

// Notifier renders the service's templates and hands the result to a Provider.
type Notifier struct {
	provider Provider
	renderer TemplateRenderer
	baseURL  string
}

func NewNotifier(provider Provider, renderer TemplateRenderer, baseURL string) *Notifier {
	return &Notifier{provider: provider, renderer: renderer, baseURL: baseURL}
}

func (n *Notifier) send(ctx context.Context, to, subject, templateName string, data TemplateData) error {
	body, err := n.renderer.Render(templateName, data)
	if err != nil {
		return err
	}
	return n.provider.Send(ctx, &Message{To: []string{to}, Subject: subject, HTMLBody: body})
}

func (n *Notifier) SendPasswordReset(ctx context.Context, to, name, token string, validFor time.Duration) error {
	return n.send(ctx, to, "Reset your Audition Hub password", TemplatePasswordReset, TemplateData{
		"Name":     displayName(name),
		"ResetURL": fmt.Sprintf("%s/reset-password?token=%s", n.baseURL, token),
		"ValidFor": validFor.String(),
	})
}

// AuditionInfo is the subset of an audition the templates print.
type AuditionInfo struct {
	ID              string
	ProjectTitle    string
	RoleName        string
	Status          string
	Date            *time.Time
	Location        string
	VirtualLink     string
	CastingDirector string
}

func (n *Notifier) SendAuditionReminder(ctx context.Context, to, name string, a AuditionInfo) error {
	when := ""
	if a.Date != nil {
		when = a.Date.Format("Mon, Jan 2 2006 at 3:04 PM MST")
	}
	return n.send(ctx, to, "Audition reminder: "+a.ProjectTitle, TemplateAuditionReminder, TemplateData{
		"Name":            displayName(name),
		"ProjectTitle":    a.ProjectTitle,
		"RoleName":        a.RoleName,
		"When":            when,
		"Location":        a.Location,
		"VirtualLink":     a.VirtualLink,
		"CastingDirector": a.CastingDirector,
		"AuditionURL":     n.auditionURL(a.ID),
	})
}

func (n *Notifier) SendAuditionStatus(ctx context.Context, to, name string, a AuditionInfo) error {
	subject := "Callback: " + a.ProjectTitle
	if a.Status == "BOOKED" {
		subject = "Booked: " + a.ProjectTitle
	}
	return n.send(ctx, to, subject, TemplateAuditionStatus, TemplateData{
		"Name":         displayName(name),
		"ProjectTitle": a.ProjectTitle,
		"RoleName":     a.RoleName,
		"Status":       a.Status,
		"AuditionURL":  n.auditionURL(a.ID),
	})
}

func (n *Notifier) auditionURL(id string) string {
	return fmt.Sprintf("%s/auditions/%s", n.baseURL, id)
}

func displayName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}
