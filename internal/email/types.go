package email

type Attachment struct {
	Name        string
	Content     []byte
	ContentType string
}

type Message struct {
	To          []string
	Subject     string
	TextBody    string
	HTMLBody    string
	Attachments []Attachment
}

// TemplateData is passed to html templates as-is.
type TemplateData map[string]interface{}

// Template names shipped with the service.
const (
	TemplatePasswordReset    = "password_reset"
	TemplateAuditionReminder = "audition_reminder"
	TemplateAuditionStatus   = "audition_status"
)
