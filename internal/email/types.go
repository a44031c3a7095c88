package email

// Email is an outgoing message.
type Email struct {
	From     string
	To       []string
	Cc       []string
	Bcc      []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData carries the values rendered into a template.
type TemplateData map[string]interface{}
