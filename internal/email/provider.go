package email

// Provider sends outgoing email.
type Provider interface {
	// Send sends a plain email message.
	Send(email *Email) error

	// SendWithTemplate renders the template into the message body and sends.
	SendWithTemplate(templateName string, data TemplateData, email *Email) error

	// SendTemplate is the convenience form used by the services.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases the provider connection.
	Close() error
}

// TemplateRenderer renders named templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
	LoadTemplates(dirPath string) error
}
