package email

import "medcase_backend/internal/logger"

// NoopProvider logs instead of sending. Used in tests and development
// environments without an SMTP server.
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(email *Email) error {
	logger.Debug("email suppressed", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *NoopProvider) SendWithTemplate(templateName string, data TemplateData, email *Email) error {
	logger.Debug("templated email suppressed", "template", templateName, "to", email.To)
	return nil
}

func (p *NoopProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	logger.Debug("templated email suppressed", "template", templateName, "to", to, "subject", subject)
	return nil
}

func (p *NoopProvider) Validate() error { return nil }

func (p *NoopProvider) Close() error { return nil }
