package email

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TemplateManager implements TemplateRenderer over html/template.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	// Built-in templates so the service works without a templates dir.
	for name, body := range builtinTemplates {
		_ = tm.AddTemplate(name, body)
	}

	return tm
}

// Render renders a template with data.
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate parses and registers a template.
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

// LoadTemplates loads every *.html file from the directory, overriding the
// built-in templates with the same name.
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		templateName := strings.TrimSuffix(filepath.Base(path), ".html")
		if err := tm.AddTemplate(templateName, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", templateName, err)
		}

		return nil
	})
}

// TemplateNames lists the registered template names.
func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}

	return names
}

const (
	TemplateEmailVerification    = "email_verification"
	TemplatePasswordReset        = "password_reset"
	TemplateVerificationApproved = "verification_approved"
	TemplateVerificationRejected = "verification_rejected"
)

var builtinTemplates = map[string]string{
	TemplateEmailVerification: `<html><body>
<h2>Welcome to MedCase</h2>
<p>Hello {{.Name}},</p>
<p>Confirm your email address by entering the code below:</p>
<p><b>{{.Token}}</b></p>
</body></html>`,

	TemplatePasswordReset: `<html><body>
<h2>Password reset</h2>
<p>Hello {{.Name}},</p>
<p>Use the code below to reset your password. It expires in one hour.</p>
<p><b>{{.Token}}</b></p>
<p>If you did not request a reset, ignore this email.</p>
</body></html>`,

	TemplateVerificationApproved: `<html><body>
<h2>Your doctor account is verified</h2>
<p>Hello {{.Name}},</p>
<p>Your credential documents were reviewed and approved. You can now publish
teaching cases.</p>
</body></html>`,

	TemplateVerificationRejected: `<html><body>
<h2>Verification request rejected</h2>
<p>Hello {{.Name}},</p>
<p>Your credential documents were reviewed and rejected.</p>
<p>Reason: {{.Reason}}</p>
<p>You may submit a new request with updated documents.</p>
</body></html>`,
}
