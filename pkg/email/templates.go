package email

import (
	"bytes"
	"html/template"
)

const statusUpdateTemplate = `
<html>
  <body>
    <h2>Order #{{.OrderID}} status update</h2>
    <p>The order is now <strong>{{.Status}}</strong>.</p>
  </body>
</html>`

// StatusUpdateData holds the dynamic data for the status-update template.
type StatusUpdateData struct {
	OrderID int
	Status  string
}

// TemplateManager holds the parsed notification templates.
type TemplateManager struct {
	statusUpdateTmpl *template.Template
}

// NewTemplateManager parses all notification templates at startup.
func NewTemplateManager() (*TemplateManager, error) {
	tmpl, err := template.New("statusUpdate").Parse(statusUpdateTemplate)
	if err != nil {
		return nil, err
	}
	return &TemplateManager{statusUpdateTmpl: tmpl}, nil
}

// GenerateStatusUpdateEmailHTML executes the status-update template.
func (tm *TemplateManager) GenerateStatusUpdateEmailHTML(data StatusUpdateData) (string, error) {
	var body bytes.Buffer
	if err := tm.statusUpdateTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
