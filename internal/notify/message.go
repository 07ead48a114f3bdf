package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"text/template"

	"pricewatch/internal/models"
)

// AlertSubject is the subject line used for change notifications.
const AlertSubject = "Price Watcher Alert: Price Changes Detected"

var textTemplate = template.Must(template.New("alertText").Parse(
	`Price Watcher has detected the following changes:

{{range . -}}
{{.Name}}
{{if eq .Type "price" -}}
URL: {{.URL}}
Price changed: ${{.OldValue}} -> ${{.NewValue}}
{{else -}}
URL has changed:
Old: {{.OldValue}}
New: {{.NewValue}}
{{end -}}
Detected at: {{.Timestamp}}

{{end}}`))

var htmlTemplate = htmltemplate.Must(htmltemplate.New("alertHTML").Parse(
	`<html>
<body>
<h2>Price Watcher Alert</h2>
<p>The following changes have been detected:</p>
{{range .}}
<div style="margin-bottom: 20px; padding: 10px; border: 1px solid #ccc;">
<h3>{{.Name}}</h3>
{{if eq .Type "price"}}
<p><a href="{{.URL}}">View Product</a></p>
<p><strong>Price changed:</strong> ${{.OldValue}} &rarr; ${{.NewValue}}</p>
{{else}}
<p><strong>URL has changed:</strong></p>
<p>Old: <a href="{{.OldValue}}">{{.OldValue}}</a></p>
<p>New: <a href="{{.NewValue}}">{{.NewValue}}</a></p>
{{end}}
<p><em>Detected at: {{.Timestamp}}</em></p>
</div>
{{end}}
</body>
</html>
`))

// BuildNotification renders the plain-text and HTML alert bodies for the
// given changes.
func BuildNotification(recipient string, changes []models.Change) (models.Notification, error) {
	var text bytes.Buffer
	if err := textTemplate.Execute(&text, changes); err != nil {
		return models.Notification{}, fmt.Errorf("failed to render text body: %w", err)
	}

	var html bytes.Buffer
	if err := htmlTemplate.Execute(&html, changes); err != nil {
		return models.Notification{}, fmt.Errorf("failed to render html body: %w", err)
	}

	return models.Notification{
		Email:    recipient,
		Subject:  AlertSubject,
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}
