package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricewatch/internal/models"
)

func sampleChanges() []models.Change {
	return []models.Change{
		{
			Name:      "Widget",
			URL:       "https://example.com/p/1",
			Type:      models.ChangeTypePrice,
			OldValue:  "100",
			NewValue:  "80",
			Timestamp: "2026-08-29 10:30:00",
		},
		{
			Name:      "Gadget",
			URL:       "https://example.com/old",
			Type:      models.ChangeTypeURL,
			OldValue:  "https://example.com/old",
			NewValue:  "https://example.com/new",
			Timestamp: "2026-08-29 10:30:00",
		},
	}
}

func TestBuildNotification(t *testing.T) {
	n, err := BuildNotification("alerts@example.com", sampleChanges())
	require.NoError(t, err)

	assert.Equal(t, "alerts@example.com", n.Email)
	assert.Equal(t, AlertSubject, n.Subject)

	assert.Contains(t, n.TextBody, "Price Watcher has detected the following changes:")
	assert.Contains(t, n.TextBody, "Widget")
	assert.Contains(t, n.TextBody, "Price changed: $100 -> $80")
	assert.Contains(t, n.TextBody, "URL has changed:")
	assert.Contains(t, n.TextBody, "New: https://example.com/new")
	assert.Contains(t, n.TextBody, "Detected at: 2026-08-29 10:30:00")

	assert.Contains(t, n.HTMLBody, "<h2>Price Watcher Alert</h2>")
	assert.Contains(t, n.HTMLBody, "<h3>Widget</h3>")
	assert.Contains(t, n.HTMLBody, "$100 &rarr; $80")
	assert.Contains(t, n.HTMLBody, `<a href="https://example.com/new">`)
}

func TestBuildMessage(t *testing.T) {
	n, err := BuildNotification("alerts@example.com", sampleChanges())
	require.NoError(t, err)

	msg, err := buildMessage("watcher@example.com", n)
	require.NoError(t, err)

	raw := string(msg)
	assert.Contains(t, raw, "From: watcher@example.com\r\n")
	assert.Contains(t, raw, "To: alerts@example.com\r\n")
	assert.Contains(t, raw, "Subject: "+AlertSubject+"\r\n")
	assert.Contains(t, raw, "Content-Type: multipart/alternative; boundary=")
	assert.Contains(t, raw, "Content-Type: text/plain; charset=utf-8")
	assert.Contains(t, raw, "Content-Type: text/html; charset=utf-8")

	assert.Less(t,
		strings.Index(raw, "text/plain"),
		strings.Index(raw, "text/html"))
}
