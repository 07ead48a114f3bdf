package models

type ChangeType string

const (
	ChangeTypePrice ChangeType = "price"
	ChangeTypeURL   ChangeType = "url"
)

// Change records a single detected difference for a tracked item.
type Change struct {
	Name      string     `json:"name"`
	URL       string     `json:"url"`
	Type      ChangeType `json:"change_type"`
	OldValue  string     `json:"old_value"`
	NewValue  string     `json:"new_value"`
	Timestamp string     `json:"timestamp"`
}

// Notification is the message passed to the mailer (directly or via the
// notify queue in the Lambda pipeline).
type Notification struct {
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	TextBody string `json:"text_body"`
	HTMLBody string `json:"html_body"`
}
