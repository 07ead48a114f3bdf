package models

// TimeFormat is the layout used for LastChecked and Change timestamps.
const TimeFormat = "2006-01-02 15:04:05"

// Item is a tracked product. CurrentPrice and PreviousPrice are nil until a
// price has been observed.
type Item struct {
	ID            string   `json:"id" dynamodbav:"id"`
	Name          string   `json:"name" dynamodbav:"name"`
	URL           string   `json:"url" dynamodbav:"url"`
	PreviousURL   string   `json:"previous_url,omitempty" dynamodbav:"previousUrl,omitempty"`
	CurrentPrice  *float64 `json:"current_price" dynamodbav:"currentPrice"`
	PreviousPrice *float64 `json:"previous_price" dynamodbav:"previousPrice"`
	LastChecked   string   `json:"last_checked,omitempty" dynamodbav:"lastChecked,omitempty"`
	// Email optionally overrides the global alert recipient for this item.
	Email string `json:"email,omitempty" dynamodbav:"email,omitempty"`
}
