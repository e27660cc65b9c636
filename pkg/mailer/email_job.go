package mailer

// EmailJob is the JSON payload queued on RabbitMQ for the email worker.
// Subject/Text/HTML may be set directly, or Template plus Data can be used
// to let the worker compose the message.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome" or "login_notification"
	Data     map[string]any `json:"data,omitempty"`
}
