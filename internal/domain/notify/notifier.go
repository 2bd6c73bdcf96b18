package notify

import "context"

// Message is one outbound notification. Body is HTML.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier defines an interface for delivering a notification over some
// transport (email, Telegram, ...). Delivery is best-effort: callers log a
// returned error and move on, they never fail their own operation because of
// it.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
