package processor

import "time"

// Message is one inbound event from the messaging gateway. ID is the
// gateway's message id and doubles as the idempotency key for the whole
// pipeline.
type Message struct {
	ID       string
	Sender   string
	Content  string
	MediaURL string
	Date     time.Time
}
