package main

// Webhook is the inbound event the WhatsApp gateway posts for every received
// message. Only the fields below are read; everything else in the gateway
// payload is ignored.
type Webhook struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	MediaURL  string `json:"mediaUrl"`
	Timestamp int64  `json:"timestamp"`
}
