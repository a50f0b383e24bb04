package domain

import "time"

// Receipt describes a successfully handed-off outbound email.
type Receipt struct {
	MessageID string    `json:"message_id"`
	Recipient string    `json:"recipient"`
	SentAt    time.Time `json:"sent_at"`
}
