package models

import "time"

// MessageStatus tracks asynchronous delivery of a message.
type MessageStatus string

const (
	MessageQueued    MessageStatus = "QUEUED"
	MessageDelivered MessageStatus = "DELIVERED"
	MessageFailed    MessageStatus = "FAILED"
)

// Message is a simple inbox entry between users. Broadcast messages carry an
// empty recipient and are fanned out to every active faculty account.
type Message struct {
	ID             string        `db:"id" json:"id"`
	SenderEmail    string        `db:"sender_email" json:"sender_email"`
	RecipientEmail string        `db:"recipient_email" json:"recipient_email"`
	Subject        string        `db:"subject" json:"subject"`
	Body           string        `db:"body" json:"body"`
	Status         MessageStatus `db:"status" json:"status"`
	Read           bool          `db:"read" json:"read"`
	DeliveredAt    *time.Time    `db:"delivered_at" json:"delivered_at,omitempty"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
}

// MessageFilter describes query params for listing messages.
type MessageFilter struct {
	RecipientEmail string
	UnreadOnly     bool
	Page           int
	PageSize       int
}
