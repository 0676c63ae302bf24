package models

import "time"

type Conversation struct {
	ID                  string     `json:"id"`
	SwitchRequestID     string     `json:"switch_request_id"`
	PatientID           string     `json:"patient_id"`
	AgencyID            string     `json:"agency_id"`
	SwitchRequestStatus string     `json:"switch_request_status,omitempty"`
	UnreadCount         int        `json:"unread_count"`
	LastMessageAt       *time.Time `json:"last_message_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

type Message struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversation_id"`
	SenderID       string     `json:"sender_id"`
	Body           string     `json:"body"`
	CreatedAt      time.Time  `json:"created_at"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
}

// RealtimeEvent is published on the conversation channel and pushed to
// every socket attached to that conversation.
type RealtimeEvent struct {
	Type           string    `json:"type"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id,omitempty"`
	Message        *Message  `json:"message,omitempty"`
	SentAt         time.Time `json:"sent_at"`
}
