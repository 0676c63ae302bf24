package requests

import "time"

type SendMessage struct {
	Body string `json:"body" validate:"required,min=1,max=4000"`
}

type FindAllConversations struct {
	PatientID       string
	MemberProfileID string
}

type FindMessages struct {
	ConversationID string
	Before         *time.Time
	Limit          int
}
