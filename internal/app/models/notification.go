package models

import "time"

type Notification struct {
	ID          string     `json:"id"`
	RecipientID string     `json:"recipient_id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Link        string     `json:"link,omitempty"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AuditLog struct {
	ID         string                 `json:"id" bson:"_id"`
	ActorID    string                 `json:"actor_id" bson:"actorId"`
	ActorRole  string                 `json:"actor_role" bson:"actorRole"`
	Action     string                 `json:"action" bson:"action"`
	EntityType string                 `json:"entity_type" bson:"entityType"`
	EntityID   string                 `json:"entity_id" bson:"entityId"`
	Metadata   map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	IPAddress  string                 `json:"ip_address,omitempty" bson:"ipAddress,omitempty"`
	RequestID  string                 `json:"request_id,omitempty" bson:"requestId,omitempty"`
	CreatedAt  time.Time              `json:"created_at" bson:"createdAt"`
}
