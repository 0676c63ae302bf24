package responses

import "carelink-service/internal/app/models"

type SwitchRequestDetail struct {
	*models.SwitchRequest
	NewAgency      *models.Agency `json:"new_agency,omitempty"`
	ConversationID string         `json:"conversation_id,omitempty"`
	// AllowedTransitions lists the statuses the caller may move the request to.
	AllowedTransitions []string `json:"allowed_transitions"`
}

type MarkedRead struct {
	Updated int64 `json:"updated"`
}
