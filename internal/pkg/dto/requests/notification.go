package requests

type FindAllNotifications struct {
	Pagination
	RecipientID string
	UnreadOnly  bool
}

type CreateNotification struct {
	RecipientIDs []string
	Type         string
	Title        string
	Body         string
	Link         string
}

type FindAllAuditLogs struct {
	Pagination
	ActorID    string
	EntityType string
	EntityID   string
	Action     string
}
