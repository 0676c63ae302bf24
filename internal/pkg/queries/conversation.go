package queries

const (
	conversationColumns = `
		c.id,
		c.switch_request_id,
		c.patient_id,
		c.agency_id,
		sr.status,
		c.created_at
	`

	GetConversationByID = `
		SELECT ` + conversationColumns + `
		FROM conversations c
		JOIN switch_requests sr ON sr.id = c.switch_request_id
		WHERE c.id = $1
	`

	GetConversationBySwitchRequestID = `
		SELECT ` + conversationColumns + `
		FROM conversations c
		JOIN switch_requests sr ON sr.id = c.switch_request_id
		WHERE c.switch_request_id = $1
	`

	// $1 patient scope, $2 member scope, $3 viewer for unread counts.
	GetAllConversations = `
		SELECT ` + conversationColumns + `,
			(SELECT COUNT(*) FROM messages m WHERE m.conversation_id = c.id AND m.sender_id::text <> $3 AND m.read_at IS NULL),
			(SELECT MAX(m.created_at) FROM messages m WHERE m.conversation_id = c.id)
		FROM conversations c
		JOIN switch_requests sr ON sr.id = c.switch_request_id
		WHERE ($1 = '' OR c.patient_id::text = $1)
		  AND ($2 = '' OR c.agency_id IN (SELECT agency_id FROM agency_members WHERE profile_id::text = $2))
		ORDER BY COALESCE((SELECT MAX(m.created_at) FROM messages m WHERE m.conversation_id = c.id), c.created_at) DESC
	`

	InsertMessage = `
		INSERT INTO messages (id, conversation_id, sender_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	GetMessages = `
		SELECT id, conversation_id, sender_id, body, created_at, read_at
		FROM messages
		WHERE conversation_id = $1
		  AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`

	MarkMessagesRead = `
		UPDATE messages
		SET read_at = $3
		WHERE conversation_id = $1
		  AND sender_id <> $2
		  AND read_at IS NULL
	`
)
