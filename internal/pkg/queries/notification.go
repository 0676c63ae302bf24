package queries

const (
	notificationColumns = `
		id,
		recipient_id,
		type,
		title,
		body,
		COALESCE(link, ''),
		read_at,
		created_at
	`

	InsertNotification = `
		INSERT INTO notifications (id, recipient_id, type, title, body, link, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
	`

	GetNotifications = `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE recipient_id = $1
		  AND (NOT $2 OR read_at IS NULL)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	CountNotifications = `
		SELECT COUNT(*)
		FROM notifications
		WHERE recipient_id = $1
		  AND (NOT $2 OR read_at IS NULL)
	`

	MarkNotificationRead = `
		UPDATE notifications
		SET read_at = COALESCE(read_at, $3)
		WHERE id = $1 AND recipient_id = $2
	`

	MarkAllNotificationsRead = `
		UPDATE notifications
		SET read_at = $2
		WHERE recipient_id = $1 AND read_at IS NULL
	`
)
