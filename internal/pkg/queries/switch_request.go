package queries

const switchRequestColumns = `
	id,
	patient_id,
	COALESCE(current_agency_id::text, ''),
	new_agency_id,
	status,
	reason,
	COALESCE(care_needs, ''),
	preferred_start_date,
	COALESCE(reviewer_id::text, ''),
	COALESCE(decision_note, ''),
	submitted_at,
	reviewed_at,
	decided_at,
	completed_at,
	cancelled_at,
	reminded_at,
	created_at,
	updated_at
`

// $1 status, $2 patient scope, $3 member scope. Empty means unscoped.
const switchRequestFilter = `
	($1 = '' OR status = $1)
	AND ($2 = '' OR patient_id::text = $2)
	AND ($3 = '' OR new_agency_id IN (SELECT agency_id FROM agency_members WHERE profile_id::text = $3))
`

const (
	InsertSwitchRequest = `
		INSERT INTO switch_requests (
			id,
			patient_id,
			current_agency_id,
			new_agency_id,
			status,
			reason,
			care_needs,
			preferred_start_date,
			submitted_at,
			created_at,
			updated_at
		) VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11)
	`

	InsertSwitchRequestStatusHistory = `
		INSERT INTO switch_request_status_history (
			id,
			switch_request_id,
			from_status,
			to_status,
			actor_id,
			note,
			created_at
		) VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), $7)
	`

	InsertConversation = `
		INSERT INTO conversations (id, switch_request_id, patient_id, agency_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	GetSwitchRequestByID = `SELECT ` + switchRequestColumns + ` FROM switch_requests WHERE id = $1`

	GetAllSwitchRequests = `
		SELECT ` + switchRequestColumns + `
		FROM switch_requests
		WHERE ` + switchRequestFilter + `
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`

	CountSwitchRequests = `SELECT COUNT(*) FROM switch_requests WHERE ` + switchRequestFilter

	ExistsOpenSwitchRequestForAgency = `
		SELECT EXISTS (
			SELECT 1
			FROM switch_requests
			WHERE patient_id = $1
			  AND new_agency_id = $2
			  AND status IN ('submitted', 'under_review', 'accepted')
		)
	`

	// The status predicate makes concurrent transitions from the same state
	// race on the row lock; the loser updates zero rows.
	UpdateSwitchRequestStatusGuarded = `
		UPDATE switch_requests
		SET status = $3,
			reviewer_id = CASE WHEN $4 THEN $5::uuid ELSE reviewer_id END,
			decision_note = CASE WHEN $6 <> '' THEN $6 ELSE decision_note END,
			reviewed_at = CASE WHEN $3 = 'under_review' THEN $7 ELSE reviewed_at END,
			decided_at = CASE WHEN $3 IN ('accepted', 'denied') THEN $7 ELSE decided_at END,
			completed_at = CASE WHEN $3 = 'completed' THEN $7 ELSE completed_at END,
			cancelled_at = CASE WHEN $3 = 'cancelled' THEN $7 ELSE cancelled_at END,
			updated_at = $7
		WHERE id = $1 AND status = $2
		RETURNING ` + switchRequestColumns

	GetSwitchRequestHistory = `
		SELECT
			id,
			switch_request_id,
			COALESCE(from_status, ''),
			to_status,
			actor_id,
			COALESCE(note, ''),
			created_at
		FROM switch_request_status_history
		WHERE switch_request_id = $1
		ORDER BY created_at ASC, id ASC
	`

	GetStaleSubmittedSwitchRequests = `
		SELECT ` + switchRequestColumns + `
		FROM switch_requests
		WHERE status = 'submitted'
		  AND reminded_at IS NULL
		  AND submitted_at < $1
		ORDER BY submitted_at ASC
		LIMIT $2
	`

	MarkSwitchRequestReminded = `UPDATE switch_requests SET reminded_at = $2 WHERE id = $1 AND reminded_at IS NULL`
)
