package queries

const agencyColumns = `
	id,
	name,
	license_number,
	license_state,
	verified,
	verified_at,
	COALESCE(phone, ''),
	COALESCE(email, ''),
	COALESCE(address, ''),
	COALESCE(city, ''),
	state,
	COALESCE(zip_code, ''),
	services,
	accepting_patients,
	COALESCE(description, ''),
	created_at,
	updated_at,
	deleted_at
`

const agencyFilter = `
	deleted_at IS NULL
	AND ($1 = '' OR name ILIKE '%' || $1 || '%')
	AND ($2 = '' OR state = $2)
	AND ($3 = '' OR $3 = ANY(services))
	AND (NOT $4 OR verified)
`

const (
	InsertAgency = `
		INSERT INTO agencies (
			id,
			name,
			license_number,
			license_state,
			phone,
			email,
			address,
			city,
			state,
			zip_code,
			services,
			accepting_patients,
			description,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, NULLIF($10, ''), $11, $12, NULLIF($13, ''), $14, $15)
	`

	GetAgencyByID = `SELECT ` + agencyColumns + ` FROM agencies WHERE id = $1 AND deleted_at IS NULL`

	GetAllAgencies = `
		SELECT ` + agencyColumns + `
		FROM agencies
		WHERE ` + agencyFilter + `
		ORDER BY name ASC
		LIMIT $5 OFFSET $6
	`

	CountAgencies = `SELECT COUNT(*) FROM agencies WHERE ` + agencyFilter

	UpdateAgency = `
		UPDATE agencies
		SET name = $2,
			license_number = $3,
			license_state = $4,
			phone = NULLIF($5, ''),
			email = NULLIF($6, ''),
			address = NULLIF($7, ''),
			city = NULLIF($8, ''),
			state = $9,
			zip_code = NULLIF($10, ''),
			services = $11,
			accepting_patients = $12,
			description = NULLIF($13, ''),
			verified = $14,
			verified_at = $15,
			updated_at = $16
		WHERE id = $1 AND deleted_at IS NULL
	`

	SoftDeleteAgency = `UPDATE agencies SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	MarkAgencyVerified = `UPDATE agencies SET verified = TRUE, verified_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
)

const (
	InsertAgencyMember = `
		INSERT INTO agency_members (id, agency_id, profile_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	agencyMemberColumns = `
		m.id,
		m.agency_id,
		m.profile_id,
		m.role,
		p.email,
		p.full_name,
		m.created_at
	`

	GetAgencyMemberByID = `
		SELECT ` + agencyMemberColumns + `
		FROM agency_members m
		JOIN profiles p ON p.id = m.profile_id
		WHERE m.id = $1
	`

	GetAgencyMembership = `
		SELECT ` + agencyMemberColumns + `
		FROM agency_members m
		JOIN profiles p ON p.id = m.profile_id
		WHERE m.agency_id = $1 AND m.profile_id = $2
	`

	GetAgencyMembersByAgencyID = `
		SELECT ` + agencyMemberColumns + `
		FROM agency_members m
		JOIN profiles p ON p.id = m.profile_id
		WHERE m.agency_id = $1
		ORDER BY m.created_at ASC
	`

	GetAgencyMemberProfileIDs = `SELECT profile_id FROM agency_members WHERE agency_id = $1`

	// Serializes member removals per agency so the owner count below sees
	// every committed delete.
	LockAgencyForMemberChange = `SELECT id FROM agencies WHERE id = $1 FOR UPDATE`

	// The owner count guard keeps at least one owner per agency.
	DeleteAgencyMemberUnlessLastOwner = `
		DELETE FROM agency_members
		WHERE id = $1
		  AND agency_id = $2
		  AND (
			role <> 'owner'
			OR (SELECT COUNT(*) FROM agency_members WHERE agency_id = $2 AND role = 'owner') > 1
		  )
	`
)
