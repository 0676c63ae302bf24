package queries

const profileColumns = `
	id,
	email,
	password_hash,
	full_name,
	COALESCE(phone, ''),
	role,
	date_of_birth,
	COALESCE(address, ''),
	COALESCE(current_agency_id::text, ''),
	created_at,
	updated_at,
	deleted_at
`

const (
	InsertProfile = `
		INSERT INTO profiles (
			id,
			email,
			password_hash,
			full_name,
			phone,
			role,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
	`

	GetProfileByID = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1 AND deleted_at IS NULL`

	GetProfilesByIDs = `SELECT ` + profileColumns + ` FROM profiles WHERE id = ANY($1) AND deleted_at IS NULL`

	GetProfileByEmail = `SELECT ` + profileColumns + ` FROM profiles WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL`

	GetAllProfiles = `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE deleted_at IS NULL
		  AND ($1 = '' OR role = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	CountProfiles = `
		SELECT COUNT(*)
		FROM profiles
		WHERE deleted_at IS NULL
		  AND ($1 = '' OR role = $1)
	`

	UpdateProfile = `
		UPDATE profiles
		SET full_name = $2,
			phone = NULLIF($3, ''),
			date_of_birth = $4,
			address = NULLIF($5, ''),
			updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL
	`

	UpdateProfileCurrentAgency = `
		UPDATE profiles
		SET current_agency_id = $2,
			updated_at = $3
		WHERE id = $1
	`
)
