package queries

const (
	documentColumns = `
		id,
		switch_request_id,
		uploaded_by,
		document_type,
		file_name,
		content_type,
		size_bytes,
		storage_key,
		checksum,
		created_at,
		deleted_at
	`

	InsertDocument = `
		INSERT INTO documents (
			id,
			switch_request_id,
			uploaded_by,
			document_type,
			file_name,
			content_type,
			size_bytes,
			storage_key,
			checksum,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	GetDocumentByID = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND deleted_at IS NULL`

	GetDocumentsBySwitchRequestID = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE switch_request_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	SoftDeleteDocumentIfUnsigned = `
		UPDATE documents
		SET deleted_at = $2
		WHERE id = $1
		  AND deleted_at IS NULL
		  AND NOT EXISTS (SELECT 1 FROM e_signatures WHERE document_id = $1)
	`
)

const (
	eSignatureColumns = `
		id,
		signer_id,
		COALESCE(document_id::text, ''),
		switch_request_id,
		signature_type,
		COALESCE(typed_name, ''),
		COALESCE(drawn_image_key, ''),
		COALESCE(drawn_image_checksum, ''),
		COALESCE(document_checksum, ''),
		checksum,
		COALESCE(ip_address, ''),
		COALESCE(user_agent, ''),
		signed_at
	`

	InsertESignature = `
		INSERT INTO e_signatures (
			id,
			signer_id,
			document_id,
			switch_request_id,
			signature_type,
			typed_name,
			drawn_image_key,
			drawn_image_checksum,
			document_checksum,
			checksum,
			ip_address,
			user_agent,
			signed_at
		) VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, NULLIF($11, ''), NULLIF($12, ''), $13)
	`

	GetESignatureByID = `SELECT ` + eSignatureColumns + ` FROM e_signatures WHERE id = $1`

	GetESignaturesBySwitchRequestID = `
		SELECT ` + eSignatureColumns + `
		FROM e_signatures
		WHERE switch_request_id = $1
		ORDER BY signed_at ASC
	`

	ExistsESignatureForSigner = `
		SELECT EXISTS (
			SELECT 1
			FROM e_signatures
			WHERE signer_id = $1
			  AND (
				($2 <> '' AND document_id::text = $2)
				OR ($2 = '' AND document_id IS NULL AND switch_request_id = $3)
			  )
		)
	`
)
