package users

const (
	queryFindOrCreateByProvider = `
		INSERT INTO users (provider, provider_id, email, username, display_name, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (provider, provider_id)
		DO UPDATE SET
			email = EXCLUDED.email,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = NOW()
		RETURNING id, email, provider, provider_id, username, display_name, avatar_url, bio, role, created_at, updated_at
	`

	queryFindByID = `
		SELECT id, email, provider, provider_id, username, display_name, avatar_url, bio, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	queryFindByUsername = `
		SELECT id, email, provider, provider_id, username, display_name, avatar_url, bio, role, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	queryUpdateProfile = `
		UPDATE users
		SET display_name = $1, avatar_url = $2, bio = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, email, provider, provider_id, username, display_name, avatar_url, bio, role, created_at, updated_at
	`

	queryUpdateRole = `
		UPDATE users
		SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, email, provider, provider_id, username, display_name, avatar_url, bio, role, created_at, updated_at
	`
)
