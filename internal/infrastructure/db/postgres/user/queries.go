package user

const (
	userColumns = `uuid, email, name, yandex_id, is_active, is_superuser, access_token, refresh_token, token_expires, created_at, updated_at`

	SelectUsers = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at
		LIMIT 50 OFFSET ( ($1 - 1) * 50 )
	`
	SelectUserByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE uuid = $1
	`
	// Row-locked so two concurrent reconciliations for the same identity
	// serialize on the existing row instead of double-updating it.
	SelectUserByYandexIDOrEmail = `
		SELECT ` + userColumns + `
		FROM users
		WHERE yandex_id = $1 OR email = $2
		FOR UPDATE
	`
	InsertUser = `
		INSERT INTO users (email, name, yandex_id, access_token, refresh_token, token_expires)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns + `
	`
	UpdateProviderLogin = `
		UPDATE users
		SET yandex_id = $1,
		    name = $2,
		    access_token = $3,
		    token_expires = $4,
		    updated_at = now()
		WHERE uuid = $5
		RETURNING ` + userColumns + `
	`
	UpdateUserByUUID = `
		UPDATE users
		SET email = $1,
		    name = $2,
		    updated_at = now()
		WHERE uuid = $3
		RETURNING ` + userColumns + `
	`
	DeleteUserByUUID = `
		DELETE FROM users
		WHERE uuid = $1
		RETURNING ` + userColumns + `
	`
)
