package user

const (
	SelectUserByID = `
		SELECT id::text, email, name, password_hash, created_at
		FROM users
		WHERE id = $1::uuid
	`
	SelectUserByEmail = `
		SELECT id::text, email, name, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	InsertUser = `
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id::text, email, name, password_hash, created_at
	`
)
