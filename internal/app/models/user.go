package models

// User is an account allowed to call the API, verified on every request
// through HTTP Basic credentials.
type User struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
}
