package model

// User is the on-disk shape of one entry in the user data file. The username
// is the enclosing JSON object key.
type User struct {
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash,omitempty"`
	// Older files store an unsalted hex SHA-256 here. Cleared once the user
	// signs in and the hash is upgraded.
	LegacyPassword string `json:"password,omitempty"`
}
