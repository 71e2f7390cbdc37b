package entity

// User is a stored account, keyed by its unique Username.
type User struct {
	Username           string
	Email              string
	PasswordHash       string
	LegacyPasswordHash string
}

// NeedsRehash reports whether the account still carries only a legacy hash.
func (u *User) NeedsRehash() bool {
	return u.PasswordHash == "" && u.LegacyPasswordHash != ""
}
