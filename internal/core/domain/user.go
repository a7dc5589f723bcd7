package domain

// UserRecord is keyed by email in the user directory,
// so the email itself is not part of the record.
type UserRecord struct {
	Name         string `json:"name"`
	PasswordHash string `json:"password"`
}
