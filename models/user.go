package models

// AppUser is a staff account. It maps to the `AppUser` table.
type AppUser struct {
	ID           int64  `db:"UserID" json:"user_id"`
	Username     string `db:"Username" json:"username"`
	PasswordHash string `db:"PasswordHash" json:"-"`
	Role         string `db:"Role" json:"role"`
}

// Identity is the authenticated principal held by a session.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Complete reports whether every field of the identity is set. Sessions only
// ever hold complete identities.
func (i Identity) Complete() bool {
	return i.UserID > 0 && i.Username != "" && i.Role.Valid()
}
