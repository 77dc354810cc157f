package mindmap

import (
	"time"
)

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password. It is
	// serialized for storage but must never be written on the API.
	PasswordHash string `json:"password_hash"`

	CreatedAt time.Time `json:"created_at"`
}

type UserStore interface {
	Get(id int) (*User, error)
	// GetByUsername matches the exact username, no normalization.
	GetByUsername(username string) (*User, error)
	// Upsert inserts u when u.ID is zero, assigning the id. A taken username
	// is ErrDuplicateName.
	Upsert(u *User) error
	List() ([]*User, error)
}
